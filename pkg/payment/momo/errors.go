package momo

import "errors"

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid momo configuration")

	// ErrInvalidRequest is returned when the payment request parameters are invalid
	ErrInvalidRequest = errors.New("invalid momo request parameters")

	// ErrInvalidSignature is returned when an IPN signature does not match
	ErrInvalidSignature = errors.New("invalid momo signature")

	// ErrNetworkError is returned when the MoMo API cannot be reached
	ErrNetworkError = errors.New("momo network error")

	// ErrPaymentFailed is returned when MoMo rejects the payment request
	ErrPaymentFailed = errors.New("momo payment request failed")
)
