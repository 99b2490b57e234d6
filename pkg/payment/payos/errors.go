package payos

import "errors"

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid payos configuration")

	// ErrInvalidRequest is returned when the payment request parameters are invalid
	ErrInvalidRequest = errors.New("invalid payos request parameters")

	// ErrInvalidChecksum is returned when a notification checksum does not match
	ErrInvalidChecksum = errors.New("invalid payos checksum")

	// ErrNetworkError is returned when the PayOS API cannot be reached
	ErrNetworkError = errors.New("payos network error")

	// ErrPaymentFailed is returned when PayOS rejects the payment request
	ErrPaymentFailed = errors.New("payos payment request failed")
)
