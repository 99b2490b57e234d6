package vnpay

import "errors"

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid vnpay configuration")

	// ErrInvalidRequest is returned when the payment request parameters are invalid
	ErrInvalidRequest = errors.New("invalid vnpay request parameters")

	// ErrInvalidSignature is returned when a return or IPN signature does not match
	ErrInvalidSignature = errors.New("invalid vnpay signature")

	// ErrMissingSignature is returned when the callback carries no vnp_SecureHash
	ErrMissingSignature = errors.New("missing vnpay signature")
)
