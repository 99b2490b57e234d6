package vnpay

// Config represents the configuration for the VNPay client
type Config struct {
	// TmnCode is the terminal code issued by VNPay
	TmnCode string

	// HashSecret is the shared secret used to sign and verify requests
	HashSecret string

	// PaymentURL is the VNPay hosted payment page URL
	PaymentURL string

	// ReturnURL is the merchant URL VNPay redirects the customer back to
	ReturnURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.TmnCode == "" {
		return ErrInvalidConfig
	}
	if c.HashSecret == "" {
		return ErrInvalidConfig
	}
	if c.PaymentURL == "" {
		return ErrInvalidConfig
	}
	if c.ReturnURL == "" {
		return ErrInvalidConfig
	}
	return nil
}
