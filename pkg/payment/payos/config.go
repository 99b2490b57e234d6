package payos

// Config represents the configuration for the PayOS client
type Config struct {
	// ClientID identifies the merchant application
	ClientID string

	// APIKey authenticates API calls and enters the request checksum
	APIKey string

	// BaseURL is the PayOS API base URL
	BaseURL string

	// ReturnURL is where PayOS sends the customer after payment
	ReturnURL string

	// CancelURL is where PayOS sends the customer after cancelling
	CancelURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return ErrInvalidConfig
	}
	if c.APIKey == "" {
		return ErrInvalidConfig
	}
	if c.BaseURL == "" {
		return ErrInvalidConfig
	}
	if c.ReturnURL == "" {
		return ErrInvalidConfig
	}
	if c.CancelURL == "" {
		return ErrInvalidConfig
	}
	return nil
}
