package momo

// Config represents the configuration for the MoMo client
type Config struct {
	// Endpoint is the MoMo create-payment API URL
	Endpoint string

	// PartnerCode identifies the merchant
	PartnerCode string

	// AccessKey is the public part of the merchant credentials
	AccessKey string

	// SecretKey signs requests and verifies IPN callbacks
	SecretKey string

	// RedirectURL is where MoMo sends the customer after payment
	RedirectURL string

	// IPNURL is the server-to-server notification endpoint
	IPNURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return ErrInvalidConfig
	}
	if c.PartnerCode == "" {
		return ErrInvalidConfig
	}
	if c.AccessKey == "" {
		return ErrInvalidConfig
	}
	if c.SecretKey == "" {
		return ErrInvalidConfig
	}
	if c.RedirectURL == "" {
		return ErrInvalidConfig
	}
	if c.IPNURL == "" {
		return ErrInvalidConfig
	}
	return nil
}
