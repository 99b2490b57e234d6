package payos

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const codeSuccess = "00"

// Client represents a PayOS API client
type Client struct {
	config Config
	http   *resty.Client
}

// NewClient creates a new PayOS client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	http := resty.New().
		SetTimeout(10 * time.Second).
		SetBaseURL(config.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-client-id", config.ClientID).
		SetHeader("x-api-key", config.APIKey)

	return &Client{config: config, http: http}, nil
}

// CreatePaymentLink requests a checkout link for the order.
func (c *Client) CreatePaymentLink(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	if req.OrderCode <= 0 || req.Amount <= 0 {
		return nil, ErrInvalidRequest
	}

	payload := createPayload{
		OrderCode:   req.OrderCode,
		Amount:      req.Amount,
		Description: req.Description,
		ReturnURL:   c.config.ReturnURL,
		CancelURL:   c.config.CancelURL,
		Signature:   c.Checksum(req.OrderCode, req.Amount),
	}

	var result CreateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&result).
		Post("/v2/payment-requests")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d: %s", ErrPaymentFailed, resp.StatusCode(), resp.String())
	}
	if result.Code != codeSuccess {
		return nil, fmt.Errorf("%w: code %s: %s", ErrPaymentFailed, result.Code, result.Desc)
	}

	return &result, nil
}

// Checksum derives the request signature from the order identity and the
// merchant credentials: sha256(clientId + orderCode + amount + apiKey).
func (c *Client) Checksum(orderCode, amount int64) string {
	raw := fmt.Sprintf("%s%d%d%s", c.config.ClientID, orderCode, amount, c.config.APIKey)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// VerifyNotification checks the notification checksum.
func (c *Client) VerifyNotification(n Notification) error {
	expected := c.Checksum(n.OrderCode, n.Amount)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(n.Signature)) != 1 {
		return ErrInvalidChecksum
	}
	return nil
}
