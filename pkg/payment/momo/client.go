package momo

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client represents a MoMo wallet API client
type Client struct {
	config Config
	http   *resty.Client
}

// NewClient creates a new MoMo client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	http := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{config: config, http: http}, nil
}

// CreatePayment requests a captureWallet payment and returns the pay URL.
func (c *Client) CreatePayment(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	if req.OrderID == "" || req.RequestID == "" || req.Amount <= 0 {
		return nil, ErrInvalidRequest
	}

	payload := createPayload{
		PartnerCode: c.config.PartnerCode,
		AccessKey:   c.config.AccessKey,
		RequestID:   req.RequestID,
		Amount:      req.Amount,
		OrderID:     req.OrderID,
		OrderInfo:   req.OrderInfo,
		RedirectURL: c.config.RedirectURL,
		IPNURL:      c.config.IPNURL,
		ExtraData:   req.ExtraData,
		RequestType: requestTypeCaptureWallet,
		Lang:        "vi",
	}
	payload.Signature = c.SignCreate(req)

	var result CreateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&result).
		Post(c.config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d: %s", ErrPaymentFailed, resp.StatusCode(), resp.String())
	}
	if result.ResultCode != ResultCodeSuccess {
		return nil, fmt.Errorf("%w: code %d: %s", ErrPaymentFailed, result.ResultCode, result.Message)
	}

	return &result, nil
}

// SignCreate builds the HMAC-SHA256 signature for a create-payment call.
// MoMo signs a raw key=value string in a fixed field order, not the JSON body.
func (c *Client) SignCreate(req CreateRequest) string {
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		c.config.AccessKey,
		req.Amount,
		req.ExtraData,
		c.config.IPNURL,
		req.OrderID,
		req.OrderInfo,
		c.config.PartnerCode,
		c.config.RedirectURL,
		req.RequestID,
		requestTypeCaptureWallet,
	)
	return c.sign(raw)
}

// VerifyIPN checks the notification signature against the configured secret.
func (c *Client) VerifyIPN(ipn IPNRequest) error {
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		c.config.AccessKey,
		ipn.Amount,
		ipn.ExtraData,
		ipn.Message,
		ipn.OrderID,
		ipn.OrderInfo,
		ipn.OrderType,
		ipn.PartnerCode,
		ipn.PayType,
		ipn.RequestID,
		ipn.ResponseTime,
		ipn.ResultCode,
		ipn.TransID,
	)
	expected := c.sign(raw)
	if !hmac.Equal([]byte(expected), []byte(ipn.Signature)) {
		return ErrInvalidSignature
	}
	return nil
}

func (c *Client) sign(data string) string {
	mac := hmac.New(sha256.New, []byte(c.config.SecretKey))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
