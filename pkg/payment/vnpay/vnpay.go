package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const (
	version     = "2.1.0"
	commandPay  = "pay"
	currCodeVND = "VND"
	orderType   = "other"
	dateFormat  = "20060102150405"
)

// Client builds signed payment URLs and verifies callback signatures.
type Client struct {
	config Config
}

// NewClient creates a new VNPay client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Client{config: config}, nil
}

// BuildPaymentURL returns the hosted payment page URL for the request,
// signed with HMAC-SHA512 over the sorted, URL-encoded parameters.
func (c *Client) BuildPaymentURL(req PaymentRequest) (string, error) {
	if req.TxnRef == "" || req.Amount <= 0 {
		return "", ErrInvalidRequest
	}

	createDate := req.CreateDate
	if createDate.IsZero() {
		createDate = time.Now()
	}
	locale := req.Locale
	if locale == "" {
		locale = "vn"
	}

	params := url.Values{}
	params.Set("vnp_Version", version)
	params.Set("vnp_Command", commandPay)
	params.Set("vnp_TmnCode", c.config.TmnCode)
	// VNPay expects the amount in the smallest currency unit, VND has
	// no subunit so the convention is amount * 100.
	params.Set("vnp_Amount", strconv.FormatInt(req.Amount*100, 10))
	params.Set("vnp_CurrCode", currCodeVND)
	params.Set("vnp_TxnRef", req.TxnRef)
	params.Set("vnp_OrderInfo", req.OrderInfo)
	params.Set("vnp_OrderType", orderType)
	params.Set("vnp_Locale", locale)
	params.Set("vnp_ReturnUrl", c.config.ReturnURL)
	params.Set("vnp_IpAddr", req.IPAddr)
	params.Set("vnp_CreateDate", createDate.Format(dateFormat))
	if req.BankCode != "" {
		params.Set("vnp_BankCode", req.BankCode)
	}

	signed := params.Encode()
	secureHash := c.sign(signed)

	return fmt.Sprintf("%s?%s&vnp_SecureHash=%s", c.config.PaymentURL, signed, secureHash), nil
}

// VerifyReturn checks the vnp_SecureHash over the callback parameters and
// returns the parsed result. The signature fields themselves are excluded
// from the signed payload.
func (c *Client) VerifyReturn(query url.Values) (*ReturnData, error) {
	received := query.Get("vnp_SecureHash")
	if received == "" {
		return nil, ErrMissingSignature
	}

	params := url.Values{}
	for key, values := range query {
		if key == "vnp_SecureHash" || key == "vnp_SecureHashType" {
			continue
		}
		if len(values) > 0 {
			params.Set(key, values[0])
		}
	}

	expected := c.sign(params.Encode())
	if !hmac.Equal([]byte(expected), []byte(received)) {
		return nil, ErrInvalidSignature
	}

	amount, err := strconv.ParseInt(params.Get("vnp_Amount"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid vnp_Amount: %w", err)
	}

	return &ReturnData{
		TxnRef:        params.Get("vnp_TxnRef"),
		Amount:        amount / 100,
		ResponseCode:  params.Get("vnp_ResponseCode"),
		TransactionNo: params.Get("vnp_TransactionNo"),
		BankCode:      params.Get("vnp_BankCode"),
		CardType:      params.Get("vnp_CardType"),
		PayDate:       params.Get("vnp_PayDate"),
		OrderInfo:     params.Get("vnp_OrderInfo"),
	}, nil
}

func (c *Client) sign(data string) string {
	mac := hmac.New(sha512.New, []byte(c.config.HashSecret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
