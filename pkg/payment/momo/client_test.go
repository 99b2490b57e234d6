package momo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) *Client {
	client, err := NewClient(Config{
		Endpoint:    "https://test-payment.momo.vn/v2/gateway/api/create",
		PartnerCode: "MOMOGLOW",
		AccessKey:   "momo-access",
		SecretKey:   "momo-test-secret",
		RedirectURL: "https://example.com/payments/momo/redirect",
		IPNURL:      "https://example.com/payments/momo/ipn",
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(Config{PartnerCode: "MOMOGLOW"})
	assert.Error(t, err)
}

func TestSignCreate(t *testing.T) {
	client := testClient(t)

	signature := client.SignCreate(CreateRequest{
		OrderID:   "GLOW-42-a1b2c3",
		RequestID: "req-a1b2c3",
		Amount:    250000,
		OrderInfo: "GlowCare order #42",
	})

	// HMAC-SHA256 over the fixed-order raw string with the test secret.
	assert.Equal(t, "515e75011f57b7abdf40614445b93602c2a706f787496fad268e6408de1474f3", signature)
}

func validIPN() IPNRequest {
	return IPNRequest{
		PartnerCode:  "MOMOGLOW",
		OrderID:      "GLOW-42-a1b2c3",
		RequestID:    "req-a1b2c3",
		Amount:       250000,
		OrderInfo:    "GlowCare order #42",
		OrderType:    "momo_wallet",
		TransID:      4088878653,
		ResultCode:   0,
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: 1704421512000,
		Signature:    "9155916e3b74021fd967c36f71867f8e391e82cfd27d2249bd619e8c9c2b982c",
	}
}

func TestVerifyIPN(t *testing.T) {
	client := testClient(t)

	ipn := validIPN()
	require.NoError(t, client.VerifyIPN(ipn))
	assert.True(t, ipn.Success())
}

func TestVerifyIPN_TamperedAmount(t *testing.T) {
	client := testClient(t)

	ipn := validIPN()
	ipn.Amount = 1

	assert.ErrorIs(t, client.VerifyIPN(ipn), ErrInvalidSignature)
}

func TestVerifyIPN_WrongSignature(t *testing.T) {
	client := testClient(t)

	ipn := validIPN()
	ipn.Signature = "deadbeef"

	assert.ErrorIs(t, client.VerifyIPN(ipn), ErrInvalidSignature)
}
