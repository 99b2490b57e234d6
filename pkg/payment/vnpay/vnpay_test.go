package vnpay

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) *Client {
	client, err := NewClient(Config{
		TmnCode:    "GLOW0001",
		HashSecret: "vnpay-test-secret",
		PaymentURL: "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "https://example.com/payments/vnpay/return",
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(Config{TmnCode: "GLOW0001"})
	assert.Error(t, err)
}

func TestBuildPaymentURL(t *testing.T) {
	client := testClient(t)

	createDate := time.Date(2024, 1, 5, 9, 30, 0, 0, time.Local)
	paymentURL, err := client.BuildPaymentURL(PaymentRequest{
		TxnRef:     "42",
		Amount:     100000,
		OrderInfo:  "Thanh toan don hang 42",
		IPAddr:     "127.0.0.1",
		CreateDate: createDate,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(paymentURL, "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?"))
	assert.Contains(t, paymentURL, "vnp_Amount=10000000")
	assert.Contains(t, paymentURL, "vnp_TxnRef=42")
	assert.Contains(t, paymentURL, "vnp_CreateDate=20240105093000")
	// HMAC-SHA512 over the sorted encoded params with the test secret.
	assert.True(t, strings.HasSuffix(paymentURL,
		"&vnp_SecureHash=bf382e2814b286804bb2770c6494f3f6a144b6fa932bfbf375d5b6d281e1ff9d70cebda724110818939fd9b56737929e089fa834901018c4c66af7c6aa1b43c8"))

	parsed, err := url.Parse(paymentURL)
	require.NoError(t, err)
	query, err := url.ParseQuery(parsed.RawQuery)
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", query.Get("vnp_Version"))
	assert.Equal(t, "pay", query.Get("vnp_Command"))
	assert.Equal(t, "VND", query.Get("vnp_CurrCode"))
	assert.Equal(t, "vn", query.Get("vnp_Locale"))
}

func TestBuildPaymentURL_InvalidRequest(t *testing.T) {
	client := testClient(t)

	_, err := client.BuildPaymentURL(PaymentRequest{TxnRef: "", Amount: 100000})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = client.BuildPaymentURL(PaymentRequest{TxnRef: "42", Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func returnQuery() url.Values {
	query := url.Values{}
	query.Set("vnp_Amount", "10000000")
	query.Set("vnp_BankCode", "NCB")
	query.Set("vnp_CardType", "ATM")
	query.Set("vnp_PayDate", "20240105093512")
	query.Set("vnp_ResponseCode", "00")
	query.Set("vnp_TmnCode", "GLOW0001")
	query.Set("vnp_TransactionNo", "14226112")
	query.Set("vnp_TxnRef", "42")
	query.Set("vnp_SecureHash",
		"15c011a1d1e24b3103aefe3bb21e5118c2654b65acb18d18dbc9ea530c6432c351c7fe0520da445209c4457a79bda648e73c70c425fb096e325daf2847b3aded")
	return query
}

func TestVerifyReturn(t *testing.T) {
	client := testClient(t)

	data, err := client.VerifyReturn(returnQuery())
	require.NoError(t, err)
	assert.Equal(t, "42", data.TxnRef)
	assert.Equal(t, int64(100000), data.Amount)
	assert.Equal(t, "14226112", data.TransactionNo)
	assert.Equal(t, "NCB", data.BankCode)
	assert.Equal(t, "ATM", data.CardType)
	assert.True(t, data.Success())
}

func TestVerifyReturn_IgnoresSecureHashType(t *testing.T) {
	client := testClient(t)

	query := returnQuery()
	query.Set("vnp_SecureHashType", "HmacSHA512")

	data, err := client.VerifyReturn(query)
	require.NoError(t, err)
	assert.Equal(t, "42", data.TxnRef)
}

func TestVerifyReturn_TamperedAmount(t *testing.T) {
	client := testClient(t)

	query := returnQuery()
	query.Set("vnp_Amount", "1000000")

	_, err := client.VerifyReturn(query)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyReturn_MissingSignature(t *testing.T) {
	client := testClient(t)

	query := returnQuery()
	query.Del("vnp_SecureHash")

	_, err := client.VerifyReturn(query)
	assert.ErrorIs(t, err, ErrMissingSignature)
}

func TestVerifyReturn_FailureResponseCode(t *testing.T) {
	client := testClient(t)

	query := url.Values{}
	for key, values := range returnQuery() {
		if key == "vnp_SecureHash" {
			continue
		}
		query.Set(key, values[0])
	}
	query.Set("vnp_ResponseCode", "24")
	query.Set("vnp_SecureHash", client.sign(query.Encode()))

	data, err := client.VerifyReturn(query)
	require.NoError(t, err)
	assert.False(t, data.Success())
}
