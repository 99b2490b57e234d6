package vnpay

import "time"

// ResponseCodeSuccess is the vnp_ResponseCode value for a successful payment.
const ResponseCodeSuccess = "00"

// PaymentRequest holds the merchant-side parameters for a hosted payment URL.
type PaymentRequest struct {
	// TxnRef is the merchant transaction reference, unique per payment attempt
	TxnRef string

	// Amount is the order total in VND. The wire value is multiplied by 100.
	Amount int64

	// OrderInfo is the human-readable payment description
	OrderInfo string

	// IPAddr is the customer's IP address
	IPAddr string

	// BankCode preselects a bank on the VNPay page when set
	BankCode string

	// Locale is "vn" or "en", defaults to "vn"
	Locale string

	// CreateDate is the request timestamp. Zero value means time.Now().
	CreateDate time.Time
}

// ReturnData is the verified result of a VNPay return or IPN callback.
type ReturnData struct {
	TxnRef        string
	Amount        int64
	ResponseCode  string
	TransactionNo string
	BankCode      string
	CardType      string
	PayDate       string
	OrderInfo     string
}

// Success reports whether VNPay marked the payment as completed.
func (d ReturnData) Success() bool {
	return d.ResponseCode == ResponseCodeSuccess
}
