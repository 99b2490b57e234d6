package payos

// StatusPaid is the payment link status for a completed payment.
const StatusPaid = "PAID"

// CreateRequest is the merchant-side input for a payment link.
type CreateRequest struct {
	// OrderCode is the numeric merchant order reference
	OrderCode int64

	// Amount is the order total in VND
	Amount int64

	// Description is the short payment label shown to the customer
	Description string
}

// createPayload is the wire format of the payment-requests call.
type createPayload struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReturnURL   string `json:"returnUrl"`
	CancelURL   string `json:"cancelUrl"`
	Signature   string `json:"signature"`
}

// CreateResponse is the PayOS payment-link result.
type CreateResponse struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
	Data struct {
		PaymentLinkID string `json:"paymentLinkId"`
		OrderCode     int64  `json:"orderCode"`
		Amount        int64  `json:"amount"`
		CheckoutURL   string `json:"checkoutUrl"`
		QRCode        string `json:"qrCode"`
		Status        string `json:"status"`
	} `json:"data"`
}

// Notification is the payment status callback body.
type Notification struct {
	OrderCode int64  `json:"orderCode"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Signature string `json:"signature"`
}

// Success reports whether PayOS marked the payment as completed.
func (n Notification) Success() bool {
	return n.Status == StatusPaid
}
