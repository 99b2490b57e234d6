package momo

// ResultCodeSuccess is the resultCode value for a successful payment.
const ResultCodeSuccess = 0

// requestTypeCaptureWallet is the only flow this client supports.
const requestTypeCaptureWallet = "captureWallet"

// CreateRequest is the merchant-side input for a wallet payment.
type CreateRequest struct {
	// OrderID is the merchant order reference, unique per payment attempt
	OrderID string

	// RequestID is the idempotency key for the create call
	RequestID string

	// Amount is the order total in VND
	Amount int64

	// OrderInfo is the human-readable payment description
	OrderInfo string

	// ExtraData is an optional base64 passthrough, may be empty
	ExtraData string
}

// createPayload is the wire format of the create-payment call.
type createPayload struct {
	PartnerCode string `json:"partnerCode"`
	AccessKey   string `json:"accessKey"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IPNURL      string `json:"ipnUrl"`
	ExtraData   string `json:"extraData"`
	RequestType string `json:"requestType"`
	Signature   string `json:"signature"`
	Lang        string `json:"lang"`
}

// CreateResponse is the MoMo create-payment result.
type CreateResponse struct {
	PartnerCode string `json:"partnerCode"`
	OrderID     string `json:"orderId"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	PayURL      string `json:"payUrl"`
	Deeplink    string `json:"deeplink"`
	QRCodeURL   string `json:"qrCodeUrl"`
	ResultCode  int    `json:"resultCode"`
	Message     string `json:"message"`
}

// IPNRequest is the server-to-server payment notification body.
type IPNRequest struct {
	PartnerCode  string `json:"partnerCode"`
	OrderID      string `json:"orderId"`
	RequestID    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	OrderInfo    string `json:"orderInfo"`
	OrderType    string `json:"orderType"`
	TransID      int64  `json:"transId"`
	ResultCode   int    `json:"resultCode"`
	Message      string `json:"message"`
	PayType      string `json:"payType"`
	ResponseTime int64  `json:"responseTime"`
	ExtraData    string `json:"extraData"`
	Signature    string `json:"signature"`
}

// Success reports whether MoMo marked the payment as completed.
func (r IPNRequest) Success() bool {
	return r.ResultCode == ResultCodeSuccess
}
