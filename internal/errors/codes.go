package errors

// Error code constants returned in the JSON error envelope.
// Format: CATEGORY_SPECIFIC_DETAIL. The storefront maps these to messages.

const (
	// Authentication
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// Authorization
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// Validation
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"

	// Resources
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// Cart
	CartNotFound      = "CART_NOT_FOUND"
	CartItemNotFound  = "CART_ITEM_NOT_FOUND"
	CartStockExceeded = "CART_STOCK_EXCEEDED"

	// Orders
	OrderNotFound          = "ORDER_NOT_FOUND"
	OrderIllegalTransition = "ORDER_ILLEGAL_TRANSITION"
	OrderUnpaid            = "ORDER_UNPAID"

	// Vouchers and shipping
	VoucherNotFound  = "VOUCHER_NOT_FOUND"
	ShippingNotFound = "SHIPPING_NOT_FOUND"

	// Payment gateways
	GatewayRequestFailed    = "GATEWAY_REQUEST_FAILED"
	GatewayInvalidSignature = "GATEWAY_INVALID_SIGNATURE"
	PaymentAlreadyProcessed = "PAYMENT_ALREADY_PROCESSED"
	PaymentInvalidAmount    = "PAYMENT_INVALID_AMOUNT"

	// Internal
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
