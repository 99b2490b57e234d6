package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed database error: a stable code plus a message that is
// safe to show to the client.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps gorm/Postgres errors to client-safe codes and messages.
// The raw driver error is never surfaced.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred"}
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	// Unique constraint violation (23505)
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		switch {
		case strings.Contains(errStr, "email"):
			return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "Email is already registered"}
		case strings.Contains(errStr, "code"):
			return ErrorInfo{Code: ResourceAlreadyExists, Message: "Voucher code is already in use"}
		case strings.Contains(errStr, "provider") && strings.Contains(errStr, "transaction"):
			return ErrorInfo{Code: PaymentAlreadyProcessed, Message: "Transaction has already been recorded"}
		}
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Record already exists"}
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errStr, "foreign key constraint") {
		if strings.Contains(errStr, "still referenced") {
			return ErrorInfo{Code: ResourceConflict, Message: "Record is referenced by other data and cannot be deleted"}
		}
		return ErrorInfo{Code: ResourceNotFound, Message: "Referenced record does not exist"}
	}

	// Connectivity problems talking to the database or a gateway
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{Code: InternalExternalAPI, Message: "Upstream service is unavailable, please try again later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred, please try again later"}
}

// ParseAndRespond parses the error and writes the standard envelope. Meant
// for the controllers' fallback branches.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "product"):
		return "Product not found"
	case strings.Contains(contextLower, "cart"):
		return "Cart not found"
	case strings.Contains(contextLower, "order"):
		return "Order not found"
	case strings.Contains(contextLower, "voucher"):
		return "Voucher not found"
	case strings.Contains(contextLower, "shipping"):
		return "Shipping method not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	}
	return "Requested record not found"
}
