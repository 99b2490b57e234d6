package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrBadPaymentReference is returned when a gateway callback carries a
// reference this service did not issue.
var ErrBadPaymentReference = errors.New("malformed payment reference")

// PaymentReference builds a unique per-attempt gateway reference for an order.
// Gateways reject duplicate order IDs, so retried attempts need fresh ones.
func PaymentReference(orderID uint) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("GLOW-%d-%s", orderID, suffix)
}

// RequestID generates a unique gateway request ID.
func RequestID() string {
	return uuid.NewString()
}

// ParsePaymentReference recovers the order ID from a PaymentReference value.
func ParsePaymentReference(ref string) (uint, error) {
	parts := strings.Split(ref, "-")
	if len(parts) != 3 || parts[0] != "GLOW" {
		return 0, ErrBadPaymentReference
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil || id == 0 {
		return 0, ErrBadPaymentReference
	}
	return uint(id), nil
}
