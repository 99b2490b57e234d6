package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thanhngo/glowcare-backend/internal/app/service"
	apperrors "github.com/thanhngo/glowcare-backend/internal/errors"
	"github.com/thanhngo/glowcare-backend/internal/middleware"
	"github.com/thanhngo/glowcare-backend/pkg/payment/momo"
	"github.com/thanhngo/glowcare-backend/pkg/payment/payos"
)

type PaymentController struct {
	paymentService service.PaymentService
}

func NewPaymentController(paymentService service.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// orderIDParam parses the :orderID route parameter.
func orderIDParam(c *gin.Context) (uint, bool) {
	orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return 0, false
	}
	return uint(orderID), true
}

// createErrors maps the shared payment-creation failures to responses.
func (ctrl *PaymentController) respondCreateError(c *gin.Context, err error, provider string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
	case errors.Is(err, service.ErrOrderAlreadyPaid):
		apperrors.Conflict(c, apperrors.PaymentAlreadyProcessed, "Order is already paid")
	case errors.Is(err, service.ErrPaymentNotRequired):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Order is paid on delivery")
	case errors.Is(err, service.ErrAmountOutOfRange):
		apperrors.BadRequest(c, apperrors.PaymentInvalidAmount, "Order total is outside the gateway's accepted range")
	default:
		log.Error("Failed to create payment", err, map[string]interface{}{
			"provider": provider,
		})
		// Surface the gateway's response so a rejected request is debuggable.
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.GatewayRequestFailed, err.Error())
	}
}

// CreateVNPayPayment issues a hosted VNPay payment URL. A cash on delivery
// order gets no URL; it is switched to online payment and set back to Pending.
// POST /api/v1/payments/vnpay/create/:orderID
func (ctrl *PaymentController) CreateVNPayPayment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	paymentURL, err := ctrl.paymentService.CreateVNPayPayment(userID, orderID, c.ClientIP())
	if err != nil {
		ctrl.respondCreateError(c, err, "vnpay")
		return
	}

	if paymentURL == "" {
		c.JSON(http.StatusOK, gin.H{
			"message": "Order switched to online payment",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment_url": paymentURL,
	})
}

// VNPayReturn handles the customer redirect back from VNPay
// GET /api/v1/payments/vnpay/return
func (ctrl *PaymentController) VNPayReturn(c *gin.Context) {
	result, err := ctrl.paymentService.HandleVNPayReturn(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		ctrl.respondCallbackError(c, err)
		return
	}

	status := "failed"
	if result.Succeeded {
		status = "success"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Payment processed",
		"status":   status,
		"order_id": result.Order.ID,
	})
}

// CreateMoMoPayment requests a MoMo wallet payment
// POST /api/v1/payments/momo/create/:orderID
func (ctrl *PaymentController) CreateMoMoPayment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	payURL, err := ctrl.paymentService.CreateMoMoPayment(c.Request.Context(), userID, orderID)
	if err != nil {
		ctrl.respondCreateError(c, err, "momo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pay_url": payURL,
	})
}

// MoMoIPN handles the server-to-server payment notification from MoMo.
// MoMo retries until it gets a 2xx, so duplicates answer 204 as well.
// POST /api/v1/payments/momo/ipn
func (ctrl *PaymentController) MoMoIPN(c *gin.Context) {
	var ipn momo.IPNRequest
	if err := c.ShouldBindJSON(&ipn); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid IPN payload")
		return
	}

	if _, err := ctrl.paymentService.HandleMoMoIPN(c.Request.Context(), ipn); err != nil {
		ctrl.respondCallbackError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreatePayOSPayment requests a PayOS checkout link
// POST /api/v1/payments/payos/create/:orderID
func (ctrl *PaymentController) CreatePayOSPayment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	checkoutURL, err := ctrl.paymentService.CreatePayOSPayment(c.Request.Context(), userID, orderID)
	if err != nil {
		ctrl.respondCreateError(c, err, "payos")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkout_url": checkoutURL,
	})
}

// PayOSNotify handles the payment status callback from PayOS
// POST /api/v1/payments/payos/notify
func (ctrl *PaymentController) PayOSNotify(c *gin.Context) {
	var notification payos.Notification
	if err := c.ShouldBindJSON(&notification); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid notification payload")
		return
	}

	if _, err := ctrl.paymentService.HandlePayOSNotify(c.Request.Context(), notification); err != nil {
		ctrl.respondCallbackError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification processed",
	})
}

// ListOrderPayments returns the payment attempts recorded for an order
// GET /api/v1/orders/:id/payments
func (ctrl *PaymentController) ListOrderPayments(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	payments, err := ctrl.paymentService.GetOrderPayments(userID, uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch order payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"count":    len(payments),
	})
}

func (ctrl *PaymentController) respondCallbackError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrInvalidSignature):
		apperrors.BadRequest(c, apperrors.GatewayInvalidSignature, "Signature verification failed")
	case errors.Is(err, service.ErrAmountMismatch):
		apperrors.BadRequest(c, apperrors.PaymentInvalidAmount, "Callback amount does not match the order")
	case errors.Is(err, service.ErrOrderNotFound):
		apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
	case errors.Is(err, service.ErrOrderAlreadyPaid):
		apperrors.Conflict(c, apperrors.PaymentAlreadyProcessed, "Order is already paid by another transaction")
	default:
		log.Error("Failed to process gateway callback", err)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "process payment callback")
	}
}
