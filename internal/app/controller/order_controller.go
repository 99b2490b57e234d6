package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/internal/app/service"
	apperrors "github.com/thanhngo/glowcare-backend/internal/errors"
	"github.com/thanhngo/glowcare-backend/internal/middleware"
)

type OrderController struct {
	orderService  service.OrderService
	reportService service.ReportService
}

func NewOrderController(orderService service.OrderService, reportService service.ReportService) *OrderController {
	return &OrderController{orderService: orderService, reportService: reportService}
}

type PlaceOrderRequest struct {
	ShippingMethodID uint   `json:"shipping_method_id" binding:"required"`
	VoucherID        *uint  `json:"voucher_id"`
	ShippingAddress  string `json:"shipping_address" binding:"required"`
	PaymentMethod    string `json:"payment_method" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PlaceOrder converts the user's cart into an order
// POST /api/v1/orders
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid order data")
		return
	}

	method := model.PaymentMethod(req.PaymentMethod)
	if method != model.PaymentMethodCOD && method != model.PaymentMethodVNPay {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unsupported payment method")
		return
	}

	order, err := ctrl.orderService.PlaceOrder(userID, service.PlaceOrderInput{
		ShippingMethodID: req.ShippingMethodID,
		VoucherID:        req.VoucherID,
		ShippingAddress:  req.ShippingAddress,
		PaymentMethod:    method,
	})
	if err != nil {
		var stockErr *service.StockExceededError
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.BadRequest(c, apperrors.CartNotFound, "Cart is empty")
		case errors.Is(err, service.ErrShippingMethodNotFound):
			apperrors.NotFound(c, apperrors.ShippingNotFound, "Shipping method not found")
		case errors.Is(err, service.ErrVoucherNotFound):
			apperrors.NotFound(c, apperrors.VoucherNotFound, "Voucher not found")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Product not found")
		case errors.As(err, &stockErr):
			apperrors.StockExceeded(c, stockErr.Available)
		default:
			log.Error("Failed to place order", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "place order")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed",
		"order":   order,
	})
}

// ListOrders returns the authenticated user's orders, newest first
// GET /api/v1/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to list orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns one of the user's orders
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
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

	order, err := ctrl.orderService.GetUserOrderByID(userID, uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// ListAllOrders returns every order (admin)
// GET /api/v1/manager/orders
func (ctrl *OrderController) ListAllOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.GetAllOrders()
	if err != nil {
		log.Error("Failed to list all orders", err)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrderStatus applies a manager-initiated status change (admin)
// PUT /api/v1/manager/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Status is required")
		return
	}

	order, err := ctrl.orderService.UpdateOrderStatus(uint(orderID), model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown order status")
		case errors.Is(err, service.ErrOrderUnpaid):
			apperrors.Conflict(c, apperrors.OrderUnpaid, "Order is still waiting for payment")
		case errors.Is(err, service.ErrIllegalTransition):
			apperrors.Conflict(c, apperrors.OrderIllegalTransition, "Order cannot move to that status")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": orderID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update order status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}

// ConfirmDelivery marks a waiting order as delivered (admin)
// PUT /api/v1/manager/orders/:id/deliver
func (ctrl *OrderController) ConfirmDelivery(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.ConfirmDelivery(uint(orderID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrIllegalTransition):
			apperrors.Conflict(c, apperrors.OrderIllegalTransition, "Order is not waiting for delivery")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "confirm order delivery")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order delivered",
		"order":   order,
	})
}

// ExportOrders streams an XLSX report of orders in a date range (admin)
// GET /api/v1/manager/orders/export?from=2026-01-01&to=2026-02-01
func (ctrl *OrderController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Invalid or missing 'from' date (want YYYY-MM-DD)")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Invalid or missing 'to' date (want YYYY-MM-DD)")
		return
	}
	if !to.After(from) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "'to' must be after 'from'")
		return
	}

	buf, err := ctrl.reportService.ExportOrders(from, to)
	if err != nil {
		log.Error("Failed to export orders", err)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "export orders")
		return
	}

	filename := service.ExportFilename(from, to)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
