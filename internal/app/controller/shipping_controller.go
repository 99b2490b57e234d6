package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/internal/app/service"
	apperrors "github.com/thanhngo/glowcare-backend/internal/errors"
	"github.com/thanhngo/glowcare-backend/internal/middleware"
)

type ShippingController struct {
	shippingService service.ShippingService
}

func NewShippingController(shippingService service.ShippingService) *ShippingController {
	return &ShippingController{shippingService: shippingService}
}

type ShippingMethodRequest struct {
	Name   string  `json:"name" binding:"required"`
	Cost   float64 `json:"shipping_amount" binding:"gte=0"`
	Method string  `json:"method"`
}

// ListMethods returns all shipping methods, cheapest first
// GET /api/v1/shipping-methods
func (ctrl *ShippingController) ListMethods(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	methods, err := ctrl.shippingService.GetAllMethods()
	if err != nil {
		log.Error("Failed to list shipping methods", err)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch shipping methods")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shipping_methods": methods,
		"count":            len(methods),
	})
}

// CreateMethod creates a shipping method (admin)
// POST /api/v1/manager/shipping-methods
func (ctrl *ShippingController) CreateMethod(c *gin.Context) {
	var req ShippingMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid shipping method data")
		return
	}

	method := &model.ShippingMethod{
		Name:   req.Name,
		Cost:   req.Cost,
		Method: req.Method,
	}
	if err := ctrl.shippingService.CreateMethod(method); err != nil {
		if errors.Is(err, service.ErrInvalidShippingMethod) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid shipping method data")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create shipping method")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Shipping method created",
		"shipping_method": method,
	})
}

// UpdateMethod updates a shipping method (admin)
// PUT /api/v1/manager/shipping-methods/:id
func (ctrl *ShippingController) UpdateMethod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid shipping method ID")
		return
	}

	var req ShippingMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid shipping method data")
		return
	}

	method, err := ctrl.shippingService.GetMethodByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrShippingMethodNotFound) {
			apperrors.NotFound(c, apperrors.ShippingNotFound, "Shipping method not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch shipping method")
		return
	}

	method.Name = req.Name
	method.Cost = req.Cost
	method.Method = req.Method

	if err := ctrl.shippingService.UpdateMethod(method); err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update shipping method")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Shipping method updated",
		"shipping_method": method,
	})
}

// DeleteMethod removes a shipping method (admin)
// DELETE /api/v1/manager/shipping-methods/:id
func (ctrl *ShippingController) DeleteMethod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid shipping method ID")
		return
	}

	if err := ctrl.shippingService.DeleteMethod(uint(id)); err != nil {
		if errors.Is(err, service.ErrShippingMethodNotFound) {
			apperrors.NotFound(c, apperrors.ShippingNotFound, "Shipping method not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete shipping method")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipping method deleted",
	})
}
