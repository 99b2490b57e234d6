package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/internal/app/service"
	apperrors "github.com/thanhngo/glowcare-backend/internal/errors"
	"github.com/thanhngo/glowcare-backend/internal/middleware"
)

type VoucherController struct {
	voucherService service.VoucherService
}

func NewVoucherController(voucherService service.VoucherService) *VoucherController {
	return &VoucherController{voucherService: voucherService}
}

type VoucherRequest struct {
	Code           string    `json:"code" binding:"required"`
	DiscountAmount float64   `json:"discount_amount" binding:"required,gt=0"`
	StartDate      time.Time `json:"start_date" binding:"required"`
	ExpiryDate     time.Time `json:"expiry_date" binding:"required"`
}

// ListVouchers returns all vouchers with their derived statuses. With a
// ?code= query it looks up that single voucher instead, for storefront
// code validation at checkout.
// GET /api/v1/vouchers
func (ctrl *VoucherController) ListVouchers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if code := c.Query("code"); code != "" {
		voucher, err := ctrl.voucherService.GetVoucherByCode(code)
		if err != nil {
			if errors.Is(err, service.ErrVoucherNotFound) {
				apperrors.NotFound(c, apperrors.VoucherNotFound, "Voucher not found")
				return
			}
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch voucher")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"voucher": voucher,
		})
		return
	}

	vouchers, err := ctrl.voucherService.GetAllVouchers()
	if err != nil {
		log.Error("Failed to list vouchers", err)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch vouchers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vouchers": vouchers,
		"count":    len(vouchers),
	})
}

// GetVoucher returns one voucher by ID
// GET /api/v1/vouchers/:id
func (ctrl *VoucherController) GetVoucher(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid voucher ID")
		return
	}

	voucher, err := ctrl.voucherService.GetVoucherByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrVoucherNotFound) {
			apperrors.NotFound(c, apperrors.VoucherNotFound, "Voucher not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch voucher")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"voucher": voucher,
	})
}

// CreateVoucher creates a voucher (admin)
// POST /api/v1/manager/vouchers
func (ctrl *VoucherController) CreateVoucher(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid voucher data")
		return
	}

	voucher := &model.Voucher{
		Code:           req.Code,
		DiscountAmount: req.DiscountAmount,
		StartDate:      req.StartDate,
		ExpiryDate:     req.ExpiryDate,
	}
	if err := ctrl.voucherService.CreateVoucher(voucher); err != nil {
		if errors.Is(err, service.ErrInvalidVoucher) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid voucher data")
			return
		}
		log.Error("Failed to create voucher", err)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create voucher")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Voucher created",
		"voucher": voucher,
	})
}

// UpdateVoucher updates a voucher (admin)
// PUT /api/v1/manager/vouchers/:id
func (ctrl *VoucherController) UpdateVoucher(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid voucher ID")
		return
	}

	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid voucher data")
		return
	}

	voucher, err := ctrl.voucherService.GetVoucherByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrVoucherNotFound) {
			apperrors.NotFound(c, apperrors.VoucherNotFound, "Voucher not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch voucher")
		return
	}

	voucher.Code = req.Code
	voucher.DiscountAmount = req.DiscountAmount
	voucher.StartDate = req.StartDate
	voucher.ExpiryDate = req.ExpiryDate

	if err := ctrl.voucherService.UpdateVoucher(voucher); err != nil {
		if errors.Is(err, service.ErrInvalidVoucher) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid voucher data")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update voucher")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Voucher updated",
		"voucher": voucher,
	})
}

// DeleteVoucher removes a voucher (admin)
// DELETE /api/v1/manager/vouchers/:id
func (ctrl *VoucherController) DeleteVoucher(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid voucher ID")
		return
	}

	if err := ctrl.voucherService.DeleteVoucher(uint(id)); err != nil {
		if errors.Is(err, service.ErrVoucherNotFound) {
			apperrors.NotFound(c, apperrors.VoucherNotFound, "Voucher not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete voucher")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Voucher deleted",
	})
}
