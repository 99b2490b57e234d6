package service

import (
	"errors"
	"time"

	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/internal/app/repository"
	"github.com/thanhngo/glowcare-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrVoucherNotFound = errors.New("voucher not found")
	ErrInvalidVoucher  = errors.New("invalid voucher data")
)

type VoucherService interface {
	CreateVoucher(voucher *model.Voucher) error
	GetAllVouchers() ([]model.Voucher, error)
	GetVoucherByID(id uint) (*model.Voucher, error)
	GetVoucherByCode(code string) (*model.Voucher, error)
	UpdateVoucher(voucher *model.Voucher) error
	DeleteVoucher(id uint) error
	// Evaluate returns the discount an order placed at `now` gets from the
	// voucher. Outside the validity window the discount is zero and applied
	// is false; the order still goes through.
	Evaluate(voucherID uint, now time.Time) (discount float64, applied bool, err error)
	RefreshStatuses(now time.Time) (int64, error)
}

type voucherService struct {
	voucherRepo repository.VoucherRepository
}

func NewVoucherService(voucherRepo repository.VoucherRepository) VoucherService {
	return &voucherService{voucherRepo: voucherRepo}
}

func (s *voucherService) CreateVoucher(voucher *model.Voucher) error {
	if voucher.Code == "" || voucher.DiscountAmount <= 0 {
		return ErrInvalidVoucher
	}
	if !voucher.ExpiryDate.After(voucher.StartDate) {
		return ErrInvalidVoucher
	}

	voucher.Status = model.VoucherStatusFor(voucher, time.Now())
	if err := s.voucherRepo.Create(voucher); err != nil {
		return err
	}

	logger.Info("Voucher created", map[string]interface{}{
		"voucher_id": voucher.ID,
		"code":       voucher.Code,
	})
	return nil
}

func (s *voucherService) GetAllVouchers() ([]model.Voucher, error) {
	vouchers, err := s.voucherRepo.FindAll()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range vouchers {
		s.reconcileStatus(&vouchers[i], now)
	}
	return vouchers, nil
}

func (s *voucherService) GetVoucherByID(id uint) (*model.Voucher, error) {
	voucher, err := s.voucherRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	s.reconcileStatus(voucher, time.Now())
	return voucher, nil
}

func (s *voucherService) GetVoucherByCode(code string) (*model.Voucher, error) {
	voucher, err := s.voucherRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	s.reconcileStatus(voucher, time.Now())
	return voucher, nil
}

func (s *voucherService) UpdateVoucher(voucher *model.Voucher) error {
	if _, err := s.voucherRepo.FindByID(voucher.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVoucherNotFound
		}
		return err
	}
	if !voucher.ExpiryDate.After(voucher.StartDate) {
		return ErrInvalidVoucher
	}
	voucher.Status = model.VoucherStatusFor(voucher, time.Now())
	return s.voucherRepo.Update(voucher)
}

func (s *voucherService) DeleteVoucher(id uint) error {
	if _, err := s.voucherRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVoucherNotFound
		}
		return err
	}
	return s.voucherRepo.Delete(id)
}

func (s *voucherService) Evaluate(voucherID uint, now time.Time) (float64, bool, error) {
	voucher, err := s.voucherRepo.FindByID(voucherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, ErrVoucherNotFound
		}
		return 0, false, err
	}

	if !voucher.Applicable(now) {
		logger.Info("Voucher outside validity window, no discount applied", map[string]interface{}{
			"voucher_id": voucher.ID,
			"code":       voucher.Code,
		})
		return 0, false, nil
	}
	return voucher.DiscountAmount, true, nil
}

// RefreshStatuses flips vouchers whose window has closed to inactive. The
// read paths already derive status lazily; this keeps the stored column in
// line for anything querying the table directly.
func (s *voucherService) RefreshStatuses(now time.Time) (int64, error) {
	count, err := s.voucherRepo.ExpireBefore(now)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info("Expired vouchers deactivated", map[string]interface{}{
			"count": count,
		})
	}
	return count, nil
}

// reconcileStatus re-derives the status and persists it when the stored
// value is stale.
func (s *voucherService) reconcileStatus(voucher *model.Voucher, now time.Time) {
	derived := model.VoucherStatusFor(voucher, now)
	if voucher.Status == derived {
		return
	}
	voucher.Status = derived
	if err := s.voucherRepo.UpdateStatus(voucher.ID, derived); err != nil {
		logger.Warn("Failed to persist derived voucher status", map[string]interface{}{
			"voucher_id": voucher.ID,
		})
	}
}
