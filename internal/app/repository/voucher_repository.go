package repository

import (
	"time"

	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/pkg/logger"
	"gorm.io/gorm"
)

type VoucherRepository interface {
	Create(voucher *model.Voucher) error
	FindAll() ([]model.Voucher, error)
	FindByID(id uint) (*model.Voucher, error)
	FindByCode(code string) (*model.Voucher, error)
	Update(voucher *model.Voucher) error
	UpdateStatus(id uint, status model.VoucherStatus) error
	Delete(id uint) error
	ExpireBefore(now time.Time) (int64, error)
}

type voucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) VoucherRepository {
	return &voucherRepository{db: db}
}

func (r *voucherRepository) Create(voucher *model.Voucher) error {
	if err := r.db.Create(voucher).Error; err != nil {
		logger.Error("Failed to create voucher in database", err, map[string]interface{}{
			"code": voucher.Code,
		})
		return err
	}
	return nil
}

func (r *voucherRepository) FindAll() ([]model.Voucher, error) {
	var vouchers []model.Voucher
	if err := r.db.Order("expiry_date ASC").Find(&vouchers).Error; err != nil {
		logger.Error("Failed to list vouchers from database", err)
		return nil, err
	}
	return vouchers, nil
}

func (r *voucherRepository) FindByID(id uint) (*model.Voucher, error) {
	var voucher model.Voucher
	if err := r.db.First(&voucher, id).Error; err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *voucherRepository) FindByCode(code string) (*model.Voucher, error) {
	var voucher model.Voucher
	if err := r.db.Where("code = ?", code).First(&voucher).Error; err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *voucherRepository) Update(voucher *model.Voucher) error {
	if err := r.db.Save(voucher).Error; err != nil {
		logger.Error("Failed to update voucher in database", err, map[string]interface{}{
			"voucher_id": voucher.ID,
		})
		return err
	}
	return nil
}

func (r *voucherRepository) UpdateStatus(id uint, status model.VoucherStatus) error {
	if err := r.db.Model(&model.Voucher{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update voucher status in database", err, map[string]interface{}{
			"voucher_id": id,
			"status":     status,
		})
		return err
	}
	return nil
}

func (r *voucherRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Voucher{}, id).Error; err != nil {
		logger.Error("Failed to delete voucher from database", err, map[string]interface{}{
			"voucher_id": id,
		})
		return err
	}
	return nil
}

// ExpireBefore flips every still-active voucher whose window has closed to
// inactive and returns how many rows changed. Used by the refresh job.
func (r *voucherRepository) ExpireBefore(now time.Time) (int64, error) {
	result := r.db.Model(&model.Voucher{}).
		Where("status = ? AND expiry_date < ?", model.VoucherStatusActive, now).
		Update("status", model.VoucherStatusInactive)
	if result.Error != nil {
		logger.Error("Failed to expire vouchers in database", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
