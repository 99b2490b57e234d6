package model

import (
	"time"

	"gorm.io/gorm"
)

type VoucherStatus string

const (
	VoucherStatusActive   VoucherStatus = "active"
	VoucherStatusInactive VoucherStatus = "inactive"
)

type Voucher struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Code           string         `gorm:"uniqueIndex;not null" json:"code"`
	DiscountAmount float64        `gorm:"not null" json:"discount_amount"`
	Status         VoucherStatus  `gorm:"type:varchar(20);default:'active'" json:"status"`
	StartDate      time.Time      `gorm:"not null" json:"start_date"`
	ExpiryDate     time.Time      `gorm:"not null" json:"expiry_date"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Voucher) TableName() string {
	return "vouchers"
}

// VoucherStatusFor derives a voucher's status from its validity window.
// Every read path and the refresh job use this single function, so the
// persisted status column cannot drift from the rule that derives it.
func VoucherStatusFor(v *Voucher, now time.Time) VoucherStatus {
	if now.Before(v.StartDate) || now.After(v.ExpiryDate) {
		return VoucherStatusInactive
	}
	return VoucherStatusActive
}

// Applicable reports whether the voucher yields a discount at `now`.
func (v *Voucher) Applicable(now time.Time) bool {
	return VoucherStatusFor(v, now) == VoucherStatusActive
}
