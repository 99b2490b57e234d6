package model

import (
	"time"

	"gorm.io/gorm"
)

// ShippingMethod is immutable reference data. Its cost is copied into each
// order at creation time, so later price changes never alter past orders.
type ShippingMethod struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Cost      float64        `gorm:"not null" json:"shipping_amount"`
	Method    string         `gorm:"type:varchar(50)" json:"method"` // carrier label
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ShippingMethod) TableName() string {
	return "shipping_methods"
}
