package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	OrderStatusPending            OrderStatus = "Pending"
	OrderStatusWaitingForDelivery OrderStatus = "Waiting for Delivery"
	OrderStatusDelivered          OrderStatus = "Delivered"
	OrderStatusCompleted          OrderStatus = "Completed"
	OrderStatusFailed             OrderStatus = "Failed"

	PaymentStatusPending           PaymentStatus = "Pending"
	PaymentStatusWaitingForPayment PaymentStatus = "Waiting for Payment"
	PaymentStatusPaid              PaymentStatus = "Paid"
	PaymentStatusFailed            PaymentStatus = "Failed"

	PaymentMethodCOD   PaymentMethod = "Cash on Delivery"
	PaymentMethodVNPay PaymentMethod = "VNpay Payment"
)

// Order is the aggregate root of checkout. Shipping name/cost and all money
// amounts are snapshots computed at creation time and never recalculated.
type Order struct {
	ID                   uint           `gorm:"primarykey" json:"id"`
	UserID               uint           `gorm:"not null;index" json:"user_id"`
	ShippingMethodID     uint           `gorm:"not null" json:"shipping_method_id"`
	ShippingName         string         `gorm:"not null" json:"shipping_name"`
	ShippingCost         float64        `gorm:"not null" json:"shipping_cost"`
	VoucherID            *uint          `gorm:"index" json:"voucher_id,omitempty"`
	ShippingAddress      string         `gorm:"type:text;not null" json:"shipping_address"`
	Subtotal             float64        `gorm:"not null" json:"subtotal_of_cart"`
	TotalAmount          float64        `gorm:"not null" json:"total_amount"`
	PaymentMethod        PaymentMethod  `gorm:"type:varchar(30);not null" json:"payment_method"`
	PaymentStatus        PaymentStatus  `gorm:"type:varchar(30);not null" json:"payment_status"`
	Status               OrderStatus    `gorm:"type:varchar(30);not null" json:"status"`
	OrderDate            time.Time      `gorm:"not null" json:"order_date"`
	ExpectedDeliveryDate time.Time      `gorm:"not null" json:"expected_delivery_date"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Voucher    *Voucher    `gorm:"foreignKey:VoucherID" json:"voucher,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
	Payments   []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one distinct product in an order. Price is the line total
// (discounted price x quantity) at purchase time; later product price changes
// do not touch it.
type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	Price     float64        `gorm:"not null" json:"price"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
