package model

import (
	"time"
)

type PaymentProvider string

const (
	ProviderMoMo  PaymentProvider = "momo"
	ProviderVNPay PaymentProvider = "vnpay"
	ProviderPayOS PaymentProvider = "payos"
)

type PaymentState string

const (
	PaymentStatePending PaymentState = "pending"
	PaymentStateSuccess PaymentState = "success"
	PaymentStateFailed  PaymentState = "failed"
)

// Payment is one gateway payment attempt for an order. An order may carry
// several attempts (retries), but the unique (provider, transaction_no) index
// makes callback reconciliation idempotent: a duplicate IPN cannot insert a
// second row for the same gateway transaction. Rows are never soft-deleted;
// payment history is append-only.
type Payment struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	OrderID       uint            `gorm:"not null;index" json:"order_id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Provider      PaymentProvider `gorm:"type:varchar(20);not null;uniqueIndex:idx_payments_provider_txn" json:"provider"`
	TransactionNo string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_payments_provider_txn" json:"transaction_no"`
	Amount        float64         `gorm:"not null" json:"amount"`
	Status        PaymentState    `gorm:"type:varchar(20);not null" json:"status"`
	BankCode      string          `gorm:"type:varchar(30)" json:"bank_code,omitempty"`
	CardType      string          `gorm:"type:varchar(30)" json:"card_type,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
