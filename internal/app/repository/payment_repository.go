package repository

import (
	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository interface {
	// CreateIfAbsent inserts the payment unless a row with the same
	// (provider, transaction_no) already exists. Returns true when the
	// row was inserted, false when a duplicate was skipped.
	CreateIfAbsent(tx *gorm.DB, payment *model.Payment) (bool, error)
	FindByOrderID(orderID uint) ([]model.Payment, error)
	FindByProviderAndTxn(provider model.PaymentProvider, transactionNo string) (*model.Payment, error)
	// HasSuccessfulForOrder reports whether the order already carries a
	// successful payment recorded under a different transaction number.
	HasSuccessfulForOrder(tx *gorm.DB, orderID uint, transactionNo string) (bool, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateIfAbsent(tx *gorm.DB, payment *model.Payment) (bool, error) {
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}, {Name: "transaction_no"}},
		DoNothing: true,
	}).Create(payment)
	if result.Error != nil {
		logger.Error("Failed to record payment in database", result.Error, map[string]interface{}{
			"order_id":       payment.OrderID,
			"provider":       payment.Provider,
			"transaction_no": payment.TransactionNo,
		})
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *paymentRepository) FindByOrderID(orderID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Where("order_id = ?", orderID).Order("created_at ASC").Find(&payments).Error
	if err != nil {
		logger.Error("Failed to list payments for order from database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindByProviderAndTxn(provider model.PaymentProvider, transactionNo string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("provider = ? AND transaction_no = ?", provider, transactionNo).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) HasSuccessfulForOrder(tx *gorm.DB, orderID uint, transactionNo string) (bool, error) {
	var count int64
	err := tx.Model(&model.Payment{}).
		Where("order_id = ? AND status = ? AND transaction_no <> ?",
			orderID, model.PaymentStateSuccess, transactionNo).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
