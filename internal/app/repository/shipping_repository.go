package repository

import (
	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/pkg/logger"
	"gorm.io/gorm"
)

type ShippingRepository interface {
	Create(method *model.ShippingMethod) error
	FindAll() ([]model.ShippingMethod, error)
	FindByID(id uint) (*model.ShippingMethod, error)
	Update(method *model.ShippingMethod) error
	Delete(id uint) error
}

type shippingRepository struct {
	db *gorm.DB
}

func NewShippingRepository(db *gorm.DB) ShippingRepository {
	return &shippingRepository{db: db}
}

func (r *shippingRepository) Create(method *model.ShippingMethod) error {
	if err := r.db.Create(method).Error; err != nil {
		logger.Error("Failed to create shipping method in database", err, map[string]interface{}{
			"name": method.Name,
		})
		return err
	}
	return nil
}

func (r *shippingRepository) FindAll() ([]model.ShippingMethod, error) {
	var methods []model.ShippingMethod
	if err := r.db.Order("cost ASC").Find(&methods).Error; err != nil {
		logger.Error("Failed to list shipping methods from database", err)
		return nil, err
	}
	return methods, nil
}

func (r *shippingRepository) FindByID(id uint) (*model.ShippingMethod, error) {
	var method model.ShippingMethod
	if err := r.db.First(&method, id).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *shippingRepository) Update(method *model.ShippingMethod) error {
	if err := r.db.Save(method).Error; err != nil {
		logger.Error("Failed to update shipping method in database", err, map[string]interface{}{
			"shipping_method_id": method.ID,
		})
		return err
	}
	return nil
}

func (r *shippingRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.ShippingMethod{}, id).Error; err != nil {
		logger.Error("Failed to delete shipping method from database", err, map[string]interface{}{
			"shipping_method_id": id,
		})
		return err
	}
	return nil
}
