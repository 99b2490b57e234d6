package service

import (
	"errors"

	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/internal/app/repository"
	"gorm.io/gorm"
)

var (
	ErrShippingMethodNotFound = errors.New("shipping method not found")
	ErrInvalidShippingMethod  = errors.New("invalid shipping method data")
)

type ShippingService interface {
	CreateMethod(method *model.ShippingMethod) error
	GetAllMethods() ([]model.ShippingMethod, error)
	GetMethodByID(id uint) (*model.ShippingMethod, error)
	UpdateMethod(method *model.ShippingMethod) error
	DeleteMethod(id uint) error
}

type shippingService struct {
	shippingRepo repository.ShippingRepository
}

func NewShippingService(shippingRepo repository.ShippingRepository) ShippingService {
	return &shippingService{shippingRepo: shippingRepo}
}

func (s *shippingService) CreateMethod(method *model.ShippingMethod) error {
	if method.Name == "" || method.Cost < 0 {
		return ErrInvalidShippingMethod
	}
	return s.shippingRepo.Create(method)
}

func (s *shippingService) GetAllMethods() ([]model.ShippingMethod, error) {
	return s.shippingRepo.FindAll()
}

func (s *shippingService) GetMethodByID(id uint) (*model.ShippingMethod, error) {
	method, err := s.shippingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShippingMethodNotFound
		}
		return nil, err
	}
	return method, nil
}

func (s *shippingService) UpdateMethod(method *model.ShippingMethod) error {
	if _, err := s.shippingRepo.FindByID(method.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShippingMethodNotFound
		}
		return err
	}
	return s.shippingRepo.Update(method)
}

func (s *shippingService) DeleteMethod(id uint) error {
	if _, err := s.shippingRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShippingMethodNotFound
		}
		return err
	}
	return s.shippingRepo.Delete(id)
}
