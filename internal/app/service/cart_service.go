package service

import (
	"errors"
	"fmt"

	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/internal/app/repository"
	"github.com/thanhngo/glowcare-backend/pkg/logger"
	"github.com/thanhngo/glowcare-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrStockExceeded    = errors.New("requested quantity exceeds available stock")
)

// StockExceededError carries the remaining stock so the handler can tell the
// customer how many units they can still order.
type StockExceededError struct {
	ProductID int
	Available int
}

func (e *StockExceededError) Error() string {
	return fmt.Sprintf("only %d left in stock", e.Available)
}

func (e *StockExceededError) Is(target error) bool {
	return target == ErrStockExceeded
}

type CartService interface {
	GetCart(userID uint) (*model.Cart, error)
	AddItem(userID, productID uint, quantity int) (*model.Cart, error)
	UpdateItem(userID, itemID uint, quantity int) (*model.Cart, error)
	RemoveItem(userID, itemID uint) (*model.Cart, error)
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *cartService) GetCart(userID uint) (*model.Cart, error) {
	return s.cartRepo.FindOrCreateByUserID(userID)
}

// AddItem merges the product into the cart. Adding a product that is already
// in the cart raises that line's quantity instead of creating a second row.
// The merged quantity is checked against stock; the cached line price is
// recomputed from the product's current discounted price.
func (s *cartService) AddItem(userID, productID uint, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := s.cartRepo.FindOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}

	newQuantity := quantity
	existing, err := s.cartRepo.FindItemByCartAndProduct(cart.ID, productID)
	switch {
	case err == nil:
		newQuantity += existing.Quantity
	case errors.Is(err, gorm.ErrRecordNotFound):
		existing = nil
	default:
		return nil, err
	}

	if newQuantity > product.Quantity {
		logger.Warn("Cart add rejected: not enough stock", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"requested":  newQuantity,
			"available":  product.Quantity,
		})
		return nil, &StockExceededError{ProductID: int(productID), Available: product.Quantity}
	}

	price := util.Round2(product.DiscountedPrice * float64(newQuantity))
	if existing != nil {
		existing.Quantity = newQuantity
		existing.Price = price
		if err := s.cartRepo.UpdateItem(existing); err != nil {
			return nil, err
		}
	} else {
		item := &model.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  newQuantity,
			Price:     price,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}

	logger.Info("Cart item added", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   newQuantity,
	})
	return s.cartRepo.FindByUserID(userID)
}

// UpdateItem sets the line quantity directly and reprices the line from the
// product's current discounted price. Unlike AddItem there is no stock check
// here; stock is enforced again when the order is placed.
func (s *cartService) UpdateItem(userID, itemID uint, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	item.Quantity = quantity
	item.Price = util.Round2(product.DiscountedPrice * float64(quantity))
	if err := s.cartRepo.UpdateItem(item); err != nil {
		return nil, err
	}

	return s.cartRepo.FindByUserID(cart.UserID)
}

func (s *cartService) RemoveItem(userID, itemID uint) (*model.Cart, error) {
	cart, item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return nil, err
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": itemID,
	})
	return s.cartRepo.FindByUserID(cart.UserID)
}

func (s *cartService) ClearCart(userID uint) error {
	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		return err
	}
	return s.cartRepo.DeleteItemsByCartID(cart.ID)
}

// ownedItem resolves a cart item and verifies it belongs to the user's cart.
func (s *cartService) ownedItem(userID, itemID uint) (*model.Cart, *model.CartItem, error) {
	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCartNotFound
		}
		return nil, nil, err
	}

	item, err := s.cartRepo.FindItemByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCartItemNotFound
		}
		return nil, nil, err
	}
	if item.CartID != cart.ID {
		return nil, nil, ErrCartItemNotFound
	}
	return cart, item, nil
}
