package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/thanhngo/glowcare-backend/config"
	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/internal/app/repository"
	"github.com/thanhngo/glowcare-backend/pkg/logger"
	"github.com/thanhngo/glowcare-backend/pkg/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrIllegalTransition  = errors.New("illegal order status transition")
	ErrOrderUnpaid        = errors.New("order has not been paid yet")
	ErrInvalidOrderStatus = errors.New("unknown order status")
)

// TransitionOutcome is the decision of the order status machine for one
// requested move.
type TransitionOutcome int

const (
	// TransitionApply writes the new status.
	TransitionApply TransitionOutcome = iota
	// TransitionNoop leaves the order untouched but the request succeeds.
	TransitionNoop
	// TransitionReject refuses the request.
	TransitionReject
)

var orderStatuses = map[model.OrderStatus]bool{
	model.OrderStatusPending:            true,
	model.OrderStatusWaitingForDelivery: true,
	model.OrderStatusDelivered:          true,
	model.OrderStatusCompleted:          true,
	model.OrderStatusFailed:             true,
}

// orderStatusLocked are the states the generic status endpoint can never move
// an order out of. "Completed" is terminal; "Waiting for Delivery" leaves only
// through the delivery confirmation flow.
var orderStatusLocked = map[model.OrderStatus]bool{
	model.OrderStatusCompleted:          true,
	model.OrderStatusWaitingForDelivery: true,
}

// orderStatusMoves are the moves the generic status endpoint applies. Any
// other request against an unlocked order is a no-op.
var orderStatusMoves = map[model.OrderStatus]map[model.OrderStatus]bool{
	model.OrderStatusDelivered: {model.OrderStatusCompleted: true},
}

// ResolveTransition decides what the generic status endpoint does with a
// request to move an order from one status to another.
func ResolveTransition(from, to model.OrderStatus) TransitionOutcome {
	if orderStatusLocked[from] {
		return TransitionReject
	}
	if orderStatusMoves[from][to] {
		return TransitionApply
	}
	return TransitionNoop
}

type PlaceOrderInput struct {
	ShippingMethodID uint
	VoucherID        *uint
	ShippingAddress  string
	PaymentMethod    model.PaymentMethod
}

type OrderService interface {
	PlaceOrder(userID uint, input PlaceOrderInput) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetUserOrderByID(userID, orderID uint) (*model.Order, error)
	GetOrderByID(orderID uint) (*model.Order, error)
	GetAllOrders() ([]model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error)
	ConfirmDelivery(orderID uint) (*model.Order, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	shippingRepo repository.ShippingRepository
	voucherSvc   VoucherService
	orderCfg     config.OrderConfig
	db           *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	shippingRepo repository.ShippingRepository,
	voucherSvc VoucherService,
	orderCfg config.OrderConfig,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		shippingRepo: shippingRepo,
		voucherSvc:   voucherSvc,
		orderCfg:     orderCfg,
		db:           db,
	}
}

// PlaceOrder turns the user's cart into an order in one transaction. Every
// product row is locked before its stock is checked and decremented, so two
// concurrent checkouts cannot both take the last unit. Prices, the shipping
// cost and the voucher discount are snapshotted onto the order. The cart is
// left in place; checking out again creates another order from it.
func (s *orderService) PlaceOrder(userID uint, input PlaceOrderInput) (*model.Order, error) {
	if input.ShippingAddress == "" {
		return nil, errors.New("shipping address is required")
	}

	logger.Info("Placing order", map[string]interface{}{
		"user_id":            userID,
		"shipping_method_id": input.ShippingMethodID,
		"payment_method":     input.PaymentMethod,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		logger.Warn("Cannot place order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	shipping, err := s.shippingRepo.FindByID(input.ShippingMethodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShippingMethodNotFound
		}
		return nil, err
	}

	now := time.Now()

	var discount float64
	var voucherID *uint
	if input.VoucherID != nil {
		amount, applied, err := s.voucherSvc.Evaluate(*input.VoucherID, now)
		if err != nil {
			return nil, err
		}
		if applied {
			discount = amount
			voucherID = input.VoucherID
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order placement, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	var (
		subtotal   float64
		orderItems []model.OrderItem
	)
	for _, cartItem := range cart.Items {
		var product model.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, cartItem.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}

		if cartItem.Quantity > product.Quantity {
			tx.Rollback()
			logger.Warn("Order rejected: not enough stock", map[string]interface{}{
				"user_id":    userID,
				"product_id": product.ID,
				"requested":  cartItem.Quantity,
				"available":  product.Quantity,
			})
			return nil, &StockExceededError{ProductID: int(product.ID), Available: product.Quantity}
		}

		if err := tx.Model(&product).
			Update("quantity", gorm.Expr("quantity - ?", cartItem.Quantity)).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		// The line price was cached on the cart item at the last cart
		// write; the customer pays what the cart showed them.
		linePrice := util.Round2(cartItem.Price)
		subtotal += linePrice
		orderItems = append(orderItems, model.OrderItem{
			ProductID: product.ID,
			Quantity:  cartItem.Quantity,
			Price:     linePrice,
		})
	}

	subtotal = util.Round2(subtotal)
	total := util.Round2(subtotal + shipping.Cost - discount)
	if total < 0 {
		total = 0
	}

	status := model.OrderStatusPending
	paymentStatus := model.PaymentStatusWaitingForPayment
	if input.PaymentMethod == model.PaymentMethodCOD {
		status = model.OrderStatusWaitingForDelivery
		paymentStatus = model.PaymentStatusPending
	}

	order := &model.Order{
		UserID:               userID,
		ShippingMethodID:     shipping.ID,
		ShippingName:         shipping.Name,
		ShippingCost:         shipping.Cost,
		VoucherID:            voucherID,
		ShippingAddress:      input.ShippingAddress,
		Subtotal:             subtotal,
		TotalAmount:          total,
		PaymentMethod:        input.PaymentMethod,
		PaymentStatus:        paymentStatus,
		Status:               status,
		OrderDate:            now,
		ExpectedDeliveryDate: util.ExpectedDeliveryDate(now, s.orderCfg.ProcessingDays, s.orderCfg.ShippingDays),
		OrderItems:           orderItems,
	}
	if err := s.orderRepo.Create(tx, order); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Order placed", map[string]interface{}{
		"order_id":     order.ID,
		"user_id":      userID,
		"total_amount": order.TotalAmount,
		"status":       order.Status,
	})
	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetUserOrderByID(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	// Another user's order reads as absent, not forbidden.
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) GetOrderByID(orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetAllOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

// UpdateOrderStatus applies a manager-initiated status change, guarded by the
// transition table. Orders still waiting on an online payment cannot move.
func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	if !orderStatuses[status] {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}

	if order.PaymentStatus == model.PaymentStatusWaitingForPayment {
		return nil, ErrOrderUnpaid
	}

	switch ResolveTransition(order.Status, status) {
	case TransitionReject:
		logger.Warn("Rejected order status transition", map[string]interface{}{
			"order_id": orderID,
			"from":     order.Status,
			"to":       status,
		})
		return nil, ErrIllegalTransition
	case TransitionNoop:
		return order, nil
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"from":     order.Status,
		"to":       status,
	})
	order.Status = status
	return order, nil
}

// ConfirmDelivery moves an order from "Waiting for Delivery" to "Delivered".
// For cash on delivery this is also the moment the payment is collected.
func (s *orderService) ConfirmDelivery(orderID uint) (*model.Order, error) {
	order, err := s.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != model.OrderStatusWaitingForDelivery {
		return nil, ErrIllegalTransition
	}

	if err := s.orderRepo.UpdateStatus(orderID, model.OrderStatusDelivered); err != nil {
		return nil, err
	}
	order.Status = model.OrderStatusDelivered

	if order.PaymentMethod == model.PaymentMethodCOD && order.PaymentStatus != model.PaymentStatusPaid {
		if err := s.orderRepo.UpdatePaymentStatus(orderID, model.PaymentStatusPaid); err != nil {
			return nil, err
		}
		order.PaymentStatus = model.PaymentStatusPaid
	}

	logger.Info("Order delivered", map[string]interface{}{
		"order_id": orderID,
	})
	return order, nil
}
