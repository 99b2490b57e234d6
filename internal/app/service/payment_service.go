package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/thanhngo/glowcare-backend/config"
	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/internal/app/repository"
	"github.com/thanhngo/glowcare-backend/pkg/logger"
	"github.com/thanhngo/glowcare-backend/pkg/payment/momo"
	"github.com/thanhngo/glowcare-backend/pkg/payment/payos"
	"github.com/thanhngo/glowcare-backend/pkg/payment/vnpay"
	"github.com/thanhngo/glowcare-backend/pkg/redis"
	"github.com/thanhngo/glowcare-backend/pkg/util"
	"gorm.io/gorm"
)

// VNPay rejects payment requests outside this VND range.
const (
	vnpayMinAmount = 10000
	vnpayMaxAmount = 50000000
)

var (
	ErrPaymentNotRequired = errors.New("order does not require an online payment")
	ErrAmountOutOfRange   = errors.New("order total is outside the gateway's accepted range")
	ErrAmountMismatch     = errors.New("callback amount does not match the order total")
	ErrInvalidSignature   = errors.New("callback signature verification failed")
	ErrOrderAlreadyPaid   = errors.New("order is already paid")
)

// CallbackResult is the outcome of one gateway callback. Duplicate reports
// that the transaction had already been recorded and nothing changed.
type CallbackResult struct {
	Order     *model.Order
	Payment   *model.Payment
	Succeeded bool
	Duplicate bool
}

type PaymentService interface {
	CreateVNPayPayment(userID, orderID uint, clientIP string) (string, error)
	HandleVNPayReturn(ctx context.Context, query url.Values) (*CallbackResult, error)
	CreateMoMoPayment(ctx context.Context, userID, orderID uint) (string, error)
	HandleMoMoIPN(ctx context.Context, ipn momo.IPNRequest) (*CallbackResult, error)
	CreatePayOSPayment(ctx context.Context, userID, orderID uint) (string, error)
	HandlePayOSNotify(ctx context.Context, notification payos.Notification) (*CallbackResult, error)
	GetOrderPayments(userID, orderID uint) ([]model.Payment, error)
}

type paymentService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	vnpayClient *vnpay.Client
	momoClient  *momo.Client
	payosClient *payos.Client
	db          *gorm.DB
}

// NewPaymentService builds the three gateway clients from configuration.
func NewPaymentService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	cfg *config.Config,
	db *gorm.DB,
) (PaymentService, error) {
	vnpayClient, err := vnpay.NewClient(vnpay.Config{
		TmnCode:    cfg.Payment.VNPay.TmnCode,
		HashSecret: cfg.Payment.VNPay.HashSecret,
		PaymentURL: cfg.Payment.VNPay.BaseURL,
		ReturnURL:  cfg.Payment.VNPay.ReturnURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vnpay client: %w", err)
	}

	momoClient, err := momo.NewClient(momo.Config{
		Endpoint:    cfg.Payment.MoMo.Endpoint,
		PartnerCode: cfg.Payment.MoMo.PartnerCode,
		AccessKey:   cfg.Payment.MoMo.AccessKey,
		SecretKey:   cfg.Payment.MoMo.SecretKey,
		RedirectURL: cfg.Payment.MoMo.RedirectURL,
		IPNURL:      cfg.Payment.MoMo.IPNURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create momo client: %w", err)
	}

	payosClient, err := payos.NewClient(payos.Config{
		ClientID:  cfg.Payment.PayOS.ClientID,
		APIKey:    cfg.Payment.PayOS.APIKey,
		BaseURL:   cfg.Payment.PayOS.BaseURL,
		ReturnURL: cfg.Payment.PayOS.ReturnURL,
		CancelURL: cfg.Payment.PayOS.CancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payos client: %w", err)
	}

	return &paymentService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		vnpayClient: vnpayClient,
		momoClient:  momoClient,
		payosClient: payosClient,
		db:          db,
	}, nil
}

// payableOrder loads the order and checks that the user owns it and that it
// is still waiting for an online payment.
func (s *paymentService) payableOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	if order.PaymentStatus == model.PaymentStatusPaid {
		return nil, ErrOrderAlreadyPaid
	}
	if order.PaymentMethod == model.PaymentMethodCOD {
		return nil, ErrPaymentNotRequired
	}
	return order, nil
}

// CreateVNPayPayment returns the hosted payment URL for the order. A cash on
// delivery order is switched to online payment instead: it moves back to
// Pending and the empty URL tells the caller no redirect is needed yet.
func (s *paymentService) CreateVNPayPayment(userID, orderID uint, clientIP string) (string, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrOrderNotFound
		}
		return "", err
	}
	if order.UserID != userID {
		return "", ErrOrderNotFound
	}
	if order.PaymentStatus == model.PaymentStatusPaid {
		return "", ErrOrderAlreadyPaid
	}

	if order.PaymentMethod == model.PaymentMethodCOD {
		order.PaymentMethod = model.PaymentMethodVNPay
		order.Status = model.OrderStatusPending
		order.PaymentStatus = model.PaymentStatusWaitingForPayment
		if err := s.orderRepo.Update(order); err != nil {
			return "", err
		}
		logger.Info("COD order switched to online payment", map[string]interface{}{
			"order_id": orderID,
			"user_id":  userID,
		})
		return "", nil
	}

	amount := util.WholeVND(order.TotalAmount)
	if amount < vnpayMinAmount || amount > vnpayMaxAmount {
		logger.Warn("VNPay payment rejected: amount out of range", map[string]interface{}{
			"order_id": orderID,
			"amount":   amount,
		})
		return "", ErrAmountOutOfRange
	}

	paymentURL, err := s.vnpayClient.BuildPaymentURL(vnpay.PaymentRequest{
		TxnRef:    strconv.FormatUint(uint64(orderID), 10),
		Amount:    amount,
		OrderInfo: fmt.Sprintf("Thanh toan don hang %d", orderID),
		IPAddr:    clientIP,
	})
	if err != nil {
		logger.Error("Failed to build VNPay payment URL", err, map[string]interface{}{
			"order_id": orderID,
		})
		return "", err
	}

	logger.Info("VNPay payment URL issued", map[string]interface{}{
		"order_id": orderID,
		"user_id":  userID,
	})
	return paymentURL, nil
}

func (s *paymentService) HandleVNPayReturn(ctx context.Context, query url.Values) (*CallbackResult, error) {
	data, err := s.vnpayClient.VerifyReturn(query)
	if err != nil {
		logger.Warn("VNPay callback rejected: bad signature", map[string]interface{}{
			"txn_ref": query.Get("vnp_TxnRef"),
		})
		return nil, ErrInvalidSignature
	}

	orderID, err := strconv.ParseUint(data.TxnRef, 10, 64)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	return s.reconcile(ctx, reconcileInput{
		orderID:       uint(orderID),
		provider:      model.ProviderVNPay,
		transactionNo: data.TransactionNo,
		amount:        float64(data.Amount),
		succeeded:     data.Success(),
		bankCode:      data.BankCode,
		cardType:      data.CardType,
	})
}

func (s *paymentService) CreateMoMoPayment(ctx context.Context, userID, orderID uint) (string, error) {
	order, err := s.payableOrder(userID, orderID)
	if err != nil {
		return "", err
	}

	resp, err := s.momoClient.CreatePayment(ctx, momo.CreateRequest{
		OrderID:   util.PaymentReference(orderID),
		RequestID: util.RequestID(),
		Amount:    util.WholeVND(order.TotalAmount),
		OrderInfo: fmt.Sprintf("GlowCare order #%d", orderID),
	})
	if err != nil {
		logger.Error("Failed to create MoMo payment", err, map[string]interface{}{
			"order_id": orderID,
		})
		return "", err
	}

	logger.Info("MoMo payment created", map[string]interface{}{
		"order_id": orderID,
		"user_id":  userID,
	})
	return resp.PayURL, nil
}

func (s *paymentService) HandleMoMoIPN(ctx context.Context, ipn momo.IPNRequest) (*CallbackResult, error) {
	if err := s.momoClient.VerifyIPN(ipn); err != nil {
		logger.Warn("MoMo IPN rejected: bad signature", map[string]interface{}{
			"momo_order_id": ipn.OrderID,
		})
		return nil, ErrInvalidSignature
	}

	orderID, err := util.ParsePaymentReference(ipn.OrderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	return s.reconcile(ctx, reconcileInput{
		orderID:       orderID,
		provider:      model.ProviderMoMo,
		transactionNo: strconv.FormatInt(ipn.TransID, 10),
		amount:        float64(ipn.Amount),
		succeeded:     ipn.Success(),
	})
}

func (s *paymentService) CreatePayOSPayment(ctx context.Context, userID, orderID uint) (string, error) {
	order, err := s.payableOrder(userID, orderID)
	if err != nil {
		return "", err
	}

	resp, err := s.payosClient.CreatePaymentLink(ctx, payos.CreateRequest{
		OrderCode:   int64(orderID),
		Amount:      util.WholeVND(order.TotalAmount),
		Description: fmt.Sprintf("GlowCare order #%d", orderID),
	})
	if err != nil {
		logger.Error("Failed to create PayOS payment link", err, map[string]interface{}{
			"order_id": orderID,
		})
		return "", err
	}

	logger.Info("PayOS payment link created", map[string]interface{}{
		"order_id": orderID,
		"user_id":  userID,
	})
	return resp.Data.CheckoutURL, nil
}

func (s *paymentService) HandlePayOSNotify(ctx context.Context, notification payos.Notification) (*CallbackResult, error) {
	if err := s.payosClient.VerifyNotification(notification); err != nil {
		logger.Warn("PayOS notification rejected: bad checksum", map[string]interface{}{
			"order_code": notification.OrderCode,
		})
		return nil, ErrInvalidSignature
	}

	transactionNo := notification.Reference
	if transactionNo == "" {
		transactionNo = strconv.FormatInt(notification.OrderCode, 10)
	}

	return s.reconcile(ctx, reconcileInput{
		orderID:       uint(notification.OrderCode),
		provider:      model.ProviderPayOS,
		transactionNo: transactionNo,
		amount:        float64(notification.Amount),
		succeeded:     notification.Success(),
	})
}

func (s *paymentService) GetOrderPayments(userID, orderID uint) ([]model.Payment, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return s.paymentRepo.FindByOrderID(orderID)
}

type reconcileInput struct {
	orderID       uint
	provider      model.PaymentProvider
	transactionNo string
	amount        float64
	succeeded     bool
	bankCode      string
	cardType      string
}

// reconcile records one verified gateway callback exactly once. The unique
// (provider, transaction_no) index is the source of truth: a replayed
// callback inserts nothing and must not touch the order again. The redis
// lock only narrows the window in which two replicas process the same
// callback concurrently.
func (s *paymentService) reconcile(ctx context.Context, in reconcileInput) (*CallbackResult, error) {
	order, err := s.orderRepo.FindByID(in.orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	// Gateways transact in whole đồng.
	if util.WholeVND(in.amount) != util.WholeVND(order.TotalAmount) {
		logger.Warn("Gateway callback rejected: amount mismatch", map[string]interface{}{
			"order_id":        in.orderID,
			"provider":        in.provider,
			"callback_amount": in.amount,
			"order_amount":    order.TotalAmount,
		})
		return nil, ErrAmountMismatch
	}

	locked, err := redis.AcquireCallbackLock(ctx, string(in.provider), in.transactionNo)
	if err != nil {
		logger.Warn("Callback lock unavailable, relying on unique index", map[string]interface{}{
			"provider":       in.provider,
			"transaction_no": in.transactionNo,
		})
	} else if locked {
		defer redis.ReleaseCallbackLock(ctx, string(in.provider), in.transactionNo)
	}

	state := model.PaymentStateFailed
	var paidAt *time.Time
	if in.succeeded {
		state = model.PaymentStateSuccess
		now := time.Now()
		paidAt = &now
	}

	payment := &model.Payment{
		OrderID:       order.ID,
		UserID:        order.UserID,
		Provider:      in.provider,
		TransactionNo: in.transactionNo,
		Amount:        in.amount,
		Status:        state,
		BankCode:      in.bankCode,
		CardType:      in.cardType,
		PaidAt:        paidAt,
	}

	tx := s.db.Begin()

	// An order may accumulate failed attempts, but never a second
	// successful one under a different transaction number.
	if in.succeeded {
		paidAlready, err := s.paymentRepo.HasSuccessfulForOrder(tx, order.ID, in.transactionNo)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if paidAlready {
			tx.Rollback()
			logger.Warn("Gateway callback rejected: order already paid by another transaction", map[string]interface{}{
				"order_id":       order.ID,
				"provider":       in.provider,
				"transaction_no": in.transactionNo,
			})
			return nil, ErrOrderAlreadyPaid
		}
	}

	inserted, err := s.paymentRepo.CreateIfAbsent(tx, payment)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if !inserted {
		tx.Rollback()
		logger.Info("Duplicate gateway callback ignored", map[string]interface{}{
			"order_id":       order.ID,
			"provider":       in.provider,
			"transaction_no": in.transactionNo,
		})
		existing, err := s.paymentRepo.FindByProviderAndTxn(in.provider, in.transactionNo)
		if err != nil {
			return nil, err
		}
		return &CallbackResult{Order: order, Payment: existing, Succeeded: in.succeeded, Duplicate: true}, nil
	}

	if in.succeeded {
		if err := tx.Model(&model.Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"payment_status": model.PaymentStatusPaid,
				"status":         model.OrderStatusCompleted,
			}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		order.PaymentStatus = model.PaymentStatusPaid
		order.Status = model.OrderStatusCompleted
	} else if order.PaymentStatus != model.PaymentStatusPaid {
		// A failed attempt must not downgrade an order another attempt
		// already paid for.
		if err := tx.Model(&model.Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"payment_status": model.PaymentStatusFailed,
				"status":         model.OrderStatusFailed,
			}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		order.PaymentStatus = model.PaymentStatusFailed
		order.Status = model.OrderStatusFailed
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit payment reconciliation", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return nil, err
	}

	logger.Info("Gateway callback reconciled", map[string]interface{}{
		"order_id":       order.ID,
		"provider":       in.provider,
		"transaction_no": in.transactionNo,
		"succeeded":      in.succeeded,
	})
	return &CallbackResult{Order: order, Payment: payment, Succeeded: in.succeeded}, nil
}
