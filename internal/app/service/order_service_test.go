package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhngo/glowcare-backend/config"
	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/internal/app/repository"
	"github.com/thanhngo/glowcare-backend/internal/db"
	"gorm.io/gorm"
)

type orderTestEnv struct {
	orderService OrderService
	cartService  CartService
	db           *gorm.DB
	user         *model.User
	product      *model.Product
	shipping     *model.ShippingMethod
}

func setupOrderServiceTest(t *testing.T) orderTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	shippingRepo := repository.NewShippingRepository(testDB)
	voucherService := NewVoucherService(repository.NewVoucherRepository(testDB))

	orderCfg := config.OrderConfig{ProcessingDays: 2, ShippingDays: 3}
	orderService := NewOrderService(orderRepo, cartRepo, shippingRepo, voucherService, orderCfg, testDB)
	cartService := NewCartService(cartRepo, productRepo)

	user := &model.User{
		Email:        "customer@example.com",
		PasswordHash: "hash",
		Name:         "Test Customer",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:            "Daily Sunscreen SPF50+",
		Category:        model.CategorySunscreen,
		Price:           280000,
		DiscountedPrice: 250000,
		Quantity:        10,
	}
	testDB.Create(product)

	shipping := &model.ShippingMethod{Name: "Standard", Cost: 20000, Method: "Giao hang tiet kiem"}
	testDB.Create(shipping)

	return orderTestEnv{
		orderService: orderService,
		cartService:  cartService,
		db:           testDB,
		user:         user,
		product:      product,
		shipping:     shipping,
	}
}

func TestOrderService_PlaceOrder_COD(t *testing.T) {
	env := setupOrderServiceTest(t)

	_, err := env.cartService.AddItem(env.user.ID, env.product.ID, 2)
	require.NoError(t, err)

	order, err := env.orderService.PlaceOrder(env.user.ID, PlaceOrderInput{
		ShippingMethodID: env.shipping.ID,
		ShippingAddress:  "12 Nguyen Hue, District 1, HCMC",
		PaymentMethod:    model.PaymentMethodCOD,
	})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, env.user.ID, order.UserID)

	// Snapshots: 2 x 250000 + 20000 shipping.
	assert.Equal(t, float64(500000), order.Subtotal)
	assert.Equal(t, float64(20000), order.ShippingCost)
	assert.Equal(t, "Standard", order.ShippingName)
	assert.Equal(t, float64(520000), order.TotalAmount)

	// COD skips the payment step.
	assert.Equal(t, model.OrderStatusWaitingForDelivery, order.Status)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, float64(500000), order.OrderItems[0].Price)

	// Stock decreased; the cart itself is untouched.
	var updated model.Product
	env.db.First(&updated, env.product.ID)
	assert.Equal(t, 8, updated.Quantity)

	cart, err := env.cartService.GetCart(env.user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestOrderService_PlaceOrder_OnlinePayment(t *testing.T) {
	env := setupOrderServiceTest(t)

	_, err := env.cartService.AddItem(env.user.ID, env.product.ID, 1)
	require.NoError(t, err)

	order, err := env.orderService.PlaceOrder(env.user.ID, PlaceOrderInput{
		ShippingMethodID: env.shipping.ID,
		ShippingAddress:  "12 Nguyen Hue, District 1, HCMC",
		PaymentMethod:    model.PaymentMethodVNPay,
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, model.PaymentStatusWaitingForPayment, order.PaymentStatus)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	env := setupOrderServiceTest(t)

	_, err := env.orderService.PlaceOrder(env.user.ID, PlaceOrderInput{
		ShippingMethodID: env.shipping.ID,
		ShippingAddress:  "12 Nguyen Hue",
		PaymentMethod:    model.PaymentMethodCOD,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_PlaceOrder_SameCartTwice(t *testing.T) {
	env := setupOrderServiceTest(t)

	_, err := env.cartService.AddItem(env.user.ID, env.product.ID, 1)
	require.NoError(t, err)

	input := PlaceOrderInput{
		ShippingMethodID: env.shipping.ID,
		ShippingAddress:  "12 Nguyen Hue",
		PaymentMethod:    model.PaymentMethodCOD,
	}
	first, err := env.orderService.PlaceOrder(env.user.ID, input)
	require.NoError(t, err)

	// The cart survives checkout, so placing again yields a second order.
	second, err := env.orderService.PlaceOrder(env.user.ID, input)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	var updated model.Product
	env.db.First(&updated, env.product.ID)
	assert.Equal(t, 8, updated.Quantity)
}

func TestOrderService_PlaceOrder_UsesCachedCartPrices(t *testing.T) {
	env := setupOrderServiceTest(t)

	_, err := env.cartService.AddItem(env.user.ID, env.product.ID, 2)
	require.NoError(t, err)

	// Price raised after the item went into the cart; the order keeps the
	// line price the cart showed.
	env.db.Model(env.product).Update("discounted_price", 300000)

	order, err := env.orderService.PlaceOrder(env.user.ID, PlaceOrderInput{
		ShippingMethodID: env.shipping.ID,
		ShippingAddress:  "12 Nguyen Hue",
		PaymentMethod:    model.PaymentMethodCOD,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(500000), order.Subtotal)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, float64(500000), order.OrderItems[0].Price)
	assert.Equal(t, float64(520000), order.TotalAmount)
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	env := setupOrderServiceTest(t)

	cart, err := env.cartService.AddItem(env.user.ID, env.product.ID, 5)
	require.NoError(t, err)

	// Stock dropped after the item went into the cart.
	env.db.Model(env.product).Update("quantity", 3)

	_, err = env.orderService.PlaceOrder(env.user.ID, PlaceOrderInput{
		ShippingMethodID: env.shipping.ID,
		ShippingAddress:  "12 Nguyen Hue",
		PaymentMethod:    model.PaymentMethodCOD,
	})
	assert.ErrorIs(t, err, ErrStockExceeded)

	// Nothing was consumed.
	var updated model.Product
	env.db.First(&updated, env.product.ID)
	assert.Equal(t, 3, updated.Quantity)

	reloaded, err := env.cartService.GetCart(env.user.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Items, len(cart.Items))
}

func TestOrderService_PlaceOrder_WithVoucher(t *testing.T) {
	env := setupOrderServiceTest(t)

	now := time.Now()
	voucher := &model.Voucher{
		Code:           "GLOW50",
		DiscountAmount: 50000,
		Status:         model.VoucherStatusActive,
		StartDate:      now.AddDate(0, 0, -1),
		ExpiryDate:     now.AddDate(0, 0, 7),
	}
	env.db.Create(voucher)

	_, err := env.cartService.AddItem(env.user.ID, env.product.ID, 2)
	require.NoError(t, err)

	order, err := env.orderService.PlaceOrder(env.user.ID, PlaceOrderInput{
		ShippingMethodID: env.shipping.ID,
		VoucherID:        &voucher.ID,
		ShippingAddress:  "12 Nguyen Hue",
		PaymentMethod:    model.PaymentMethodCOD,
	})
	require.NoError(t, err)
	require.NotNil(t, order.VoucherID)
	assert.Equal(t, voucher.ID, *order.VoucherID)
	assert.Equal(t, float64(470000), order.TotalAmount)
}

func TestOrderService_PlaceOrder_ExpiredVoucherIgnored(t *testing.T) {
	env := setupOrderServiceTest(t)

	now := time.Now()
	voucher := &model.Voucher{
		Code:           "OLD",
		DiscountAmount: 50000,
		Status:         model.VoucherStatusActive,
		StartDate:      now.AddDate(0, 0, -14),
		ExpiryDate:     now.AddDate(0, 0, -7),
	}
	env.db.Create(voucher)

	_, err := env.cartService.AddItem(env.user.ID, env.product.ID, 2)
	require.NoError(t, err)

	// The order still goes through, at full price with no voucher attached.
	order, err := env.orderService.PlaceOrder(env.user.ID, PlaceOrderInput{
		ShippingMethodID: env.shipping.ID,
		VoucherID:        &voucher.ID,
		ShippingAddress:  "12 Nguyen Hue",
		PaymentMethod:    model.PaymentMethodCOD,
	})
	require.NoError(t, err)
	assert.Nil(t, order.VoucherID)
	assert.Equal(t, float64(520000), order.TotalAmount)
}

func TestOrderService_PlaceOrder_ExpectedDeliveryDateSkipsWeekend(t *testing.T) {
	env := setupOrderServiceTest(t)

	_, err := env.cartService.AddItem(env.user.ID, env.product.ID, 1)
	require.NoError(t, err)

	order, err := env.orderService.PlaceOrder(env.user.ID, PlaceOrderInput{
		ShippingMethodID: env.shipping.ID,
		ShippingAddress:  "12 Nguyen Hue",
		PaymentMethod:    model.PaymentMethodCOD,
	})
	require.NoError(t, err)

	weekday := order.ExpectedDeliveryDate.Weekday()
	assert.NotEqual(t, time.Saturday, weekday)
	assert.NotEqual(t, time.Sunday, weekday)
	assert.True(t, order.ExpectedDeliveryDate.After(order.OrderDate))
}

func placeTestOrder(t *testing.T, env orderTestEnv, method model.PaymentMethod) *model.Order {
	t.Helper()
	_, err := env.cartService.AddItem(env.user.ID, env.product.ID, 1)
	require.NoError(t, err)

	order, err := env.orderService.PlaceOrder(env.user.ID, PlaceOrderInput{
		ShippingMethodID: env.shipping.ID,
		ShippingAddress:  "12 Nguyen Hue",
		PaymentMethod:    method,
	})
	require.NoError(t, err)
	return order
}

func TestOrderService_UpdateOrderStatus_UnpaidRejected(t *testing.T) {
	env := setupOrderServiceTest(t)
	order := placeTestOrder(t, env, model.PaymentMethodVNPay)

	_, err := env.orderService.UpdateOrderStatus(order.ID, model.OrderStatusWaitingForDelivery)
	assert.ErrorIs(t, err, ErrOrderUnpaid)
}

func TestOrderService_UpdateOrderStatus_UnpaidRejectedEvenToFailed(t *testing.T) {
	env := setupOrderServiceTest(t)
	order := placeTestOrder(t, env, model.PaymentMethodVNPay)

	_, err := env.orderService.UpdateOrderStatus(order.ID, model.OrderStatusFailed)
	assert.ErrorIs(t, err, ErrOrderUnpaid)
}

func TestOrderService_UpdateOrderStatus_CompletedIsTerminal(t *testing.T) {
	env := setupOrderServiceTest(t)
	order := placeTestOrder(t, env, model.PaymentMethodCOD)

	env.db.Model(&model.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":         model.OrderStatusCompleted,
			"payment_status": model.PaymentStatusPaid,
		})

	_, err := env.orderService.UpdateOrderStatus(order.ID, model.OrderStatusFailed)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestOrderService_UpdateOrderStatus_DeliveredToCompleted(t *testing.T) {
	env := setupOrderServiceTest(t)
	order := placeTestOrder(t, env, model.PaymentMethodCOD)

	env.db.Model(&model.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":         model.OrderStatusDelivered,
			"payment_status": model.PaymentStatusPaid,
		})

	updated, err := env.orderService.UpdateOrderStatus(order.ID, model.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, updated.Status)
}

func TestOrderService_UpdateOrderStatus_WaitingForDeliveryIsLocked(t *testing.T) {
	env := setupOrderServiceTest(t)
	order := placeTestOrder(t, env, model.PaymentMethodCOD)

	// Only the delivery confirmation flow moves an order out of
	// "Waiting for Delivery".
	_, err := env.orderService.UpdateOrderStatus(order.ID, model.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestOrderService_UpdateOrderStatus_UnlistedMoveIsNoOp(t *testing.T) {
	env := setupOrderServiceTest(t)
	order := placeTestOrder(t, env, model.PaymentMethodCOD)

	env.db.Model(&model.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":         model.OrderStatusPending,
			"payment_status": model.PaymentStatusPaid,
		})

	// The request succeeds but the order keeps its status.
	updated, err := env.orderService.UpdateOrderStatus(order.ID, model.OrderStatusFailed)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, updated.Status)
}

func TestOrderService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	env := setupOrderServiceTest(t)
	order := placeTestOrder(t, env, model.PaymentMethodCOD)

	_, err := env.orderService.UpdateOrderStatus(order.ID, model.OrderStatus("Shipped"))
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestOrderService_ConfirmDelivery_CODCollectsPayment(t *testing.T) {
	env := setupOrderServiceTest(t)
	order := placeTestOrder(t, env, model.PaymentMethodCOD)

	delivered, err := env.orderService.ConfirmDelivery(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, delivered.Status)
	assert.Equal(t, model.PaymentStatusPaid, delivered.PaymentStatus)
}

func TestOrderService_ConfirmDelivery_WrongState(t *testing.T) {
	env := setupOrderServiceTest(t)
	order := placeTestOrder(t, env, model.PaymentMethodVNPay)

	// Still Pending, not Waiting for Delivery.
	_, err := env.orderService.ConfirmDelivery(order.ID)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestOrderService_GetUserOrderByID_Ownership(t *testing.T) {
	env := setupOrderServiceTest(t)
	order := placeTestOrder(t, env, model.PaymentMethodCOD)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Name:         "Other",
		Role:         model.RoleUser,
	}
	env.db.Create(other)

	_, err := env.orderService.GetUserOrderByID(other.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	got, err := env.orderService.GetUserOrderByID(env.user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestResolveTransition(t *testing.T) {
	tests := []struct {
		name string
		from model.OrderStatus
		to   model.OrderStatus
		want TransitionOutcome
	}{
		{"delivered to completed", model.OrderStatusDelivered, model.OrderStatusCompleted, TransitionApply},
		{"completed is terminal", model.OrderStatusCompleted, model.OrderStatusFailed, TransitionReject},
		{"waiting for delivery is locked", model.OrderStatusWaitingForDelivery, model.OrderStatusDelivered, TransitionReject},
		{"waiting for delivery even same status", model.OrderStatusWaitingForDelivery, model.OrderStatusWaitingForDelivery, TransitionReject},
		{"pending to delivered is a no-op", model.OrderStatusPending, model.OrderStatusDelivered, TransitionNoop},
		{"pending to failed is a no-op", model.OrderStatusPending, model.OrderStatusFailed, TransitionNoop},
		{"failed to pending is a no-op", model.OrderStatusFailed, model.OrderStatusPending, TransitionNoop},
		{"delivered to failed is a no-op", model.OrderStatusDelivered, model.OrderStatusFailed, TransitionNoop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTransition(tt.from, tt.to))
		})
	}
}
