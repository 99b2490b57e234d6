package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhngo/glowcare-backend/config"
	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/internal/app/repository"
	"github.com/thanhngo/glowcare-backend/internal/app/service"
	"github.com/thanhngo/glowcare-backend/internal/db"
	"github.com/thanhngo/glowcare-backend/internal/middleware"
	"gorm.io/gorm"
)

func setupOrderControllerTest(t *testing.T) (*OrderController, *gin.Engine, *gorm.DB, *model.User, *model.Product, *model.ShippingMethod) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	shippingRepo := repository.NewShippingRepository(testDB)
	voucherService := service.NewVoucherService(repository.NewVoucherRepository(testDB))

	orderCfg := config.OrderConfig{ProcessingDays: 2, ShippingDays: 3}
	orderService := service.NewOrderService(orderRepo, cartRepo, shippingRepo, voucherService, orderCfg, testDB)
	reportService := service.NewReportService(orderRepo)
	orderController := NewOrderController(orderService, reportService)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:            "Hydrating Toner",
		Category:        model.CategoryToner,
		Price:           320000,
		DiscountedPrice: 300000,
		Quantity:        10,
	}
	testDB.Create(product)

	shipping := &model.ShippingMethod{Name: "Standard", Cost: 20000}
	testDB.Create(shipping)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return orderController, router, testDB, user, product, shipping
}

func setUserIDInContext(c *gin.Context, userID uint) {
	c.Set(middleware.UserIDKey, userID)
}

func addCartItem(t *testing.T, testDB *gorm.DB, userID, productID uint, quantity int, price float64) {
	t.Helper()
	cartRepo := repository.NewCartRepository(testDB)
	cart, err := cartRepo.FindOrCreateByUserID(userID)
	require.NoError(t, err)
	require.NoError(t, cartRepo.CreateItem(&model.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
	}))
}

func TestOrderController_PlaceOrder_Success(t *testing.T) {
	controller, router, testDB, user, product, shipping := setupOrderControllerTest(t)

	addCartItem(t, testDB, user.ID, product.ID, 2, 600000)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.PlaceOrder(c)
	})

	body, _ := json.Marshal(PlaceOrderRequest{
		ShippingMethodID: shipping.ID,
		ShippingAddress:  "12 Nguyen Hue, District 1, HCMC",
		PaymentMethod:    string(model.PaymentMethodCOD),
	})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	order := response["order"].(map[string]interface{})
	assert.Equal(t, float64(620000), order["total_amount"]) // 2 x 300000 + 20000
	assert.Equal(t, string(model.OrderStatusWaitingForDelivery), order["status"])
}

func TestOrderController_PlaceOrder_EmptyCart(t *testing.T) {
	controller, router, _, user, _, shipping := setupOrderControllerTest(t)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.PlaceOrder(c)
	})

	body, _ := json.Marshal(PlaceOrderRequest{
		ShippingMethodID: shipping.ID,
		ShippingAddress:  "12 Nguyen Hue",
		PaymentMethod:    string(model.PaymentMethodCOD),
	})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_PlaceOrder_UnsupportedPaymentMethod(t *testing.T) {
	controller, router, testDB, user, product, shipping := setupOrderControllerTest(t)

	addCartItem(t, testDB, user.ID, product.ID, 1, 300000)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.PlaceOrder(c)
	})

	body, _ := json.Marshal(PlaceOrderRequest{
		ShippingMethodID: shipping.ID,
		ShippingAddress:  "12 Nguyen Hue",
		PaymentMethod:    "Bank Transfer",
	})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_PlaceOrder_StockExceeded(t *testing.T) {
	controller, router, testDB, user, product, shipping := setupOrderControllerTest(t)

	addCartItem(t, testDB, user.ID, product.ID, 20, 6000000)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.PlaceOrder(c)
	})

	body, _ := json.Marshal(PlaceOrderRequest{
		ShippingMethodID: shipping.ID,
		ShippingAddress:  "12 Nguyen Hue",
		PaymentMethod:    string(model.PaymentMethodCOD),
	})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(10), response["available_stock"])
}

func TestOrderController_GetOrder_NotFound(t *testing.T) {
	controller, router, _, user, _, _ := setupOrderControllerTest(t)

	router.GET("/orders/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetOrder(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderController_UpdateOrderStatus_Conflict(t *testing.T) {
	controller, router, testDB, user, product, shipping := setupOrderControllerTest(t)

	addCartItem(t, testDB, user.ID, product.ID, 1, 300000)

	placeRouter := gin.New()
	placeRouter.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.PlaceOrder(c)
	})
	body, _ := json.Marshal(PlaceOrderRequest{
		ShippingMethodID: shipping.ID,
		ShippingAddress:  "12 Nguyen Hue",
		PaymentMethod:    string(model.PaymentMethodVNPay),
	})
	placeReq := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	placeReq.Header.Set("Content-Type", "application/json")
	placeW := httptest.NewRecorder()
	placeRouter.ServeHTTP(placeW, placeReq)
	require.Equal(t, http.StatusCreated, placeW.Code)

	var placed map[string]interface{}
	require.NoError(t, json.Unmarshal(placeW.Body.Bytes(), &placed))
	orderID := placed["order"].(map[string]interface{})["id"].(float64)

	// Advancing an unpaid online order is rejected.
	router.PUT("/manager/orders/:id/status", controller.UpdateOrderStatus)
	body, _ = json.Marshal(UpdateOrderStatusRequest{Status: string(model.OrderStatusWaitingForDelivery)})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/manager/orders/%.0f/status", orderID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderController_ExportOrders_BadRange(t *testing.T) {
	controller, router, _, _, _, _ := setupOrderControllerTest(t)

	router.GET("/manager/orders/export", controller.ExportOrders)

	req := httptest.NewRequest(http.MethodGet, "/manager/orders/export?from=2026-02-01&to=2026-01-01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_ExportOrders_Success(t *testing.T) {
	controller, router, _, _, _, _ := setupOrderControllerTest(t)

	router.GET("/manager/orders/export", controller.ExportOrders)

	req := httptest.NewRequest(http.MethodGet, "/manager/orders/export?from=2026-01-01&to=2026-02-01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders_20260101_20260201.xlsx")
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
}
