package router

import (
	"github.com/gin-gonic/gin"
	"github.com/thanhngo/glowcare-backend/config"
	"github.com/thanhngo/glowcare-backend/internal/app/controller"
	"github.com/thanhngo/glowcare-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	productController  *controller.ProductController
	cartController     *controller.CartController
	voucherController  *controller.VoucherController
	shippingController *controller.ShippingController
	orderController    *controller.OrderController
	paymentController  *controller.PaymentController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	voucherController *controller.VoucherController,
	shippingController *controller.ShippingController,
	orderController *controller.OrderController,
	paymentController *controller.PaymentController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		productController:  productController,
		cartController:     cartController,
		voucherController:  voucherController,
		shippingController: shippingController,
		orderController:    orderController,
		paymentController:  paymentController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "GlowCare API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetProfile)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)
		}

		vouchers := v1.Group("/vouchers")
		{
			vouchers.GET("", r.voucherController.ListVouchers)
			vouchers.GET("/:id", r.voucherController.GetVoucher)
		}

		v1.GET("/shipping-methods", r.shippingController.ListMethods)

		cart := v1.Group("/cart", r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.DELETE("", r.cartController.ClearCart)
			cart.POST("/items", r.cartController.AddToCart)
			cart.PUT("/items/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/items/:id", r.cartController.RemoveCartItem)
		}

		orders := v1.Group("/orders", r.authMiddleware.Authenticate())
		{
			orders.POST("", r.orderController.PlaceOrder)
			orders.GET("", r.orderController.ListOrders)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.GET("/:id/payments", r.paymentController.ListOrderPayments)
		}

		payments := v1.Group("/payments")
		{
			payments.POST("/vnpay/create/:orderID", r.authMiddleware.Authenticate(), r.paymentController.CreateVNPayPayment)
			payments.POST("/momo/create/:orderID", r.authMiddleware.Authenticate(), r.paymentController.CreateMoMoPayment)
			payments.POST("/payos/create/:orderID", r.authMiddleware.Authenticate(), r.paymentController.CreatePayOSPayment)

			// Gateway callbacks authenticate by signature, not by JWT.
			payments.GET("/vnpay/return", r.paymentController.VNPayReturn)
			payments.POST("/momo/ipn", r.paymentController.MoMoIPN)
			payments.POST("/payos/notify", r.paymentController.PayOSNotify)
		}

		manager := v1.Group("/manager",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole("admin"),
		)
		{
			manager.POST("/products", r.productController.CreateProduct)
			manager.PUT("/products/:id", r.productController.UpdateProduct)
			manager.DELETE("/products/:id", r.productController.DeleteProduct)

			manager.POST("/vouchers", r.voucherController.CreateVoucher)
			manager.PUT("/vouchers/:id", r.voucherController.UpdateVoucher)
			manager.DELETE("/vouchers/:id", r.voucherController.DeleteVoucher)

			manager.POST("/shipping-methods", r.shippingController.CreateMethod)
			manager.PUT("/shipping-methods/:id", r.shippingController.UpdateMethod)
			manager.DELETE("/shipping-methods/:id", r.shippingController.DeleteMethod)

			manager.GET("/orders", r.orderController.ListAllOrders)
			manager.GET("/orders/export", r.orderController.ExportOrders)
			manager.PUT("/orders/:id/status", r.orderController.UpdateOrderStatus)
			manager.PUT("/orders/:id/deliver", r.orderController.ConfirmDelivery)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
