package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thanhngo/glowcare-backend/config"
	"github.com/thanhngo/glowcare-backend/internal/app/controller"
	"github.com/thanhngo/glowcare-backend/internal/app/repository"
	"github.com/thanhngo/glowcare-backend/internal/app/service"
	"github.com/thanhngo/glowcare-backend/internal/db"
	"github.com/thanhngo/glowcare-backend/internal/middleware"
	"github.com/thanhngo/glowcare-backend/internal/router"
	"github.com/thanhngo/glowcare-backend/internal/scheduler"
	"github.com/thanhngo/glowcare-backend/pkg/logger"
	"github.com/thanhngo/glowcare-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting GlowCare Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs the token blacklist and gateway callback locks. The
	// server still runs without it, with those guards degraded.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation and callback locks disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	voucherRepo := repository.NewVoucherRepository(db.GetDB())
	shippingRepo := repository.NewShippingRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	paymentRepo := repository.NewPaymentRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	voucherService := service.NewVoucherService(voucherRepo)
	shippingService := service.NewShippingService(shippingRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, shippingRepo, voucherService, cfg.Order, db.GetDB())
	reportService := service.NewReportService(orderRepo)
	paymentService, err := service.NewPaymentService(orderRepo, paymentRepo, cfg, db.GetDB())
	if err != nil {
		logger.Fatal("Failed to initialize payment service", err)
	}

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.AccessTokenExpiry)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	voucherController := controller.NewVoucherController(voucherService)
	shippingController := controller.NewShippingController(shippingService)
	orderController := controller.NewOrderController(orderService, reportService)
	paymentController := controller.NewPaymentController(paymentService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the voucher refresh scheduler
	voucherScheduler := scheduler.NewVoucherScheduler(voucherService)
	if err := voucherScheduler.Start(); err != nil {
		logger.Fatal("Failed to start voucher scheduler", err)
	}
	defer voucherScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		cartController,
		voucherController,
		shippingController,
		orderController,
		paymentController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
