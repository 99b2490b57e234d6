package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Payment  PaymentConfig
	Order    OrderConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// PaymentConfig groups the three gateway configurations. The structs are
// injected into the gateway client constructors; nothing reads the process
// environment after Load returns.
type PaymentConfig struct {
	MoMo  MoMoConfig
	VNPay VNPayConfig
	PayOS PayOSConfig
}

type MoMoConfig struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	PartnerCode string
	RedirectURL string
	IPNURL      string
}

type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
}

type PayOSConfig struct {
	ClientID  string
	APIKey    string
	BaseURL   string
	ReturnURL string
	CancelURL string
}

// OrderConfig carries the delivery estimate parameters used when placing orders.
type OrderConfig struct {
	ProcessingDays int
	ShippingDays   int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "glowcare"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key"),
			AccessTokenExpiry:  parseDuration(getEnv("JWT_ACCESS_TOKEN_EXPIRY", "15m")),
			RefreshTokenExpiry: parseDuration(getEnv("JWT_REFRESH_TOKEN_EXPIRY", "168h")),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Payment: PaymentConfig{
			MoMo: MoMoConfig{
				Endpoint:    getEnv("MOMO_ENDPOINT", "https://test-payment.momo.vn/v2/gateway/api/create"),
				AccessKey:   getEnv("MOMO_ACCESS_KEY", ""),
				SecretKey:   getEnv("MOMO_SECRET_KEY", ""),
				PartnerCode: getEnv("MOMO_PARTNER_CODE", ""),
				RedirectURL: getEnv("MOMO_REDIRECT_URL", "http://localhost:8080/api/v1/payments/momo/redirect"),
				IPNURL:      getEnv("MOMO_IPN_URL", "http://localhost:8080/api/v1/payments/momo/ipn"),
			},
			VNPay: VNPayConfig{
				TmnCode:    getEnv("VNPAY_TMNCODE", ""),
				HashSecret: getEnv("VNPAY_HASH_SECRET", ""),
				BaseURL:    getEnv("VNPAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
				ReturnURL:  getEnv("VNPAY_RETURN_URL", "http://localhost:8080/api/v1/payments/vnpay/return"),
			},
			PayOS: PayOSConfig{
				ClientID:  getEnv("PAYOS_CLIENT_ID", ""),
				APIKey:    getEnv("PAYOS_API_KEY", ""),
				BaseURL:   getEnv("PAYOS_BASE_URL", "https://api-merchant.payos.vn"),
				ReturnURL: getEnv("PAYOS_RETURN_URL", "http://localhost:8080/api/v1/payments/payos/return"),
				CancelURL: getEnv("PAYOS_CANCEL_URL", "http://localhost:8080/api/v1/payments/payos/cancel"),
			},
		},
		Order: OrderConfig{
			ProcessingDays: parseInt(getEnv("ORDER_PROCESSING_DAYS", "2"), 2),
			ShippingDays:   parseInt(getEnv("ORDER_SHIPPING_DAYS", "3"), 3),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 15m", s)
		return 15 * time.Minute
	}
	return duration
}

func parseInt(s string, defaultValue int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using %d", s, defaultValue)
		return defaultValue
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for i := 0; i < len(s); {
		end := i
		for end < len(s) && s[end] != ',' {
			end++
		}
		result = append(result, s[i:end])
		i = end + 1
	}
	return result
}
