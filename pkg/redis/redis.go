package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thanhngo/glowcare-backend/config"
	"github.com/thanhngo/glowcare-backend/pkg/logger"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// BlacklistToken adds a token to the blacklist
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	key := fmt.Sprintf("blacklist:%s", token)
	if err := client.Set(ctx, key, "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to blacklist token", err, nil)
		return err
	}
	return nil
}

// IsTokenBlacklisted checks if a token is in the blacklist
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", token)
	val, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token blacklist", err, nil)
		return false, err
	}
	return val == "revoked", nil
}

// AcquireCallbackLock takes a short-lived lock for one gateway transaction so
// concurrent duplicate IPN deliveries are serialized; the unique index on
// payments remains the durable idempotency guarantee. Returns false when
// another delivery already holds the lock. A nil client grants the lock.
func AcquireCallbackLock(ctx context.Context, provider, transactionNo string) (bool, error) {
	if client == nil {
		return true, nil
	}
	key := fmt.Sprintf("ipn:%s:%s", provider, transactionNo)
	return client.SetNX(ctx, key, "processing", 30*time.Second).Result()
}

// ReleaseCallbackLock drops the lock after reconciliation finishes.
func ReleaseCallbackLock(ctx context.Context, provider, transactionNo string) {
	if client == nil {
		return
	}
	key := fmt.Sprintf("ipn:%s:%s", provider, transactionNo)
	if err := client.Del(ctx, key).Err(); err != nil {
		logger.Warn("Failed to release callback lock", map[string]interface{}{
			"provider":       provider,
			"transaction_no": transactionNo,
			"error":          err.Error(),
		})
	}
}
