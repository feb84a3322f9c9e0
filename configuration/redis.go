package configuration

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to redis with a few retries and returns the client to
// the caller. Redis holds only short-lived password-reset markers, so a slow
// start is tolerable but a dead redis is not.
func InitRedis(cfg *Config) (*redis.Client, error) {
	const maxRetries = 5
	const retryDelay = 5 * time.Second

	var client *redis.Client
	var err error
	for i := 0; i < maxRetries; i++ {
		client = redis.NewClient(&redis.Options{
			Network:  "tcp",
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		_, err = client.Ping(ctx).Result()
		cancel()
		if err == nil {
			return client, nil
		}

		fmt.Printf("Failed to connect to Redis (Attempt %d/%d): %s\n", i+1, maxRetries, err.Error())
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", maxRetries, err)
}
