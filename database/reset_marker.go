package database

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetMarker tracks the per-user password-reset state machine in redis:
// a key exists while a reset is pending and is deleted when the token is
// consumed or expires. One pending reset per user.
type ResetMarker struct {
	client *redis.Client
}

func NewResetMarker(client *redis.Client) *ResetMarker {
	return &ResetMarker{client: client}
}

func resetKey(email string) string {
	return "reset:" + email
}

func (r *ResetMarker) MarkRequested(ctx context.Context, email string, ttl time.Duration) error {
	return r.client.Set(ctx, resetKey(email), "1", ttl).Err()
}

// Consume deletes the marker and reports whether it was still present.
// A second reset attempt with the same token finds no marker and fails.
func (r *ResetMarker) Consume(ctx context.Context, email string) (bool, error) {
	deleted, err := r.client.Del(ctx, resetKey(email)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	return deleted > 0, nil
}
