package cache

import (
	"context"
	"time"
)

// Cache is the response-cache port shared by both backends. Get reports
// (found, error); a miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
