package cache

import (
	"context"
	"time"
)

// Cache is a small get/set contract used for memoizing external lookups
// (geocoding results, resolved distances). Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Noop satisfies Cache without storing anything. It is used when no Redis
// address is configured.
type Noop struct{}

func (Noop) Get(_ context.Context, _ string) (string, bool, error) {
	return "", false, nil
}

func (Noop) Set(_ context.Context, _ string, _ string, _ time.Duration) error {
	return nil
}
