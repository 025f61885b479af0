package common

import (
	"context"
	"time"
)

// Locker serializes scheduled jobs across replicas.
type Locker interface {
	WithLock(ctx context.Context, name string, ttl time.Duration, fn func(ctx context.Context) error) error
}
