package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
	"pantrypal.app/pantry-api-gateway/config/environment_variables"
)

var (
	ErrCacheMiss       = errors.New("cache: key not found")
	ErrLockNotAcquired = errors.New("cache: lock held by another worker")
)

type RedisCacheService struct {
	client redis.UniversalClient
	rs     *redsync.Redsync
}

func NewRedisCacheService() *RedisCacheService {
	redisURL := environment_variables.EnvironmentVariables.REDIS_URL
	if redisURL == "" {
		panic("REDIS_URL environment variable must be set")
	}

	opts, err := buildUniversalOptions(redisURL)
	if err != nil {
		panic(fmt.Sprintf("failed to parse Redis URL: %v", err))
	}

	if pwd := environment_variables.EnvironmentVariables.REDIS_PASSWORD; pwd != "" {
		opts.Password = pwd
	}

	if dbVal := environment_variables.EnvironmentVariables.REDIS_DB; dbVal != 0 {
		opts.DB = dbVal
	}

	if len(opts.Addrs) > 1 && opts.DB != 0 {
		logger.GetLogger().Warn("Ignoring non-zero REDIS_DB when using Redis Cluster configuration")
		opts.DB = 0
	}

	client := redis.NewUniversalClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		panic(fmt.Sprintf("failed to connect to Redis: %v", err))
	}

	logger.GetLogger().Info("Successfully connected to Redis")

	return NewRedisCacheServiceWithClient(client)
}

func NewRedisCacheServiceWithClient(client redis.UniversalClient) *RedisCacheService {
	return &RedisCacheService{
		client: client,
		rs:     redsync.New(goredis.NewPool(client)),
	}
}

// buildUniversalOptions accepts a comma separated list of redis:// URLs or
// bare host:port pairs. More than one address selects cluster mode.
func buildUniversalOptions(raw string) (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.Contains(part, "://") {
			opts.Addrs = append(opts.Addrs, part)
			continue
		}

		parsed, err := redis.ParseURL(part)
		if err != nil {
			return nil, err
		}
		opts.Addrs = append(opts.Addrs, parsed.Addr)
		if opts.Username == "" {
			opts.Username = parsed.Username
		}
		if opts.Password == "" {
			opts.Password = parsed.Password
		}
		if opts.DB == 0 {
			opts.DB = parsed.DB
		}
		if opts.TLSConfig == nil {
			opts.TLSConfig = parsed.TLSConfig
		}
		if opts.DialTimeout == 0 {
			opts.DialTimeout = parsed.DialTimeout
		}
		if opts.PoolSize == 0 {
			opts.PoolSize = parsed.PoolSize
		}
	}

	if len(opts.Addrs) == 0 {
		return nil, fmt.Errorf("no Redis addresses provided")
	}

	return opts, nil
}

func (r *RedisCacheService) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Get returns ErrCacheMiss when the key is absent. Any other error means the
// store itself could not be read.
func (r *RedisCacheService) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get value: %w", err)
	}

	return val, nil
}

func (r *RedisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisCacheService) Close() error {
	return r.client.Close()
}

func (r *RedisCacheService) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Allow records one hit for key in a sliding window and reports whether the
// window still holds at most limit hits.
func (r *RedisCacheService) Allow(ctx context.Context, key string, limit int, per time.Duration) (bool, int, error) {
	key = fmt.Sprintf(RateLimitKey, key)
	now := time.Now().UnixNano()

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-per.Nanoseconds()))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: uuid.NewString()})
	card := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	remaining := int64(limit) - card.Val()
	if remaining < 0 {
		remaining = 0
	}
	return card.Val() <= int64(limit), int(remaining), nil
}

// WithLock runs fn while holding a distributed mutex. It does not wait: when
// another worker holds the lock ErrLockNotAcquired is returned.
func (r *RedisCacheService) WithLock(ctx context.Context, lockName string, ttl time.Duration, fn func(ctx context.Context) error) error {
	mutex := r.rs.NewMutex(lockName, redsync.WithExpiry(ttl), redsync.WithTries(1))

	if err := mutex.LockContext(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s: %v", ErrLockNotAcquired, lockName, err)
	}

	defer func() {
		if _, err := mutex.UnlockContext(context.WithoutCancel(ctx)); err != nil {
			logger.GetLogger().Warnf("failed to release lock %s: %v", lockName, err)
		}
	}()

	return fn(ctx)
}
