// Package cache provides Redis and in-memory implementations of the
// short-lived coordination primitives used by the application layer.
package cache

import (
	"context"
	"fmt"
	"time"

	attendanceapp "github.com/holycity/portal/internal/application/attendance"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultSubmitLockTTL bounds how long a crashed submission can keep its
// lock. It only needs to outlive the submit timeout.
const DefaultSubmitLockTTL = 30 * time.Second

var _ attendanceapp.SubmitLocker = (*RedisSubmitLocker)(nil)

// RedisSubmitLocker serializes attendance submissions across instances
// using SETNX with a TTL. This is the lock for distributed deployments
// where several portal instances share one database.
type RedisSubmitLocker struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewRedisSubmitLocker creates a locker backed by an existing Redis client.
func NewRedisSubmitLocker(client *redis.Client, logger *zap.Logger) *RedisSubmitLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSubmitLocker{
		client:    client,
		keyPrefix: "attendance:lock:",
		ttl:       DefaultSubmitLockTTL,
		logger:    logger,
	}
}

// Acquire takes the lock with SETNX. Returns false when another submission
// for the same key is already in flight.
func (l *RedisSubmitLocker) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.keyPrefix+key, "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	return ok, nil
}

// Release drops the lock. Failures are logged, not returned: the TTL will
// reclaim the key either way.
func (l *RedisSubmitLocker) Release(ctx context.Context, key string) {
	if err := l.client.Del(ctx, l.keyPrefix+key).Err(); err != nil {
		l.logger.Warn("Failed to release submit lock, TTL will reclaim it",
			zap.String("key", key),
			zap.Error(err))
	}
}
