package cache

import (
	"context"
	"sync"
	"time"

	attendanceapp "github.com/holycity/portal/internal/application/attendance"
)

var _ attendanceapp.SubmitLocker = (*InMemorySubmitLocker)(nil)

// InMemorySubmitLocker serializes attendance submissions within a single
// process. Suitable for single-instance deployments and tests. Held locks
// expire after a TTL so a leaked lock cannot wedge a user permanently.
type InMemorySubmitLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	ttl   time.Duration
	clock func() time.Time
}

// NewInMemorySubmitLocker creates a process-local submit locker.
func NewInMemorySubmitLocker() *InMemorySubmitLocker {
	return &InMemorySubmitLocker{
		held:  make(map[string]time.Time),
		ttl:   DefaultSubmitLockTTL,
		clock: time.Now,
	}
}

// Acquire takes the lock. Returns false when the key is held and not yet
// expired.
func (l *InMemorySubmitLocker) Acquire(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if expiresAt, ok := l.held[key]; ok && now.Before(expiresAt) {
		return false, nil
	}
	l.held[key] = now.Add(l.ttl)
	return true, nil
}

// Release drops the lock.
func (l *InMemorySubmitLocker) Release(ctx context.Context, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
}
