package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySubmitLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("acquire then release", func(t *testing.T) {
		locker := NewInMemorySubmitLocker()

		ok, err := locker.Acquire(ctx, "attendance:submit:budi:2026-07-18:check_in")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = locker.Acquire(ctx, "attendance:submit:budi:2026-07-18:check_in")
		require.NoError(t, err)
		assert.False(t, ok)

		locker.Release(ctx, "attendance:submit:budi:2026-07-18:check_in")

		ok, err = locker.Acquire(ctx, "attendance:submit:budi:2026-07-18:check_in")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("distinct keys do not contend", func(t *testing.T) {
		locker := NewInMemorySubmitLocker()

		ok, err := locker.Acquire(ctx, "attendance:submit:budi:2026-07-18:check_in")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = locker.Acquire(ctx, "attendance:submit:budi:2026-07-18:check_out")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = locker.Acquire(ctx, "attendance:submit:siti:2026-07-18:check_in")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("expired locks can be re-acquired", func(t *testing.T) {
		locker := NewInMemorySubmitLocker()
		now := time.Date(2026, 7, 18, 8, 0, 0, 0, time.UTC)
		locker.clock = func() time.Time { return now }

		ok, err := locker.Acquire(ctx, "stale-key")
		require.NoError(t, err)
		assert.True(t, ok)

		now = now.Add(DefaultSubmitLockTTL + time.Second)

		ok, err = locker.Acquire(ctx, "stale-key")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
