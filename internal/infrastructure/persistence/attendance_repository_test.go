package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/holycity/portal/internal/domain/attendance"
	"github.com/holycity/portal/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSqliteAttendanceRepository backs the repository with an in-memory
// database so the unique-index behavior is exercised for real
func newSqliteAttendanceRepository(t *testing.T) *GormAttendanceRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AttendanceEventModel{}))

	return NewGormAttendanceRepository(db, time.UTC)
}

func newEvent(t *testing.T, username string, status attendance.Status, at time.Time) *attendance.Event {
	t.Helper()
	event, err := attendance.NewEvent(username, status, -6.914744, 107.609810, at)
	require.NoError(t, err)
	return event
}

func TestGormAttendanceRepository_Append(t *testing.T) {
	ctx := context.Background()
	morning := time.Date(2026, 7, 18, 8, 0, 0, 0, time.UTC)

	t.Run("appends and reads back", func(t *testing.T) {
		repo := newSqliteAttendanceRepository(t)

		event := newEvent(t, "budi", attendance.StatusCheckIn, morning)
		event.PhotoRef = "budi_20260718080000_selfie.jpg"
		require.NoError(t, repo.Append(ctx, event))

		events, err := repo.ListByUsername(ctx, "budi")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, attendance.StatusCheckIn, events[0].Status)
		assert.Equal(t, "budi_20260718080000_selfie.jpg", events[0].PhotoRef)
	})

	t.Run("second event for same user, status, and day is rejected", func(t *testing.T) {
		repo := newSqliteAttendanceRepository(t)

		require.NoError(t, repo.Append(ctx, newEvent(t, "budi", attendance.StatusCheckIn, morning)))

		err := repo.Append(ctx, newEvent(t, "budi", attendance.StatusCheckIn, morning.Add(2*time.Hour)))
		assert.ErrorIs(t, err, attendance.ErrAlreadyRecorded)
	})

	t.Run("different status on the same day is accepted", func(t *testing.T) {
		repo := newSqliteAttendanceRepository(t)

		require.NoError(t, repo.Append(ctx, newEvent(t, "budi", attendance.StatusCheckIn, morning)))
		require.NoError(t, repo.Append(ctx, newEvent(t, "budi", attendance.StatusCheckOut, morning.Add(9*time.Hour))))
	})

	t.Run("same status on the next day is accepted", func(t *testing.T) {
		repo := newSqliteAttendanceRepository(t)

		require.NoError(t, repo.Append(ctx, newEvent(t, "budi", attendance.StatusCheckIn, morning)))
		require.NoError(t, repo.Append(ctx, newEvent(t, "budi", attendance.StatusCheckIn, morning.AddDate(0, 0, 1))))
	})

	t.Run("different users are independent", func(t *testing.T) {
		repo := newSqliteAttendanceRepository(t)

		require.NoError(t, repo.Append(ctx, newEvent(t, "budi", attendance.StatusCheckIn, morning)))
		require.NoError(t, repo.Append(ctx, newEvent(t, "siti", attendance.StatusCheckIn, morning)))
	})
}

func TestGormAttendanceRepository_ExistsForDay(t *testing.T) {
	ctx := context.Background()
	repo := newSqliteAttendanceRepository(t)
	morning := time.Date(2026, 7, 18, 8, 0, 0, 0, time.UTC)
	day := time.Date(2026, 7, 18, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, newEvent(t, "budi", attendance.StatusCheckIn, morning)))

	exists, err := repo.ExistsForDay(ctx, "budi", day, attendance.StatusCheckIn)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForDay(ctx, "budi", day, attendance.StatusCheckOut)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsForDay(ctx, "budi", day.AddDate(0, 0, 1), attendance.StatusCheckIn)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsForDay(ctx, "siti", day, attendance.StatusCheckIn)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormAttendanceRepository_Listing(t *testing.T) {
	ctx := context.Background()
	repo := newSqliteAttendanceRepository(t)
	morning := time.Date(2026, 7, 18, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, newEvent(t, "budi", attendance.StatusCheckIn, morning)))
	require.NoError(t, repo.Append(ctx, newEvent(t, "siti", attendance.StatusCheckIn, morning.Add(time.Minute))))
	require.NoError(t, repo.Append(ctx, newEvent(t, "budi", attendance.StatusCheckOut, morning.Add(9*time.Hour))))

	t.Run("list by username is newest first", func(t *testing.T) {
		events, err := repo.ListByUsername(ctx, "budi")
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, attendance.StatusCheckOut, events[0].Status)
		assert.Equal(t, attendance.StatusCheckIn, events[1].Status)
	})

	t.Run("list all covers every user", func(t *testing.T) {
		events, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 3)
	})
}
