package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/holycity/portal/internal/domain/attendance"
	"github.com/holycity/portal/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAttendanceRepository implements attendance.EventRepository using GORM.
// The occurred_on column carries the event's calendar day in the office
// timezone; its composite unique index with (username, status) enforces the
// once-per-status-per-day rule even when two submissions race past the
// service-level check.
type GormAttendanceRepository struct {
	db  *gorm.DB
	loc *time.Location
}

// NewGormAttendanceRepository creates a new GormAttendanceRepository.
// loc is the office timezone the attendance calendar day is derived in.
func NewGormAttendanceRepository(db *gorm.DB, loc *time.Location) *GormAttendanceRepository {
	if loc == nil {
		loc = time.Local
	}
	return &GormAttendanceRepository{db: db, loc: loc}
}

// Append inserts one event into the ledger. A unique-index violation means
// an equivalent event already exists and maps to ErrAlreadyRecorded.
func (r *GormAttendanceRepository) Append(ctx context.Context, event *attendance.Event) error {
	occurredOn := event.OccurredAt.In(r.loc).Format("2006-01-02")
	model := models.AttendanceEventModelFromDomain(event, occurredOn)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return attendance.ErrAlreadyRecorded
		}
		return err
	}
	return nil
}

// ExistsForDay reports whether the user already has an event with the given
// status on the given calendar day
func (r *GormAttendanceRepository) ExistsForDay(ctx context.Context, username string, day time.Time, status attendance.Status) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AttendanceEventModel{}).
		Where("username = ? AND status = ? AND occurred_on = ?",
			username, string(status), day.In(r.loc).Format("2006-01-02")).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByUsername lists one user's events, newest first
func (r *GormAttendanceRepository) ListByUsername(ctx context.Context, username string) ([]attendance.Event, error) {
	var eventModels []models.AttendanceEventModel
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("occurred_at DESC").
		Find(&eventModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainEvents(eventModels), nil
}

// ListAll lists every event in the ledger, newest first
func (r *GormAttendanceRepository) ListAll(ctx context.Context) ([]attendance.Event, error) {
	var eventModels []models.AttendanceEventModel
	err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Find(&eventModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainEvents(eventModels), nil
}

func toDomainEvents(eventModels []models.AttendanceEventModel) []attendance.Event {
	events := make([]attendance.Event, len(eventModels))
	for i := range eventModels {
		events[i] = *eventModels[i].ToDomain()
	}
	return events
}

var _ attendance.EventRepository = (*GormAttendanceRepository)(nil)
