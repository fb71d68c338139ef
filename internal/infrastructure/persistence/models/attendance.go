package models

import (
	"time"

	"github.com/holycity/portal/internal/domain/attendance"
)

// AttendanceEventModel is the persistence model for attendance ledger events.
// OccurredOn is the calendar day (in the office timezone) the event belongs
// to; the composite unique index is the storage-level backstop for the
// once-per-status-per-day rule.
type AttendanceEventModel struct {
	BaseModel
	Username   string    `gorm:"size:80;not null;index;uniqueIndex:idx_attendance_once_per_day,priority:1"`
	Status     string    `gorm:"size:20;not null;uniqueIndex:idx_attendance_once_per_day,priority:2"`
	OccurredOn string    `gorm:"size:10;not null;uniqueIndex:idx_attendance_once_per_day,priority:3"`
	Latitude   float64   `gorm:"not null"`
	Longitude  float64   `gorm:"not null"`
	PhotoRef   string    `gorm:"size:255"`
	OccurredAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name
func (AttendanceEventModel) TableName() string {
	return "attendance_events"
}

// ToDomain converts the model to a domain event
func (m *AttendanceEventModel) ToDomain() *attendance.Event {
	return &attendance.Event{
		BaseEntity: m.BaseModel.ToDomain(),
		Username:   m.Username,
		Status:     attendance.Status(m.Status),
		Latitude:   m.Latitude,
		Longitude:  m.Longitude,
		PhotoRef:   m.PhotoRef,
		OccurredAt: m.OccurredAt,
	}
}

// AttendanceEventModelFromDomain converts a domain event to the persistence
// model. occurredOn is the event's calendar day in the office timezone.
func AttendanceEventModelFromDomain(e *attendance.Event, occurredOn string) *AttendanceEventModel {
	m := &AttendanceEventModel{
		Username:   e.Username,
		Status:     string(e.Status),
		OccurredOn: occurredOn,
		Latitude:   e.Latitude,
		Longitude:  e.Longitude,
		PhotoRef:   e.PhotoRef,
		OccurredAt: e.OccurredAt,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}
