package attendance

import (
	"context"
	"math"
	"time"

	"github.com/holycity/portal/internal/domain/shared"
)

// Event is one validated check-in/out/leave record in the attendance ledger.
// Events are append-only: they are never updated or deleted once recorded.
type Event struct {
	shared.BaseEntity
	Username  string
	Status    Status
	Latitude  float64
	Longitude float64
	// PhotoRef is the derived name of the stored evidence photo, empty when
	// no photo was supplied.
	PhotoRef string
	// OccurredAt is the submission instant, assigned at creation and
	// immutable afterwards.
	OccurredAt time.Time
}

// NewEvent constructs a validated attendance event. Coordinates must be
// finite; an event without a location cannot exist.
func NewEvent(username string, status Status, lat, lon float64, occurredAt time.Time) (*Event, error) {
	if username == "" {
		return nil, shared.ErrInvalidInput
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if !IsFinite(lat) || !IsFinite(lon) {
		return nil, ErrLocationUnavailable
	}
	return &Event{
		BaseEntity: shared.NewBaseEntity(),
		Username:   username,
		Status:     status,
		Latitude:   lat,
		Longitude:  lon,
		OccurredAt: occurredAt,
	}, nil
}

// Day returns the calendar date of the event in the given location.
// Duplicate detection is by calendar day, not a rolling 24h window.
func (e *Event) Day(loc *time.Location) time.Time {
	t := e.OccurredAt.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// IsFinite reports whether f is a usable coordinate value: not NaN and not
// infinite. ParseFloat accepts "NaN" and "Inf" spellings without error, so
// coordinate parsing must check this separately.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// EventRepository is the append-only ledger of attendance events.
//
// Append must enforce uniqueness of (username, calendar day, status) at the
// storage level and return ErrAlreadyRecorded on violation, so that two
// concurrent submissions cannot both slip past the policy engine's
// existence check.
type EventRepository interface {
	Append(ctx context.Context, event *Event) error
	ExistsForDay(ctx context.Context, username string, day time.Time, status Status) (bool, error)
	ListByUsername(ctx context.Context, username string) ([]Event, error)
	ListAll(ctx context.Context) ([]Event, error)
}
