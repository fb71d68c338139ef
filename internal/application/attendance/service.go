package attendance

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/holycity/portal/internal/domain/attendance"
	"github.com/holycity/portal/internal/domain/identity"
	"go.uber.org/zap"
)

// SubmitLocker serializes concurrent submissions for the same
// (username, day, status) key across steps existence-check .. append.
type SubmitLocker interface {
	// Acquire tries to take the lock. It returns false without error when
	// the key is already held by another in-flight submission.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string)
}

// ServiceConfig holds the attendance policy parameters.
type ServiceConfig struct {
	// Fence is the office geofence submissions must fall inside.
	Fence attendance.Geofence
	// SubmitTimeout bounds store and evidence I/O for one submission.
	SubmitTimeout time.Duration
	// Location determines the calendar day used for duplicate detection.
	Location *time.Location
}

// DefaultServiceConfig returns the policy defaults: the Bandung office
// coordinate with a 5 meter radius, and the server's local calendar.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Fence: attendance.Geofence{
			Latitude:     -6.914744,
			Longitude:    107.609810,
			RadiusMeters: 5,
		},
		SubmitTimeout: 10 * time.Second,
		Location:      time.Local,
	}
}

// Service is the attendance policy engine: it gate-keeps whether a submitted
// attempt may become a durable ledger event.
type Service struct {
	events   attendance.EventRepository
	evidence attendance.EvidenceStore
	locker   SubmitLocker
	cfg      ServiceConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates the attendance policy engine.
func NewService(
	events attendance.EventRepository,
	evidence attendance.EvidenceStore,
	locker SubmitLocker,
	cfg ServiceConfig,
	logger *zap.Logger,
) *Service {
	if cfg.SubmitTimeout <= 0 {
		cfg.SubmitTimeout = DefaultServiceConfig().SubmitTimeout
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		events:   events,
		evidence: evidence,
		locker:   locker,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// SubmitRequest carries one check-in/out attempt as received from transport:
// the coordinates arrive as strings and are parsed here.
type SubmitRequest struct {
	Username  string
	Status    string
	Latitude  string
	Longitude string
	// Photo is optional evidence; nil means none was supplied.
	Photo *attendance.Upload
}

// EventResponse is an attendance event in API responses.
type EventResponse struct {
	ID         uuid.UUID         `json:"id"`
	Username   string            `json:"username"`
	Status     attendance.Status `json:"status"`
	Latitude   float64           `json:"latitude"`
	Longitude  float64           `json:"longitude"`
	PhotoRef   string            `json:"photo_ref,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Submit validates an attendance attempt and, if every check passes, appends
// exactly one event (and at most one evidence artifact) to the ledger.
// Rejections are the expected domain errors; nothing is written on any
// failure path.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*EventResponse, error) {
	status, err := attendance.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	lat, lon, err := parseCoordinates(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	inside, distance := s.cfg.Fence.Contains(lat, lon)
	if !inside {
		return nil, attendance.NewOutOfRangeError(distance, s.cfg.Fence.RadiusMeters)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.SubmitTimeout)
	defer cancel()

	now := s.now()
	day := midnight(now, s.cfg.Location)
	lockKey := submitLockKey(req.Username, day, status)

	acquired, err := s.locker.Acquire(ctx, lockKey)
	if err != nil {
		return nil, s.storageFailure("acquire submit lock", err)
	}
	if !acquired {
		// Another submission for the same triple is in flight; it will
		// produce the event this one would have duplicated.
		return nil, attendance.ErrAlreadyRecorded
	}
	defer s.locker.Release(context.WithoutCancel(ctx), lockKey)

	exists, err := s.events.ExistsForDay(ctx, req.Username, day, status)
	if err != nil {
		return nil, s.storageFailure("duplicate check", err)
	}
	if exists {
		return nil, attendance.ErrAlreadyRecorded
	}

	event, err := attendance.NewEvent(req.Username, status, lat, lon, now)
	if err != nil {
		return nil, err
	}

	photoRef := ""
	if req.Photo != nil && req.Photo.Filename != "" {
		photoRef = attendance.EvidenceName(req.Username, req.Photo.Filename, now.In(s.cfg.Location))
		if err := s.evidence.Store(ctx, photoRef, req.Photo.Content, req.Photo.Size); err != nil {
			return nil, s.storageFailure("store evidence photo", err)
		}
	}
	event.PhotoRef = photoRef

	if err := s.events.Append(ctx, event); err != nil {
		if photoRef != "" {
			// Do not leave a photo behind without its event.
			if rmErr := s.evidence.Remove(context.WithoutCancel(ctx), photoRef); rmErr != nil {
				s.logger.Warn("Failed to remove orphaned evidence photo",
					zap.String("photo_ref", photoRef),
					zap.Error(rmErr))
			}
		}
		if errors.Is(err, attendance.ErrAlreadyRecorded) {
			return nil, attendance.ErrAlreadyRecorded
		}
		return nil, s.storageFailure("append event", err)
	}

	s.logger.Info("Attendance recorded",
		zap.String("username", event.Username),
		zap.String("status", string(event.Status)),
		zap.String("photo_ref", event.PhotoRef),
	)

	return toEventResponse(event), nil
}

// VisibleRecords returns the attendance history the given actor may see:
// holders of the read-all capability get the whole ledger, everyone else
// only their own records. Both orderings are newest first.
func (s *Service) VisibleRecords(ctx context.Context, username string, role identity.Role) ([]EventResponse, error) {
	var (
		events []attendance.Event
		err    error
	)
	if role.Can(identity.CapAttendanceReadAll) {
		events, err = s.events.ListAll(ctx)
	} else {
		events, err = s.events.ListByUsername(ctx, username)
	}
	if err != nil {
		return nil, s.storageFailure("list events", err)
	}

	responses := make([]EventResponse, len(events))
	for i := range events {
		responses[i] = *toEventResponse(&events[i])
	}
	return responses, nil
}

func (s *Service) storageFailure(op string, err error) error {
	s.logger.Error("Attendance storage failure", zap.String("op", op), zap.Error(err))
	return attendance.ErrStorageFailure
}

func parseCoordinates(latStr, lonStr string) (float64, float64, error) {
	if latStr == "" || lonStr == "" {
		return 0, 0, attendance.ErrLocationUnavailable
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || !attendance.IsFinite(lat) {
		return 0, 0, attendance.ErrLocationUnavailable
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || !attendance.IsFinite(lon) {
		return 0, 0, attendance.ErrLocationUnavailable
	}
	return lat, lon, nil
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func submitLockKey(username string, day time.Time, status attendance.Status) string {
	return "attendance:submit:" + username + ":" + day.Format("2006-01-02") + ":" + string(status)
}

func toEventResponse(e *attendance.Event) *EventResponse {
	return &EventResponse{
		ID:         e.ID,
		Username:   e.Username,
		Status:     e.Status,
		Latitude:   e.Latitude,
		Longitude:  e.Longitude,
		PhotoRef:   e.PhotoRef,
		OccurredAt: e.OccurredAt,
	}
}
