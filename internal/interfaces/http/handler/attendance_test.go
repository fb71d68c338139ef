package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	attendanceapp "github.com/holycity/portal/internal/application/attendance"
	"github.com/holycity/portal/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryEventRepository is an in-memory attendance.EventRepository for
// handler tests
type memoryEventRepository struct {
	events []attendance.Event
}

func (r *memoryEventRepository) Append(ctx context.Context, event *attendance.Event) error {
	r.events = append(r.events, *event)
	return nil
}

func (r *memoryEventRepository) ExistsForDay(ctx context.Context, username string, day time.Time, status attendance.Status) (bool, error) {
	for _, e := range r.events {
		if e.Username == username && e.Status == status && e.Day(time.UTC).Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryEventRepository) ListByUsername(ctx context.Context, username string) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, e := range r.events {
		if e.Username == username {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryEventRepository) ListAll(ctx context.Context) ([]attendance.Event, error) {
	return r.events, nil
}

type discardEvidenceStore struct{}

func (discardEvidenceStore) Store(ctx context.Context, name string, content io.Reader, size int64) error {
	_, err := io.Copy(io.Discard, content)
	return err
}

func (discardEvidenceStore) Remove(ctx context.Context, name string) error { return nil }

type alwaysFreeLocker struct{}

func (alwaysFreeLocker) Acquire(ctx context.Context, key string) (bool, error) { return true, nil }
func (alwaysFreeLocker) Release(ctx context.Context, key string)               {}

func newAttendanceTestRouter(t *testing.T, username, role string) (*gin.Engine, *memoryEventRepository) {
	t.Helper()

	repo := &memoryEventRepository{}
	service := attendanceapp.NewService(repo, discardEvidenceStore{}, alwaysFreeLocker{},
		attendanceapp.ServiceConfig{
			Fence: attendance.Geofence{
				Latitude:     -6.914744,
				Longitude:    107.609810,
				RadiusMeters: 5,
			},
			SubmitTimeout: 5 * time.Second,
			Location:      time.UTC,
		}, nil)
	h := NewAttendanceHandler(service)

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("jwt_username", username)
		c.Set("jwt_role", role)
	})
	engine.POST("/attendance", h.Submit)
	engine.GET("/attendance", h.Records)
	return engine, repo
}

func submitForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestAttendanceHandlerSubmit(t *testing.T) {
	t.Run("records a check-in at the office", func(t *testing.T) {
		router, repo := newAttendanceTestRouter(t, "budi", "employee")

		body, contentType := submitForm(t, map[string]string{
			"status":    "check_in",
			"latitude":  "-6.914744",
			"longitude": "107.609810",
		})
		req := httptest.NewRequest("POST", "/attendance", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, repo.events, 1)
		assert.Equal(t, "budi", repo.events[0].Username)
	})

	t.Run("rejects a submission away from the office", func(t *testing.T) {
		router, repo := newAttendanceTestRouter(t, "budi", "employee")

		body, contentType := submitForm(t, map[string]string{
			"status":    "check_in",
			"latitude":  "-6.920000",
			"longitude": "107.609810",
		})
		req := httptest.NewRequest("POST", "/attendance", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "OUT_OF_RANGE", resp.Error.Code)
		assert.Empty(t, repo.events)
	})

	t.Run("rejects missing coordinates", func(t *testing.T) {
		router, _ := newAttendanceTestRouter(t, "budi", "employee")

		body, contentType := submitForm(t, map[string]string{"status": "check_in"})
		req := httptest.NewRequest("POST", "/attendance", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "LOCATION_UNAVAILABLE", resp.Error.Code)
	})

	t.Run("second submission the same day conflicts", func(t *testing.T) {
		router, _ := newAttendanceTestRouter(t, "budi", "employee")

		fields := map[string]string{
			"status":    "check_in",
			"latitude":  "-6.914744",
			"longitude": "107.609810",
		}

		body, contentType := submitForm(t, fields)
		req := httptest.NewRequest("POST", "/attendance", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		body, contentType = submitForm(t, fields)
		req = httptest.NewRequest("POST", "/attendance", body)
		req.Header.Set("Content-Type", contentType)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ALREADY_RECORDED", resp.Error.Code)
	})
}

func TestAttendanceHandlerRecords(t *testing.T) {
	router, repo := newAttendanceTestRouter(t, "budi", "employee")

	budi, err := attendance.NewEvent("budi", attendance.StatusCheckIn, -6.914744, 107.609810, time.Now())
	require.NoError(t, err)
	siti, err := attendance.NewEvent("siti", attendance.StatusCheckIn, -6.914744, 107.609810, time.Now())
	require.NoError(t, err)
	repo.events = append(repo.events, *budi, *siti)

	req := httptest.NewRequest("GET", "/attendance", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	records, ok := resp.Data.([]interface{})
	require.True(t, ok)
	// An employee sees only their own history
	assert.Len(t, records, 1)
}
