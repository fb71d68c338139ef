package handler

import (
	"github.com/gin-gonic/gin"
	attendanceapp "github.com/holycity/portal/internal/application/attendance"
	"github.com/holycity/portal/internal/domain/attendance"
	"github.com/holycity/portal/internal/domain/identity"
	"github.com/holycity/portal/internal/interfaces/http/middleware"
)

// AttendanceHandler handles attendance submission and history endpoints
type AttendanceHandler struct {
	BaseHandler
	service *attendanceapp.Service
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(service *attendanceapp.Service) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// Submit records a check-in or check-out. The request is multipart form
// data: status, latitude, and longitude fields plus an optional photo file.
// POST /api/v1/attendance
func (h *AttendanceHandler) Submit(c *gin.Context) {
	username := middleware.GetJWTUsername(c)
	if username == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := attendanceapp.SubmitRequest{
		Username:  username,
		Status:    c.PostForm("status"),
		Latitude:  c.PostForm("latitude"),
		Longitude: c.PostForm("longitude"),
	}

	if fileHeader, err := c.FormFile("photo"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			h.BadRequest(c, "Could not read uploaded photo")
			return
		}
		defer file.Close()

		req.Photo = &attendance.Upload{
			Filename: fileHeader.Filename,
			Content:  file,
			Size:     fileHeader.Size,
		}
	}

	result, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Records lists the attendance history visible to the caller: admins and
// HRD see everyone, employees see only themselves.
// GET /api/v1/attendance
func (h *AttendanceHandler) Records(c *gin.Context) {
	username := middleware.GetJWTUsername(c)
	if username == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	role, err := identity.ParseRole(middleware.GetJWTRole(c))
	if err != nil {
		h.Unauthorized(c, "Unknown role")
		return
	}

	records, err := h.service.VisibleRecords(c.Request.Context(), username, role)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}
