package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holycity/portal/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size. Attendance
// photo uploads are the largest expected bodies, so the server cap tracks
// the configured photo size limit.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("REQUEST_TOO_LARGE", "Request body exceeds maximum allowed size"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
