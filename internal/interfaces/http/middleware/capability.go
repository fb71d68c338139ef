package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holycity/portal/internal/domain/identity"
	"github.com/holycity/portal/internal/interfaces/http/dto"
)

// RequireCapability aborts with 403 unless the authenticated user's role
// grants the given capability. It must run after JWT authentication.
func RequireCapability(cap identity.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := identity.ParseRole(GetJWTRole(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Unknown role"))
			return
		}

		if !role.Can(cap) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient permissions"))
			return
		}

		c.Next()
	}
}
