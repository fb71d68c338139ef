package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/holycity/portal/internal/domain/identity"
)

// LoginInput contains login request data
type LoginInput struct {
	Username string
	Password string
	IP       string
}

// LoginResult contains login response data
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// UserInfo is the user payload embedded in auth responses
type UserInfo struct {
	ID           uuid.UUID             `json:"id"`
	Username     string                `json:"username"`
	Role         identity.Role         `json:"role"`
	Capabilities []identity.Capability `json:"capabilities"`
}

// RefreshTokenInput contains token refresh request data
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains token refresh response data
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput contains logout request data
type LogoutInput struct {
	UserID uuid.UUID
	// JTI and TokenTTL identify the access token to revoke
	JTI      string
	TokenTTL time.Duration
}

// CurrentUserResult contains the current user's information
type CurrentUserResult struct {
	User UserInfo `json:"user"`
}
