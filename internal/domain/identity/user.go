package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/holycity/portal/internal/domain/shared"
)

// Role is the portal-wide role of a user account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHRD      Role = "hrd"
	RoleEmployee Role = "employee"
)

// ParseRole converts an externally supplied string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleHRD, RoleEmployee:
		return Role(s), nil
	default:
		return "", shared.NewDomainError("INVALID_ROLE", "Unknown role: "+s)
	}
}

// User is a portal login account. Identity is established elsewhere (login);
// the rest of the system trusts the username and role carried by the session.
type User struct {
	shared.BaseEntity
	Username     string
	PasswordHash string
	Role         Role
	// EmployeeID links the account to its HR employee record, if any.
	EmployeeID *uuid.UUID
}

// NewUser creates a user account with an already-hashed password.
func NewUser(username, passwordHash string, role Role) (*User, error) {
	if username == "" || passwordHash == "" {
		return nil, shared.ErrInvalidInput
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}
	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}

// Authentication errors
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
)

// UserRepository provides access to user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Save(ctx context.Context, user *User) error
}
