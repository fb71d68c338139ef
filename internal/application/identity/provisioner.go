package identity

import (
	"context"
	"errors"

	"github.com/holycity/portal/internal/domain/identity"
	"github.com/holycity/portal/internal/domain/shared"
	"github.com/holycity/portal/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Provisioner seeds the initial accounts a fresh deployment needs. It is
// invoked explicitly (cmd/provision), never as a request side effect, and is
// safe to run repeatedly.
type Provisioner struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewProvisioner creates a provisioner
func NewProvisioner(userRepo identity.UserRepository, logger *zap.Logger) *Provisioner {
	return &Provisioner{userRepo: userRepo, logger: logger}
}

// EnsureAdmin creates the admin account with the given credentials if no
// account with that username exists yet. An existing account is left
// untouched, password included.
func (p *Provisioner) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" {
		return shared.NewDomainError("INVALID_INPUT", "Admin username is required")
	}

	_, err := p.userRepo.FindByUsername(ctx, username)
	if err == nil {
		p.logger.Info("Admin account already exists, skipping", zap.String("username", username))
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Admin password rejected: "+err.Error())
	}

	admin, err := identity.NewUser(username, hash, identity.RoleAdmin)
	if err != nil {
		return err
	}

	if err := p.userRepo.Save(ctx, admin); err != nil {
		return err
	}

	p.logger.Info("Admin account provisioned", zap.String("username", username))
	return nil
}
