// Package storage provides evidence photo storage implementations.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/holycity/portal/internal/domain/attendance"
	"go.uber.org/zap"
)

var _ attendance.EvidenceStore = (*LocalEvidenceStore)(nil)

// LocalEvidenceStore keeps attendance photos on the local filesystem under a
// single flat directory. Names are assumed to be sanitized already; anything
// that still resolves outside the root is rejected.
type LocalEvidenceStore struct {
	root   string
	logger *zap.Logger
}

// NewLocalEvidenceStore creates the root directory if needed and returns a
// store rooted there.
func NewLocalEvidenceStore(root string, logger *zap.Logger) (*LocalEvidenceStore, error) {
	if root == "" {
		return nil, errors.New("evidence directory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create evidence directory: %w", err)
	}
	return &LocalEvidenceStore{root: root, logger: logger}, nil
}

// Store writes the photo under its derived name. An existing file with the
// same name is never overwritten.
func (s *LocalEvidenceStore) Store(ctx context.Context, name string, content io.Reader, size int64) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create evidence file: %w", err)
	}

	written, err := io.Copy(f, content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// Partial writes are not evidence. Clean up before reporting.
		if rmErr := os.Remove(path); rmErr != nil {
			s.logger.Warn("Failed to remove partial evidence file",
				zap.String("name", name),
				zap.Error(rmErr))
		}
		return fmt.Errorf("failed to write evidence file: %w", err)
	}

	s.logger.Debug("Stored evidence photo",
		zap.String("name", name),
		zap.Int64("bytes", written))
	return nil
}

// Remove deletes a stored photo. Removing a name that does not exist is not
// an error so compensating cleanup stays idempotent.
func (s *LocalEvidenceStore) Remove(ctx context.Context, name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove evidence file: %w", err)
	}
	return nil
}

func (s *LocalEvidenceStore) resolve(name string) (string, error) {
	if name == "" {
		return "", errors.New("evidence name is required")
	}
	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid evidence name %q", name)
	}
	return filepath.Join(s.root, name), nil
}
