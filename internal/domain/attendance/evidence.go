package attendance

import (
	"context"
	"io"
	"time"

	"github.com/holycity/portal/internal/domain/shared"
)

// Upload is a raw photo upload handed over by the transport layer.
type Upload struct {
	Filename string
	Content  io.Reader
	Size     int64
}

// EvidenceStore persists attendance photo evidence under a derived name.
// Implementations address content by that name only. Remove exists so a
// failed ledger append can take its orphaned photo with it.
type EvidenceStore interface {
	Store(ctx context.Context, name string, content io.Reader, size int64) error
	Remove(ctx context.Context, name string) error
}

// EvidenceName derives the collision-resistant storage name for an uploaded
// photo: <username>_<YYYYMMDDHHMMSS>_<sanitized original name>. The username
// prefix separates concurrent uploads from different users, the
// second-resolution timestamp separates repeated uploads by the same user.
func EvidenceName(username, originalName string, at time.Time) string {
	return username + "_" + at.Format("20060102150405") + "_" + shared.SanitizeFilename(originalName, "photo")
}
