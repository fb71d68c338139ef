package shared

import (
	"path/filepath"
	"strings"
)

// SanitizeFilename strips path components and replaces characters outside
// [A-Za-z0-9._-] so the result is safe to use as a bare filename. An empty
// or fully unsafe input degrades to the given fallback.
func SanitizeFilename(name, fallback string) string {
	// Drop any directory part, including traversal attempts.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	sanitized := strings.Trim(b.String(), "._")
	if sanitized == "" {
		return fallback
	}
	return sanitized
}
