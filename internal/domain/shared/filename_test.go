package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain name kept", "selfie.jpg", "selfie.jpg"},
		{"path traversal stripped", "../../etc/passwd", "passwd"},
		{"windows separators stripped", `..\..\boot.ini`, "boot.ini"},
		{"spaces and unicode replaced", "foto pagi ☀.png", "foto_pagi__.png"},
		{"fully unsafe input degrades", "???", "file"},
		{"empty input degrades", "", "file"},
		{"leading dots trimmed", "...hidden.jpg", "hidden.jpg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeFilename(tc.in, "file"))
		})
	}
}
