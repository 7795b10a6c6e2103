package ingest

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// SanitizeTitle makes a title safe for filesystem use: accented characters
// decompose to base letters, path separators become hyphens, and anything
// that is not alphanumeric, space, hyphen or underscore is stripped.
func SanitizeTitle(title string) string {
	t := unidecode.Unidecode(title)
	t = strings.NewReplacer("/", "-", ":", "-").Replace(t)

	var b strings.Builder
	b.Grow(len(t))
	for _, r := range t {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
