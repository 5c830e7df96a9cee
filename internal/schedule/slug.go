package schedule

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and collapses runs of non-alphanumeric characters
// into a single hyphen, trimming leading/trailing hyphens. The result
// is safe for both directory names and the episode filename grammar.
func Slug(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	slug := nonAlphanumeric.ReplaceAllString(lower, "-")
	return strings.Trim(slug, "-")
}
