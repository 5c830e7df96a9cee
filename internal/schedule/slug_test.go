package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Morning Show":     "morning-show",
		"  Café de Paris ": "caf-de-paris",
		"ALL CAPS!!":       "all-caps",
		"already-a-slug":   "already-a-slug",
		"multi   spaces":   "multi-spaces",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slug(in), "Slug(%q)", in)
	}
}
