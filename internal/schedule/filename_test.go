package schedule

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFilenameRoundTrip asserts that for every generated file path,
// parsing its basename back out recovers the same date, start/end
// times, slug, and uuid that built it.
func TestFilenameRoundTrip(t *testing.T) {
	window := Window{
		Start: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	}
	taskID := uuid.New()

	path := BuildFilePath("/data/morning-show", window, "Morning Show!", taskID, "mp3")

	parsed, ok := ParseFilename(filepath.Base(path))
	require.True(t, ok)
	assert.Equal(t, "2024-01-15", parsed.Date)
	assert.Equal(t, "0800", parsed.StartTime)
	assert.Equal(t, "1000", parsed.EndTime)
	assert.Equal(t, "morning-show", parsed.Slug)
	assert.Equal(t, taskID.String(), parsed.UUID)
	assert.Equal(t, "mp3", parsed.Ext)
}

func TestParseFilenameRejectsNonEpisodeFiles(t *testing.T) {
	for _, name := range []string{"feed.rss", "metadata.yml", "notes.txt", "2024-01-15.mp3"} {
		_, ok := ParseFilename(name)
		assert.False(t, ok, "expected %q to be rejected", name)
	}
}

