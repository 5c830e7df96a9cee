package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oszuidwest/zwfm-streamcast/internal/apperrors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRecorderConfigValid(t *testing.T) {
	path := writeConfig(t, `
stream_url: http://stream.example.com/radio
output_dir: /var/podcasts
time_zone: UTC
recording_schedules:
  - title: Morning Show
    start_timeofday: "08:00"
    end_timeofday: "10:00"
`)

	cfg, err := LoadRecorderConfig(path, time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, cfg.Schedules, 1)
	assert.Equal(t, "Morning Show", cfg.Schedules[0].Title)
	assert.Equal(t, "*", cfg.Schedules[0].Frequency)
}

func TestLoadRecorderConfigMissingKey(t *testing.T) {
	path := writeConfig(t, `
output_dir: /var/podcasts
time_zone: UTC
recording_schedules:
  - title: Morning Show
    start_timeofday: "08:00"
    end_timeofday: "10:00"
`)

	_, err := LoadRecorderConfig(path, time.Now())
	require.Error(t, err)
	var cfgErr *apperrors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadRecorderConfigInvalidURL(t *testing.T) {
	path := writeConfig(t, `
stream_url: "not a url"
output_dir: /var/podcasts
time_zone: UTC
recording_schedules:
  - title: Morning Show
    start_timeofday: "08:00"
    end_timeofday: "10:00"
`)

	_, err := LoadRecorderConfig(path, time.Now())
	require.Error(t, err)
}

func TestLoadFeedPublisherConfigValid(t *testing.T) {
	baseDir := t.TempDir()
	path := writeConfig(t, `
base_directory: `+baseDir+`
base_url: https://podcasts.example.com
should_update_feeds_on_startup: true
`)

	cfg, err := LoadFeedPublisherConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.ShouldUpdateFeedsOnStartup)
	assert.Equal(t, baseDir, cfg.BaseDirectory)
}

func TestLoadFeedPublisherConfigMissingBaseDirectory(t *testing.T) {
	path := writeConfig(t, `
base_directory: /does/not/exist/anywhere
base_url: https://podcasts.example.com
`)

	_, err := LoadFeedPublisherConfig(path)
	require.Error(t, err)
	var cfgErr *apperrors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
