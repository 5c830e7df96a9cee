// Package constants defines application-wide constants for scheduling,
// streaming, debouncing, and file permissions.
package constants

import "time"

const (
	// DefaultChunkSize is the number of bytes read per HTTP stream chunk.
	DefaultChunkSize = 1024
	// DefaultHLSPollInterval is how often the HLS fetcher reloads the playlist.
	DefaultHLSPollInterval = 5 * time.Second
	// StartupGrace is how far into the future the scheduler arms an
	// already-active recording window, to let the process finish booting.
	StartupGrace = 5 * time.Second
	// DefaultDebounceTime is how long a path must be idle before the
	// debouncer fires a PodcastUpdated event.
	DefaultDebounceTime = 5 * time.Minute
	// DefaultWatchPollInterval is how often the directory watcher re-scans.
	DefaultWatchPollInterval = 1 * time.Second

	// DefaultTimezone is the UTC zone name. The Recorder config does not
	// fall back to it: a missing time_zone is a config error.
	DefaultTimezone = "UTC"
	// DefaultFrequency is the cron day-of-week field assumed when a
	// schedule omits one ("every day").
	DefaultFrequency = "*"

	// FeedFileName is the basename of the generated RSS file; the
	// debouncer ignores events for files with this name (the watcher
	// reports them like any other file).
	FeedFileName = "feed.rss"
	// MetadataFileName is the basename of the companion metadata file
	// written once per schedule directory.
	MetadataFileName = "metadata.yml"

	// DirPermissions defines the file mode for created directories.
	DirPermissions = 0o755
	// FilePermissions defines the file mode for created files.
	FilePermissions = 0o644
	// LogFilePermissions defines the file mode for log files.
	LogFilePermissions = 0o640
)
