// Package schedule implements the time-window resolver and the
// RecordingSchedule/RecordingTask data model: arbitrary daily
// recording windows with midnight rollover and user time zones.
package schedule

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oszuidwest/zwfm-streamcast/internal/apperrors"
)

// Schedule is an immutable daily recording configuration. Construct it
// with NewSchedule; all fields are read-only afterward.
type Schedule struct {
	ID             uuid.UUID
	Title          string
	StartTimeOfDay TimeOfDay // UTC, already converted from the user's local time zone
	Duration       time.Duration
	AudioFormat    string // "mp3" or "mp4", derived from the stream URL
	OutputDir      string
	Metadata       map[string]any
	Frequency      string // cron day-of-week field, default "*"
	Description    string
	ImageURL       ValidURL
	CronExpression string
}

// NewSchedule validates and constructs a Schedule. startLocal/endLocal
// are the configured local times of day; loc is the user's IANA time
// zone; now anchors the local->UTC conversion to a calendar date (DST
// depends on the date, not just the clock time). audioFormat is
// derived by the caller from the stream URL shape ("mp4" for .m3u8,
// else "mp3").
func NewSchedule(
	title string,
	startLocal, endLocal TimeOfDay,
	loc *time.Location,
	audioFormat string,
	baseOutputDir string,
	metadata map[string]any,
	frequency, description string,
	imageURL ValidURL,
	now time.Time,
) (*Schedule, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewConfigError("title cannot be empty", nil)
	}
	if frequency == "" {
		frequency = "*"
	}
	if metadata == nil {
		metadata = map[string]any{}
	}

	duration := durationBetween(startLocal, endLocal)
	startUTC := convertTimeOfDayToUTC(startLocal, loc, now)

	cronExpr := fmt.Sprintf("%d %d * * %s", startUTC.Minute, startUTC.Hour, frequency)

	return &Schedule{
		ID:             uuid.New(),
		Title:          title,
		StartTimeOfDay: startUTC,
		Duration:       duration,
		AudioFormat:    audioFormat,
		OutputDir:      filepath.Join(baseOutputDir, Slug(title)),
		Metadata:       metadata,
		Frequency:      frequency,
		Description:    description,
		ImageURL:       imageURL,
		CronExpression: cronExpr,
	}, nil
}

// durationBetween computes the duration of a local daily window,
// spanning to the next local day when end is not strictly after start
// (the midnight-rollover case).
func durationBetween(start, end TimeOfDay) time.Duration {
	startSecs := start.secondsSinceMidnight()
	endSecs := end.secondsSinceMidnight()
	if endSecs > startSecs {
		return time.Duration(endSecs-startSecs) * time.Second
	}
	return time.Duration(endSecs+24*3600-startSecs) * time.Second
}

// convertTimeOfDayToUTC converts a local time-of-day to UTC by
// attaching it to now's calendar date in loc, then reading back the
// resulting UTC clock time. This is the only place a local->UTC
// conversion happens; the result is stored on the Schedule and never
// re-derived.
func convertTimeOfDayToUTC(tod TimeOfDay, loc *time.Location, now time.Time) TimeOfDay {
	localNow := now.In(loc)
	local := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), tod.Hour, tod.Minute, tod.Second, 0, loc)
	utc := local.UTC()
	return TimeOfDay{Hour: utc.Hour(), Minute: utc.Minute(), Second: utc.Second()}
}

// ResolveWindow returns the current-or-next recording window for this
// schedule at instant now.
func (s *Schedule) ResolveWindow(now time.Time) Window {
	return ResolveWindow(s.StartTimeOfDay, s.Duration, s.Frequency, now)
}

// CurrentOrNextTask builds a fresh RecordingTask from this schedule's
// current-or-next window at now.
func (s *Schedule) CurrentOrNextTask(sourceURL ValidURL, now time.Time) Task {
	window := s.ResolveWindow(now)
	taskID := uuid.New()
	return Task{
		ID:          taskID,
		Title:       s.Title,
		SourceURL:   sourceURL,
		AudioFormat: s.AudioFormat,
		Window:      window,
		FilePath:    BuildFilePath(s.OutputDir, window, s.Title, taskID, s.AudioFormat),
	}
}

// Task is an ephemeral instance of one scheduled firing.
type Task struct {
	ID          uuid.UUID
	Title       string
	SourceURL   ValidURL
	AudioFormat string
	Window      Window
	FilePath    string
}
