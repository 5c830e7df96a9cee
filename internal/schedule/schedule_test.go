package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduleComputesDurationAndCronExpression(t *testing.T) {
	now := time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC)
	start, err := ParseTimeOfDay("08:00")
	require.NoError(t, err)
	end, err := ParseTimeOfDay("10:00")
	require.NoError(t, err)

	sched, err := NewSchedule("Morning Show", start, end, time.UTC, "mp3", "/data", nil, "", "", "", now)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, sched.Duration)
	assert.Equal(t, "0 8 * * *", sched.CronExpression)
	assert.Equal(t, "*", sched.Frequency)
	assert.Equal(t, "/data/morning-show", sched.OutputDir)
	assert.NotEmpty(t, sched.ID.String())
}

func TestNewScheduleMidnightRolloverDuration(t *testing.T) {
	now := time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC)
	start, err := ParseTimeOfDay("23:00")
	require.NoError(t, err)
	end, err := ParseTimeOfDay("01:00")
	require.NoError(t, err)

	sched, err := NewSchedule("Night Show", start, end, time.UTC, "mp3", "/data", nil, "", "", "", now)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, sched.Duration)
}

func TestNewScheduleRejectsEmptyTitle(t *testing.T) {
	now := time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC)
	start, err := ParseTimeOfDay("08:00")
	require.NoError(t, err)
	end, err := ParseTimeOfDay("10:00")
	require.NoError(t, err)

	_, err = NewSchedule("   ", start, end, time.UTC, "mp3", "/data", nil, "", "", "", now)
	assert.Error(t, err)
}

func TestCurrentOrNextTaskBuildsFilePath(t *testing.T) {
	now := time.Date(2024, 1, 15, 7, 59, 55, 0, time.UTC)
	start, err := ParseTimeOfDay("08:00")
	require.NoError(t, err)
	end, err := ParseTimeOfDay("10:00")
	require.NoError(t, err)

	sched, err := NewSchedule("Morning Show", start, end, time.UTC, "mp3", "/data", nil, "", "", "", now)
	require.NoError(t, err)

	url, err := NewValidURL("http://stream.example.com/radio")
	require.NoError(t, err)

	task := sched.CurrentOrNextTask(url, now)
	assert.Equal(t, "Morning Show", task.Title)
	assert.Contains(t, task.FilePath, "2024-01-15--0800-1000--morning-show--")
	assert.Contains(t, task.FilePath, ".mp3")
}
