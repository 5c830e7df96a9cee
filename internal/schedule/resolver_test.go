package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveWindowIsTotalAndBounded asserts that for every schedule
// and instant, resolve returns a window whose end is strictly after
// now, and whose start is either at, before, or after now consistently
// with is_active.
func TestResolveWindowIsTotalAndBounded(t *testing.T) {
	tod, err := ParseTimeOfDay("08:00")
	require.NoError(t, err)
	duration := 2 * time.Hour

	instants := []time.Time{
		time.Date(2024, 1, 15, 7, 59, 55, 0, time.UTC),
		time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
		time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC),
	}

	for _, now := range instants {
		w := ResolveWindow(tod, duration, "*", now)
		assert.True(t, w.End.After(now), "window end must be after now for now=%s", now)
		if w.IsActive(now) {
			assert.True(t, !w.Start.After(now) && w.End.After(now))
		} else {
			assert.True(t, w.Start.After(now))
		}
	}
}

// TestResolveWindowStartsAreNonDecreasing checks that resolved window
// starts never move backward as now advances.
func TestResolveWindowStartsAreNonDecreasing(t *testing.T) {
	tod, err := ParseTimeOfDay("08:00")
	require.NoError(t, err)
	duration := 2 * time.Hour

	t1 := time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	w1 := ResolveWindow(tod, duration, "*", t1)
	w2 := ResolveWindow(tod, duration, "*", t2)
	assert.False(t, w2.Start.Before(w1.Start))
}

// TestResolveWindowMidnightRollover checks a start 23:00, end 01:00
// schedule in a named zone: duration spans exactly 2 hours and the
// window contains 23:30 local.
func TestResolveWindowMidnightRollover(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	startTOD, err := ParseTimeOfDay("23:00")
	require.NoError(t, err)
	endTOD, err := ParseTimeOfDay("01:00")
	require.NoError(t, err)

	duration := durationBetween(startTOD, endTOD)
	assert.Equal(t, 2*time.Hour, duration)

	now := time.Date(2024, 1, 15, 22, 30, 0, 0, loc) // 22:30 local, winter UTC+1
	startUTC := convertTimeOfDayToUTC(startTOD, loc, now)

	w := ResolveWindow(startUTC, duration, "*", now.UTC())
	assert.Equal(t, 2*time.Hour, w.Duration())

	local2330 := time.Date(2024, 1, 15, 23, 30, 0, 0, loc).UTC()
	assert.True(t, w.IsActive(local2330), "window should contain 23:30 Berlin (30 minutes into the 23:00-01:00 window)")
}

// TestResolveWindowActiveOnStartGrace checks that if the current-or-next
// window is already active at registration time, ResolveWindow itself
// reports is_active so the caller (the Scheduler) can apply the 5s
// grace override.
func TestResolveWindowActiveOnStartGrace(t *testing.T) {
	tod, err := ParseTimeOfDay("08:00")
	require.NoError(t, err)
	now := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	w := ResolveWindow(tod, 2*time.Hour, "*", now)
	assert.True(t, w.IsActive(now))
}

func TestResolveWindowRespectsFrequency(t *testing.T) {
	tod, err := ParseTimeOfDay("08:00")
	require.NoError(t, err)

	// Only fires on Monday; now is a Tuesday morning before 08:00.
	now := time.Date(2024, 1, 16, 7, 0, 0, 0, time.UTC) // Tuesday
	w := ResolveWindow(tod, time.Hour, "1", now)         // DOW 1 = Monday

	assert.Equal(t, time.Monday, w.Start.Weekday())
	assert.True(t, w.Start.After(now))
}
