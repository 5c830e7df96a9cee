package schedule

import "time"

// fireTimeOnDate returns the UTC instant for tod on the same calendar
// date (in UTC) as date.
func fireTimeOnDate(date time.Time, tod TimeOfDay) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), tod.Hour, tod.Minute, tod.Second, 0, time.UTC)
}

// latestFireAtOrBefore returns the latest cron instant <= now.
func latestFireAtOrBefore(now time.Time, tod TimeOfDay, freq string) time.Time {
	day := now.UTC()
	for i := 0; i <= 7; i++ {
		d := day.AddDate(0, 0, -i)
		candidate := fireTimeOnDate(d, tod)
		if !candidate.After(now) && matchesFrequency(freq, d.Weekday()) {
			return candidate
		}
	}
	// Unreachable for any valid cron day-of-week field, which always
	// matches at least one day in a 7-day window.
	return fireTimeOnDate(day, tod)
}

// earliestFireAfter returns the earliest cron instant > now.
func earliestFireAfter(now time.Time, tod TimeOfDay, freq string) time.Time {
	day := now.UTC()
	for i := 0; i <= 8; i++ {
		d := day.AddDate(0, 0, i)
		candidate := fireTimeOnDate(d, tod)
		if candidate.After(now) && matchesFrequency(freq, d.Weekday()) {
			return candidate
		}
	}
	return fireTimeOnDate(day.AddDate(0, 0, 1), tod)
}

// ResolveWindow computes the current window if now falls inside one, or
// the next window otherwise. prev is the latest cron instant
// at or before now; if now is still inside [prev, prev+duration) that
// window is returned, otherwise the next firing's window is returned.
func ResolveWindow(startTimeOfDayUTC TimeOfDay, duration time.Duration, frequency string, now time.Time) Window {
	prev := latestFireAtOrBefore(now, startTimeOfDayUTC, frequency)
	prevEnd := prev.Add(duration)
	if now.Before(prevEnd) {
		return Window{Start: prev, End: prevEnd}
	}

	next := earliestFireAfter(now, startTimeOfDayUTC, frequency)
	return Window{Start: next, End: next.Add(duration)}
}
