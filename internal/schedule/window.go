package schedule

import "time"

// Window is an ordered [start, end) pair in UTC: the recording interval
// for one firing of a schedule. Invariant: End is strictly after Start.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// IsActive reports whether now falls inside [Start, End).
func (w Window) IsActive(now time.Time) bool {
	return !now.Before(w.Start) && now.Before(w.End)
}

// TimeUntilStart returns how long until the window starts, or zero if
// it has already started.
func (w Window) TimeUntilStart(now time.Time) time.Duration {
	if now.Before(w.Start) {
		return w.Start.Sub(now)
	}
	return 0
}

// TimeRemaining returns how long until the window ends: the full
// duration if it hasn't started yet, zero if it has already ended, or
// the time left if it is in progress.
func (w Window) TimeRemaining(now time.Time) time.Duration {
	if now.Before(w.Start) {
		return w.Duration()
	}
	if !now.Before(w.End) {
		return 0
	}
	return w.End.Sub(now)
}
