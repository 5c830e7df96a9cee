package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oszuidwest/zwfm-streamcast/internal/apperrors"
)

// TimeOfDay is an hour/minute/second triple, always interpreted in a
// specific time.Location by the caller. It is never stored alongside a
// date; a date is only ever attached transiently, to resolve a window.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, apperrors.NewConfigError(fmt.Sprintf("invalid time of day %q", s), nil)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, apperrors.NewConfigError(fmt.Sprintf("invalid hour in %q", s), err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, apperrors.NewConfigError(fmt.Sprintf("invalid minute in %q", s), err)
	}
	second := 0
	if len(parts) == 3 {
		second, err = strconv.Atoi(parts[2])
		if err != nil || second < 0 || second > 59 {
			return TimeOfDay{}, apperrors.NewConfigError(fmt.Sprintf("invalid second in %q", s), err)
		}
	}

	return TimeOfDay{Hour: hour, Minute: minute, Second: second}, nil
}

// secondsSinceMidnight returns the number of seconds between midnight and
// this time of day.
func (t TimeOfDay) secondsSinceMidnight() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}
