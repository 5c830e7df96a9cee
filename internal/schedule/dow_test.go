package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchesFrequency(t *testing.T) {
	cases := []struct {
		freq    string
		weekday time.Weekday
		want    bool
	}{
		{"*", time.Wednesday, true},
		{"", time.Wednesday, true},
		{"1", time.Monday, true},
		{"1", time.Tuesday, false},
		{"1-5", time.Wednesday, true},
		{"1-5", time.Sunday, false},
		{"0,6", time.Saturday, true},
		{"0,6", time.Monday, false},
		{"mon", time.Monday, true},
		{"FRI-MON", time.Sunday, true},
		{"FRI-MON", time.Wednesday, false},
		{"7", time.Sunday, true}, // some cron dialects use 7 for Sunday
	}

	for _, c := range cases {
		assert.Equal(t, c.want, matchesFrequency(c.freq, c.weekday), "freq=%q weekday=%s", c.freq, c.weekday)
	}
}
