package printer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slok/wellhub/internal/printer"
)

func TestTimeAgoAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		ago    time.Duration
		expAgo string
	}{
		"Under a second": {ago: 300 * time.Millisecond, expAgo: "just now"},
		"One second":     {ago: time.Second, expAgo: "1 second ago"},
		"Seconds":        {ago: 59 * time.Second, expAgo: "59 seconds ago"},
		"One minute":     {ago: 90 * time.Second, expAgo: "1 minute ago"},
		"Minutes":        {ago: 45 * time.Minute, expAgo: "45 minutes ago"},
		"Hours":          {ago: 5*time.Hour + 59*time.Minute, expAgo: "5 hours ago"},
		"One day":        {ago: 24 * time.Hour, expAgo: "1 day ago"},
		"Days":           {ago: 7 * 24 * time.Hour, expAgo: "7 days ago"},
		"Future":         {ago: -5 * time.Minute, expAgo: "in the future"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expAgo, printer.TimeAgoAt(now, now.Add(-test.ago)))
		})
	}
}

func TestTimeAgoDifferentZones(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	madrid := now.Add(-2 * time.Hour).In(time.FixedZone("CET", 3600))
	assert.Equal(t, "2 hours ago", printer.TimeAgoAt(now, madrid))
}

func TestFormatTimestamp(t *testing.T) {
	tests := map[string]struct {
		time     time.Time
		expected string
	}{
		"standard timestamp": {
			time:     time.Date(2026, 1, 30, 10, 15, 30, 0, time.UTC),
			expected: "2026-01-30 10:15:30 UTC",
		},
		"timestamp with different timezone gets converted to UTC": {
			time:     time.Date(2026, 1, 30, 10, 15, 30, 0, time.FixedZone("EST", -5*3600)),
			expected: "2026-01-30 15:15:30 UTC",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			result := printer.FormatTimestamp(test.time)
			assert.Equal(test.expected, result)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[string]struct {
		d        time.Duration
		expected string
	}{
		"negative":     {d: -time.Second, expected: "0s"},
		"milliseconds": {d: 850 * time.Millisecond, expected: "850ms"},
		"seconds":      {d: 4 * time.Second, expected: "4.0s"},
		"minutes":      {d: 2*time.Minute + 5*time.Second + 300*time.Millisecond, expected: "2m5s"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, printer.FormatDuration(test.d))
		})
	}
}
