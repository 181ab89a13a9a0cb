package note

import (
	"fmt"
	"time"

	"github.com/sosodev/duration"
)

// ParseISODuration parses an ISO-8601 duration string (e.g., "P30D",
// "PT16H") into a time.Duration. Calendar components are converted using
// fixed lengths (30-day months, 365-day years), which is sufficient for the
// day- and hour-scale policies Risk Notes carry.
func ParseISODuration(s string) (time.Duration, error) {
	d, err := duration.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("parse ISO-8601 duration %q: %w", s, err)
	}
	return d.ToTimeDuration(), nil
}

// ISODurationHours parses an ISO-8601 duration string and returns its
// length in hours.
func ISODurationHours(s string) (float64, error) {
	d, err := ParseISODuration(s)
	if err != nil {
		return 0, err
	}
	return d.Hours(), nil
}
