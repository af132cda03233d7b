// Package dates normalizes date-like request bounds into a comparable
// calendar-day pair before any store query runs.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidRange is returned when the normalized start falls after the
// normalized end.
var ErrInvalidRange = errors.New("start date after end date")

// Earliest is the default lower bound when the caller leaves start empty.
// The local data coverage begins with the Shanghai exchange open.
var Earliest = time.Date(1990, time.December, 19, 0, 0, 0, 0, time.UTC)

var layouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"20060102",
	time.RFC3339,
}

// Sanitize parses the two date-like inputs, defaults empty bounds (start to
// the beginning of local coverage, end to today), and truncates both to UTC
// midnight. It is deterministic and side-effect free. A start later than the
// end is an error wrapping ErrInvalidRange.
func Sanitize(start, end string) (time.Time, time.Time, error) {
	from, err := parse(start, Earliest)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	to, err := parse(end, today())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s > %s",
			ErrInvalidRange, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return from, to, nil
}

func parse(s string, fallback time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.UTC().Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New("unrecognized date layout")
}

func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
