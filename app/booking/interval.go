// Package booking holds the reservation rules: the interval overlap
// predicate and the configurable booking policy. It is pure domain code
// with no knowledge of HTTP or SQL.
package booking

import (
	"strings"
	"time"
)

// TimeLayout is the naive local wall-clock format used everywhere:
// requests, responses and storage. No timezone offset is ever recorded
// or applied.
const TimeLayout = "2006-01-02 15:04:05"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one instant. Touching endpoints do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

var parseLayouts = []string{
	TimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTime parses a naive wall-clock timestamp in the local location.
// A trailing "Z" or fractional seconds sent by browser clients are
// dropped rather than converted: the wall-clock value always wins.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "Z")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	var firstErr error
	for _, layout := range parseLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// FormatTime renders t in the storage format, dropping any sub-second
// precision.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
