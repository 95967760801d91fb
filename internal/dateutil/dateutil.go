// Package dateutil normalizes technote dates to UTC instants and formats them.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-technote/internal/tomlutil"
)

// ErrInvalidDate indicates a value could not be read as a date or datetime.
var ErrInvalidDate = errors.New("invalid date")

// Layouts for formatted output. Both are rendered in UTC.
const (
	isoDateLayout     = "2006-01-02"
	isoDatetimeLayout = "2006-01-02T15:04:05Z"
)

// naiveLayouts are datetime layouts without a zone offset, tried in order.
// A value without an offset is interpreted as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Normalize converts a date-like value into a UTC instant.
//
// Accepted inputs:
//   - TOML native dates and datetimes (local or with offset)
//   - strings holding an ISO 8601 date ("2015-11-18"), a datetime with an
//     offset ("2015-11-23T15:00:00Z", "2015-11-23T10:00:00-05:00") or a
//     naive datetime ("2015-11-23T15:00:00")
//   - time.Time
//
// Bare dates become midnight UTC and naive datetimes are assumed UTC.
func Normalize(v any) (time.Time, error) {
	if t, ok := tomlutil.LocalToUTC(v); ok {
		return t, nil
	}

	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: expected a date or datetime, got %T", ErrInvalidDate, v)
	}
	return ParseTimestamp(s)
}

// ParseTimestamp parses an ISO 8601 date or datetime string into a UTC instant.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not an ISO 8601 date or datetime", ErrInvalidDate, s)
}

// FormatISODate formats t as YYYY-MM-DD after converting to UTC.
func FormatISODate(t time.Time) string {
	return t.UTC().Format(isoDateLayout)
}

// FormatISODatetime formats t as YYYY-MM-DDTHH:MM:SSZ after converting to UTC.
func FormatISODatetime(t time.Time) string {
	return t.UTC().Format(isoDatetimeLayout)
}
