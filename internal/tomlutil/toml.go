// Package tomlutil wraps TOML parsing to isolate the external dependency.
// This allows swapping the underlying TOML library without modifying callers.
package tomlutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// MaxInputSize limits TOML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrSyntax         = errors.New("tomlutil: malformed TOML")
	ErrInputTooLarge  = errors.New("tomlutil: input exceeds maximum size")
	ErrNilDestination = errors.New("tomlutil: nil destination pointer")
)

func checkSize(data []byte) error {
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	return nil
}

// positioned prefixes a go-toml error with the line and column it points at.
func positioned(err error) string {
	var de *toml.DecodeError
	if errors.As(err, &de) {
		row, col := de.Position()
		return fmt.Sprintf("line %d, column %d: %v", row, col, de)
	}
	return err.Error()
}

// Decode parses TOML text into a generic table. Values keep the types
// go-toml assigns them: string, int64, float64, bool, []any, map[string]any,
// time.Time (offset datetimes) and toml.LocalDate/LocalDateTime/LocalTime.
//
// Syntax errors wrap ErrSyntax and carry the line and column of the problem.
func Decode(data []byte) (map[string]any, error) {
	if err := checkSize(data); err != nil {
		return nil, err
	}

	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, positioned(err))
	}
	return doc, nil
}

// Unmarshal decodes TOML into the struct pointed to by v, using its toml
// struct tags. Fields typed any receive the values Decode would produce,
// so date fields can accept both TOML dates and strings.
//
// A value that does not fit its field fails the whole decode; the error
// carries the line and column of the value.
func Unmarshal(data []byte, v any) error {
	if v == nil {
		return ErrNilDestination
	}
	if err := checkSize(data); err != nil {
		return err
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("tomlutil: %s", positioned(err))
	}
	return nil
}

// LocalToUTC converts a TOML local date, local datetime or offset datetime
// into a time.Time. Local values carry no offset and are interpreted as UTC.
// The boolean is false when v is not a TOML date/time value.
func LocalToUTC(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case toml.LocalDate:
		return time.Date(t.Year, time.Month(t.Month), t.Day, 0, 0, 0, 0, time.UTC), true
	case toml.LocalDateTime:
		return time.Date(t.Year, time.Month(t.Month), t.Day,
			t.Hour, t.Minute, t.Second, t.Nanosecond, time.UTC), true
	}
	return time.Time{}, false
}
