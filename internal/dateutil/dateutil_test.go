package dateutil

import (
	"errors"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
)

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr error
	}{
		{
			name:  "bare date is midnight UTC",
			value: "2015-11-18",
			want:  time.Date(2015, 11, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "Z offset",
			value: "2015-11-23T15:00:00Z",
			want:  time.Date(2015, 11, 23, 15, 0, 0, 0, time.UTC),
		},
		{
			name:  "negative offset converts to UTC",
			value: "2015-11-23T10:00:00-05:00",
			want:  time.Date(2015, 11, 23, 15, 0, 0, 0, time.UTC),
		},
		{
			name:  "naive datetime assumed UTC",
			value: "2015-11-23T15:00:00",
			want:  time.Date(2015, 11, 23, 15, 0, 0, 0, time.UTC),
		},
		{
			name:  "space separator",
			value: "2015-11-23 15:00:00",
			want:  time.Date(2015, 11, 23, 15, 0, 0, 0, time.UTC),
		},
		{
			name:  "fractional seconds",
			value: "2015-11-23T15:00:00.5Z",
			want:  time.Date(2015, 11, 23, 15, 0, 0, 500_000_000, time.UTC),
		},
		{
			name:  "surrounding whitespace trimmed",
			value: "  2015-11-18 ",
			want:  time.Date(2015, 11, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "empty",
			value:   "",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "not a date",
			value:   "next tuesday",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "impossible month",
			value:   "2015-13-01",
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTimestamp(tt.value)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseTimestamp(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) unexpected error: %v", tt.value, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.value, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseTimestamp(%q) location = %v, want UTC", tt.value, got.Location())
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	want := time.Date(2015, 11, 18, 0, 0, 0, 0, time.UTC)

	for _, v := range []any{
		"2015-11-18",
		toml.LocalDate{Year: 2015, Month: 11, Day: 18},
		time.Date(2015, 11, 17, 19, 0, 0, 0, time.FixedZone("EST", -5*60*60)),
	} {
		got, err := Normalize(v)
		if err != nil {
			t.Errorf("Normalize(%#v) unexpected error: %v", v, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("Normalize(%#v) = %v, want %v", v, got, want)
		}
	}

	if _, err := Normalize(int64(2015)); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Normalize(int64) error = %v, want ErrInvalidDate", err)
	}
}

func TestFormatISO(t *testing.T) {
	t.Parallel()

	ts := time.Date(2015, 11, 23, 10, 0, 0, 0, time.FixedZone("EST", -5*60*60))

	if got := FormatISODate(ts); got != "2015-11-23" {
		t.Errorf("FormatISODate = %q", got)
	}
	if got := FormatISODatetime(ts); got != "2015-11-23T15:00:00Z" {
		t.Errorf("FormatISODatetime = %q", got)
	}

	// Late evening west of UTC lands on the next day.
	late := time.Date(2015, 11, 23, 22, 0, 0, 0, time.FixedZone("EST", -5*60*60))
	if got := FormatISODate(late); got != "2015-11-24" {
		t.Errorf("FormatISODate(late) = %q, want 2015-11-24", got)
	}
}
