package datetime

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		value string
		opts  []Option
		want  time.Time
	}{
		{
			name:  "formatted with meridiem",
			value: "01/12/2023 1:30 PM",
			want:  time.Date(2023, time.December, 1, 13, 30, 0, 0, time.UTC),
		},
		{
			name:  "single meridiem letter",
			value: "01/12/2023 1:30 P",
			want:  time.Date(2023, time.December, 1, 13, 30, 0, 0, time.UTC),
		},
		{
			name:  "raw keystrokes",
			value: "01122023130P",
			want:  time.Date(2023, time.December, 1, 13, 30, 0, 0, time.UTC),
		},
		{
			name:  "24 hour without meridiem",
			value: "01/12/2023 18:05",
			want:  time.Date(2023, time.December, 1, 18, 5, 0, 0, time.UTC),
		},
		{
			name:  "midnight",
			value: "01/12/2023 12:00 AM",
			want:  time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "month first",
			value: "10/31/2020 01:30 PM",
			opts:  []Option{WithMonthFirst()},
			want:  time.Date(2020, time.October, 31, 13, 30, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tc.value, tc.opts...)
			if err != nil {
				t.Fatalf("parse %q: %v", tc.value, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("parse %q: want %s, got %s", tc.value, tc.want, got)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, value := range []string{
		"",
		"01/12/2023",
		"01/1x/2023 1:30",
		"32/12/2023 1:30 PM",
		"01/12/2023 13:30 PM",
	} {
		_, err := Parse(value)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected ParseError for %q, got %v", value, err)
		}
	}
}

func TestParse_Location(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	got, err := Parse("01/12/2023 9:00 AM", WithLocation(loc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Location() != loc || got.Hour() != 9 {
		t.Fatalf("expected 09:00 in %s, got %s", loc, got)
	}
}

func TestFormat_RoundTripsThroughMask(t *testing.T) {
	ts := time.Date(2020, time.October, 10, 13, 30, 0, 0, time.UTC)
	formatted := Format(ts)
	if formatted != "10/10/2020 1:30 PM" {
		t.Fatalf("unexpected format %q", formatted)
	}
	if !Mask().Valid(formatted) {
		t.Fatalf("formatted value %q should satisfy the mask", formatted)
	}
}

func TestValidateRange(t *testing.T) {
	start := time.Date(2023, time.December, 1, 9, 0, 0, 0, time.UTC)

	if err := ValidateRange(start, start); err != nil {
		t.Fatalf("equal times should be accepted: %v", err)
	}
	if err := ValidateRange(start, start.Add(time.Hour)); err != nil {
		t.Fatalf("later end should be accepted: %v", err)
	}
	if err := ValidateRange(start, start.Add(-time.Minute)); !errors.Is(err, ErrRangeInverted) {
		t.Fatalf("expected ErrRangeInverted, got %v", err)
	}
}
