package datetime

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	layoutDayFirst   = "02/01/2006"
	layoutMonthFirst = "01/02/2006"
	layoutClock12    = "3:04 PM"
	layoutClock24    = "15:04"
)

// ErrRangeInverted is returned when an end time precedes its start time.
var ErrRangeInverted = errors.New("datetime: end time precedes start time")

// ParseError reports a value that does not satisfy the mask or the layout.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "datetime: invalid value"
	}
	if e.Err == nil {
		return fmt.Sprintf("datetime: invalid value %q", e.Value)
	}
	return fmt.Sprintf("datetime: invalid value %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Option configures Parse and Format.
type Option func(*config)

type config struct {
	monthFirst bool
	location   *time.Location
}

// WithMonthFirst reads the first date group as the month (MM/DD/YYYY).
func WithMonthFirst() Option {
	return func(cfg *config) {
		cfg.monthFirst = true
	}
}

// WithLocation interprets parsed values in loc instead of UTC.
func WithLocation(loc *time.Location) Option {
	return func(cfg *config) {
		if loc != nil {
			cfg.location = loc
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{location: time.UTC}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

func (c config) dateLayout() string {
	if c.monthFirst {
		return layoutMonthFirst
	}
	return layoutDayFirst
}

// Parse converts a masked value into a time. Unformatted input is run through
// the preset first, so "01122023130P" and "01/12/2023 1:30 PM" are
// equivalent. A trailing A or P is read as AM or PM; without a meridiem the
// hour is on a 24 hour clock.
func Parse(value string, opts ...Option) (time.Time, error) {
	cfg := newConfig(opts)

	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return time.Time{}, &ParseError{Value: value, Err: errors.New("value is empty")}
	}

	res := Mask().Apply(trimmed)
	if len(res.Rejected) > 0 {
		first := res.Rejected[0]
		return time.Time{}, &ParseError{
			Value: value,
			Err:   fmt.Errorf("unexpected %q at position %d", first.Char, first.Position),
		}
	}
	if !res.Complete {
		return time.Time{}, &ParseError{Value: value, Err: errors.New("value is incomplete")}
	}

	formatted := strings.TrimSpace(res.Value)
	layout := cfg.dateLayout() + " " + layoutClock24
	switch {
	case strings.HasSuffix(formatted, " AM"), strings.HasSuffix(formatted, " PM"):
		layout = cfg.dateLayout() + " " + layoutClock12
	case strings.HasSuffix(formatted, " A"), strings.HasSuffix(formatted, " P"):
		formatted += "M"
		layout = cfg.dateLayout() + " " + layoutClock12
	}

	parsed, err := time.ParseInLocation(layout, formatted, cfg.location)
	if err != nil {
		return time.Time{}, &ParseError{Value: value, Err: err}
	}
	return parsed, nil
}

// Format renders t in the masked 12 hour form, e.g. "01/12/2023 1:30 PM".
func Format(t time.Time, opts ...Option) string {
	cfg := newConfig(opts)
	return t.In(cfg.location).Format(cfg.dateLayout() + " " + layoutClock12)
}

// ValidateRange checks that end does not precede start.
func ValidateRange(start, end time.Time) error {
	if end.Before(start) {
		return ErrRangeInverted
	}
	return nil
}
