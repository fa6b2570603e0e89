package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Wire layouts used by the snapshot document.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02T15:04:05"
)

// Date is a calendar date without a time of day (YYYY-MM-DD on the wire).
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// DatePtr is a convenience for optional date fields.
func DatePtr(d Date) *Date {
	return &d
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// MarshalJSON overrides the embedded time.Time encoding.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON overrides the embedded time.Time decoding.
func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler. A full timestamp is
// accepted and truncated to its date.
func (d *Date) UnmarshalText(text []byte) error {
	s := string(text)
	if len(s) > len(DateLayout) {
		ts, err := parseTimestamp(s)
		if err != nil {
			return err
		}
		*d = NewDate(ts)
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Timestamp is a local date and time (YYYY-MM-DDTHH:MM:SS on the wire).
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to whole seconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.Truncate(time.Second)}
}

// TimestampPtr is a convenience for optional timestamp fields.
func TimestampPtr(ts Timestamp) *Timestamp {
	return &ts
}

func (ts Timestamp) String() string {
	return ts.Format(TimestampLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (ts Timestamp) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

// MarshalJSON overrides the embedded time.Time encoding.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.String() + `"`), nil
}

// UnmarshalJSON overrides the embedded time.Time decoding.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return err
	}
	return ts.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ts *Timestamp) UnmarshalText(text []byte) error {
	parsed, err := parseTimestamp(string(text))
	if err != nil {
		return err
	}
	*ts = Timestamp{parsed}
	return nil
}

// parseTimestamp accepts the wire layout, RFC 3339 and fractional seconds.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimestampLayout, "2006-01-02T15:04:05.999999999", time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func unquote(data []byte) (string, error) {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return "", fmt.Errorf("expected a quoted date, got %s", data)
	}
	return s, nil
}
