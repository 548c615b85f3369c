package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of calendar days.
const DateLayout = "2006-01-02"

// Date is a calendar day in UTC.  Stays, closed dates and rate overrides are
// all day-granular, so the time of day is always midnight.
type Date struct{ time.Time }

// ErrInvalidDate is returned when a value is neither YYYY-MM-DD nor RFC3339.
var ErrInvalidDate = errors.New("invalid date")

// NewDate truncates t to its UTC calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC day.
func Today() Date { return NewDate(time.Now()) }

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp (the dashboard sends
// both) and returns the UTC day.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return NewDate(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NewDate(t), nil
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// AddDays returns the day n days after d.
func (d Date) AddDays(n int) Date { return Date{d.Time.AddDate(0, 0, n)} }

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }

// String formats the day as YYYY-MM-DD.
func (d Date) String() string { return d.Time.Format(DateLayout) }

// Nights lists every night of the half-open stay [start, end).
func Nights(start, end Date) []Date {
	var out []Date
	for d := start; d.Before(end); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share a night.
func Overlaps(aStart, aEnd, bStart, bEnd Date) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Scan implements sql.Scanner for DATE columns.  With parseTime=true the
// driver hands back time.Time; raw bytes are accepted for safety.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	}
	return fmt.Errorf("cannot scan %T into model.Date", src)
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}
