// Package types implements special types for the itinerary budget backend.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// dateLayout is the RFC 3339 full-date format used for all Date representations.
const dateLayout = "2006-01-02"

// Date is a calendar date without a time of day.
type Date time.Time

// NewDate returns a new Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the Date on which a time occurs in that time's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// Today returns the current date in UTC.
func Today() Date {
	return DateOf(time.Now().In(time.UTC))
}

// ParseDate parses a "YYYY-MM-DD" string and returns the Date value it represents.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format(dateLayout)
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
//
// Both "2006-01-02" and full RFC 3339 timestamps are accepted, everything
// except the calendar date is then ignored.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	return d.UnmarshalParam(value)
}

// UnmarshalParam parses query string and URI parameters for gin bindings.
func (d *Date) UnmarshalParam(p string) error {
	if p == "" {
		*d = Date{}
		return nil
	}

	pattern := time.RFC3339
	if len(p) == len(dateLayout) {
		pattern = dateLayout
	}

	t, err := time.Parse(pattern, p)
	if err != nil {
		return err
	}

	*d = DateOf(t)
	return nil
}

// Scan writes the value from the database.
func (d *Date) Scan(value interface{}) (err error) {
	// Some drivers return dates as text
	switch v := value.(type) {
	case []byte:
		return d.scanText(string(v))
	case string:
		return d.scanText(v)
	}

	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	if !nullTime.Valid {
		*d = Date{}
		return err
	}

	*d = DateOf(nullTime.Time)
	return err
}

var textLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	dateLayout,
}

func (d *Date) scanText(s string) error {
	// UTC timestamps may carry a Z suffix
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")

	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = DateOf(t)
			return nil
		}
	}

	return fmt.Errorf("cannot parse '%s' as a date", s)
}

// Value returns the value for the SQL driver to write to the database.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}

	return time.Time(d), nil
}

// GormDataType defines the data type used by gorm the type.
func (Date) GormDataType() string {
	return "date"
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return Date(time.Time(d).AddDate(0, 0, n))
}

// DaysSince returns the number of calendar days from start to d.
func (d Date) DaysSince(start Date) int {
	return int(time.Time(d).Sub(time.Time(start)).Hours() / 24)
}

// Before reports whether the date d is before e.
func (d Date) Before(e Date) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether the date d is after e.
func (d Date) After(e Date) bool {
	return time.Time(d).After(time.Time(e))
}

// Equal reports whether d and e represent the same date.
func (d Date) Equal(e Date) bool {
	return time.Time(d).Equal(time.Time(e))
}
