// Package date provides the timestamp and South African tax-year types used
// by the ledger.
package date

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Layout is the format used to write timestamps.
const Layout = "2006-01-02 15:04:05"

// DayLayout is the format used to write the day part of a timestamp.
const DayLayout = "2006-01-02"

// readLayouts are tried in order when parsing, the first match wins.
var readLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// readFormats names readLayouts for users.
const readFormats = "YYYY-MM-DD HH:MM:SS, YYYY-MM-DD, DD/MM/YYYY HH:MM:SS or DD/MM/YYYY"

// Time is a point in time with second granularity. All values are in UTC so
// that two Time for the same wall clock are comparable with ==.
type Time struct {
	t time.Time
}

// New returns a normalized Time for the given wall clock.
func New(year int, month time.Month, day, hour, min, sec int) Time {
	return Time{t: time.Date(year, month, day, hour, min, sec, 0, time.UTC)}
}

// Day returns a Time at midnight of the given day.
func Day(year int, month time.Month, day int) Time {
	return New(year, month, day, 0, 0, 0)
}

// Parse parses a timestamp using, in order, "YYYY-MM-DD HH:MM:SS",
// "YYYY-MM-DD", "DD/MM/YYYY HH:MM:SS" and "DD/MM/YYYY".
func Parse(str string) (Time, error) {
	str = strings.TrimSpace(str)
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return Time{t: t}, nil
		}
	}
	return Time{}, fmt.Errorf("invalid date %q, want %s", str, readFormats)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Time {
	t, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// Time returns the underlying time.Time.
func (d Time) Time() time.Time { return d.t }

// Year returns the calendar year.
func (d Time) Year() int { return d.t.Year() }

// Month returns the calendar month.
func (d Time) Month() time.Month { return d.t.Month() }

// IsZero reports whether d is the zero Time.
func (d Time) IsZero() bool { return d.t.IsZero() }

// Before reports whether d is before x.
func (d Time) Before(x Time) bool { return d.t.Before(x.t) }

// After reports whether d is after x.
func (d Time) After(x Time) bool { return d.t.After(x.t) }

// Equal reports whether d and x are the same instant.
func (d Time) Equal(x Time) bool { return d.t.Equal(x.t) }

// Compare returns -1, 0 or +1 like time.Time.Compare.
func (d Time) Compare(x Time) int { return d.t.Compare(x.t) }

// TaxYear returns the South African tax year d falls in. A tax year is named
// after the calendar year in which it ends, on the last day of February.
func (d Time) TaxYear() TaxYear {
	if d.t.Month() <= time.February {
		return TaxYear(d.t.Year())
	}
	return TaxYear(d.t.Year() + 1)
}

// String formats d as "YYYY-MM-DD HH:MM:SS".
func (d Time) String() string { return d.t.Format(Layout) }

// DayString formats d as "YYYY-MM-DD".
func (d Time) DayString() string { return d.t.Format(DayLayout) }

// MarshalJSON writes d as a "YYYY-MM-DD HH:MM:SS" string.
func (d Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts any of the formats supported by Parse.
func (d *Time) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	t, err := Parse(str)
	if err != nil {
		return err
	}
	*d = t
	return nil
}

var _ json.Marshaler = Time{}
var _ json.Unmarshaler = (*Time)(nil)
