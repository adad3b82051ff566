package date

import (
	"fmt"
	"strconv"
	"time"
)

// TaxYear identifies a South African tax year by the calendar year in which it
// ends. Tax year 2025 runs from 1 March 2024 to the end of February 2025.
type TaxYear int

// Boundary returns 1 March of the year at midnight, the instant the tax year
// is closed at.
func (y TaxYear) Boundary() Time { return Day(int(y), time.March, 1) }

// Range returns the first and last day of the tax year.
func (y TaxYear) Range() Range {
	return Range{
		From: Day(int(y)-1, time.March, 1),
		To:   Day(int(y), time.March, 1).AddDays(-1),
	}
}

// Label returns a human readable span like "1 Mar 2024 - 28 Feb 2025".
func (y TaxYear) Label() string {
	r := y.Range()
	return fmt.Sprintf("%s - %s", r.From.t.Format("2 Jan 2006"), r.To.t.Format("2 Jan 2006"))
}

func (y TaxYear) String() string { return strconv.Itoa(int(y)) }

// ParseTaxYear parses a tax year like "2025".
func ParseTaxYear(s string) (TaxYear, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid tax year %q: %w", s, err)
	}
	return TaxYear(n), nil
}

// AddDays returns d shifted by n days.
func (d Time) AddDays(n int) Time { return Time{t: d.t.AddDate(0, 0, n)} }
