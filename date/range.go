package date

import "encoding/json"

// Range represents a range of timestamps, boundaries included.
type Range struct{ From, To Time }

// Contains return true if d is included in the range (boundaries included).
func (r Range) Contains(d Time) bool { return !d.Before(r.From) && !d.After(r.To) }

// IsZero reports whether the range was never set.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Extend returns the smallest range containing r and d. A zero range extended
// by d is the single instant d.
func (r Range) Extend(d Time) Range {
	if r.IsZero() {
		return Range{From: d, To: d}
	}
	if d.Before(r.From) {
		r.From = d
	}
	if d.After(r.To) {
		r.To = d
	}
	return r
}

// MarshalJSON writes the range as {"earliest": ..., "latest": ...}.
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Earliest Time `json:"earliest"`
		Latest   Time `json:"latest"`
	}{r.From, r.To})
}
