package cgt

import (
	"slices"

	"github.com/zacgt/cgt/date"
)

// AssetHolding is the quantity and cost of one asset at a boundary.
type AssetHolding struct {
	Asset     string
	Quantity  Quantity
	CostBasis Money
}

// MarshalJSON implements the json.Marshaler interface for AssetHolding.
func (h AssetHolding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("asset", h.Asset)
	w.Append("quantity", h.Quantity)
	w.Append("costBasis", h.CostBasis)
	return w.MarshalJSON()
}

// YearBoundarySnapshot values the holdings on 1 March closing a tax year.
type YearBoundarySnapshot struct {
	TaxYear      date.TaxYear
	BoundaryDate date.Time
	Assets       []AssetHolding
}

// TotalCostBasis returns the base cost of all the assets of the snapshot.
func (s YearBoundarySnapshot) TotalCostBasis() Money {
	total := R(0)
	for _, a := range s.Assets {
		total = total.Add(a.CostBasis)
	}
	return total
}

// MarshalJSON implements the json.Marshaler interface for YearBoundarySnapshot.
func (s YearBoundarySnapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("taxYear", s.TaxYear)
	w.Append("boundaryDate", s.BoundaryDate)
	w.Append("assets", s.Assets)
	return w.MarshalJSON()
}

// snapshots computes a boundary for every tax year any transaction falls in.
//
// Holdings are the lots left at the end of the replay that were acquired on
// or before the boundary. Lots are not replayed up to the boundary: a lot
// consumed after the boundary is reported with what is left of it.
func (e *engine) snapshots(transactions []Transaction) []YearBoundarySnapshot {
	var years []date.TaxYear
	for _, tx := range transactions {
		if y := tx.Date.TaxYear(); !slices.Contains(years, y) {
			years = append(years, y)
		}
	}
	slices.Sort(years)

	snapshots := []YearBoundarySnapshot{}
	for _, y := range years {
		boundary := y.Boundary()
		s := YearBoundarySnapshot{TaxYear: y, BoundaryDate: boundary}
		for _, inv := range e.inventories {
			q, cost := inv.asOf(boundary)
			if !q.IsPositive() {
				continue
			}
			s.Assets = append(s.Assets, AssetHolding{Asset: inv.asset, Quantity: q, CostBasis: cost})
		}
		if len(s.Assets) > 0 {
			snapshots = append(snapshots, s)
		}
	}
	return snapshots
}
