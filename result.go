package cgt

import (
	"fmt"

	"github.com/zacgt/cgt/date"
)

// Balance is the holding of one asset at the end of the ledger.
type Balance struct {
	Asset          string
	TotalQuantity  Quantity
	TotalCostBasis Money
	Lots           []Lot // oldest first
}

// MarshalJSON implements the json.Marshaler interface for Balance.
func (b Balance) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("totalQuantity", b.TotalQuantity)
	w.Append("totalCostBasis", b.TotalCostBasis)
	w.Append("lots", b.Lots)
	return w.MarshalJSON()
}

// Balances lists the non empty holdings, in order of first appearance of
// the asset in the ledger. It marshals as an object keyed by asset.
type Balances []Balance

// Get returns the balance of asset.
func (bs Balances) Get(asset string) (Balance, bool) {
	for _, b := range bs {
		if b.Asset == asset {
			return b, true
		}
	}
	return Balance{}, false
}

// Assets returns the held asset symbols.
func (bs Balances) Assets() []string {
	assets := make([]string, len(bs))
	for i, b := range bs {
		assets[i] = b.Asset
	}
	return assets
}

// MarshalJSON implements the json.Marshaler interface for Balances.
func (bs Balances) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, b := range bs {
		w.Append(b.Asset, b)
	}
	return w.MarshalJSON()
}

// Result is the outcome of replaying a ledger.
type Result struct {
	Balances              Balances
	DisposalEvents        []DisposalEvent
	TaxYearSummaries      []TaxYearSummary
	YearBoundarySnapshots []YearBoundarySnapshot
}

// MarshalJSON implements the json.Marshaler interface for Result.
func (r *Result) MarshalJSON() ([]byte, error) {
	events := r.DisposalEvents
	if events == nil {
		events = []DisposalEvent{}
	}
	var w jsonObjectWriter
	w.Append("balances", r.Balances)
	w.Append("disposalEvents", events)
	w.Append("taxYearSummaries", r.TaxYearSummaries)
	w.Append("yearBoundarySnapshots", r.YearBoundarySnapshots)
	return w.MarshalJSON()
}

// TaxYears returns the tax years that have a summary.
func (r *Result) TaxYears() []date.TaxYear {
	years := make([]date.TaxYear, len(r.TaxYearSummaries))
	for i, s := range r.TaxYearSummaries {
		years[i] = s.TaxYear
	}
	return years
}

// Summary returns the summary of tax year y.
func (r *Result) Summary(y date.TaxYear) (TaxYearSummary, bool) {
	for _, s := range r.TaxYearSummaries {
		if s.TaxYear == y {
			return s, true
		}
	}
	return TaxYearSummary{}, false
}

// Snapshot returns the 1 March snapshot closing tax year y.
func (r *Result) Snapshot(y date.TaxYear) (YearBoundarySnapshot, bool) {
	for _, s := range r.YearBoundarySnapshots {
		if s.TaxYear == y {
			return s, true
		}
	}
	return YearBoundarySnapshot{}, false
}

// Metadata describes the size and coverage of a result.
type Metadata struct {
	TransactionCount   int            `json:"transactionCount"`
	DisposalEventCount int            `json:"disposalEventCount"`
	AssetsTracked      []string       `json:"assetsTracked"`
	TaxYearsCovered    []date.TaxYear `json:"taxYearsCovered"`
}

// Metadata returns the metadata of the result computed from n transactions.
func (r *Result) Metadata(n int) Metadata {
	return Metadata{
		TransactionCount:   n,
		DisposalEventCount: len(r.DisposalEvents),
		AssetsTracked:      r.Balances.Assets(),
		TaxYearsCovered:    r.TaxYears(),
	}
}

// TaxYearReport is the part of a result relevant to one tax year.
type TaxYearReport struct {
	TaxYear    date.TaxYear          `json:"taxYear"`
	Summary    TaxYearSummary        `json:"summary"`
	BaseCosts  *YearBoundarySnapshot `json:"baseCosts"`
	Events     []DisposalEvent       `json:"events"`
	EventCount int                   `json:"eventCount"`
}

// ForTaxYear returns the summary, boundary snapshot and disposals of tax year
// y. It fails with ErrUnknownTaxYear when y has no disposal.
func (r *Result) ForTaxYear(y date.TaxYear) (*TaxYearReport, error) {
	summary, ok := r.Summary(y)
	if !ok {
		return nil, fmt.Errorf("%w %d, available tax years are %v", ErrUnknownTaxYear, y, r.TaxYears())
	}
	report := &TaxYearReport{TaxYear: y, Summary: summary, Events: []DisposalEvent{}}
	if s, ok := r.Snapshot(y); ok {
		report.BaseCosts = &s
	}
	for _, e := range r.DisposalEvents {
		if e.TaxYear() == y {
			report.Events = append(report.Events, e)
		}
	}
	report.EventCount = len(report.Events)
	return report, nil
}
