package cgt

import (
	"github.com/zacgt/cgt/date"
)

// Gains accumulates the disposals of a tax year, or of one asset in a tax year.
type Gains struct {
	TotalGain Money // sum of the positive gains
	TotalLoss Money // sum of the absolute value of the negative gains
	NetGain   Money // signed sum of all the gains
}

func newGains() Gains { return Gains{TotalGain: R(0), TotalLoss: R(0), NetGain: R(0)} }

// add accounts for one disposal gain.
func (g *Gains) add(gain Money) {
	switch {
	case gain.IsPositive():
		g.TotalGain = g.TotalGain.Add(gain)
	case gain.IsNegative():
		g.TotalLoss = g.TotalLoss.Add(gain.Abs())
	}
	g.NetGain = g.NetGain.Add(gain)
}

// AssetGains is the per asset breakdown of a tax year summary.
type AssetGains struct {
	Asset string
	Gains
}

// MarshalJSON implements the json.Marshaler interface for AssetGains.
func (a AssetGains) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("asset", a.Asset)
	w.Append("totalGain", a.TotalGain)
	w.Append("totalLoss", a.TotalLoss)
	w.Append("netGain", a.NetGain)
	return w.MarshalJSON()
}

// TaxYearSummary aggregates the disposals declared in one tax year.
type TaxYearSummary struct {
	TaxYear date.TaxYear
	Gains
	ByAsset []AssetGains // in order of first disposal
}

// Asset returns the breakdown for asset.
func (s TaxYearSummary) Asset(asset string) (AssetGains, bool) {
	for _, a := range s.ByAsset {
		if a.Asset == asset {
			return a, true
		}
	}
	return AssetGains{}, false
}

// MarshalJSON implements the json.Marshaler interface for TaxYearSummary.
func (s TaxYearSummary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("taxYear", s.TaxYear)
	w.Append("totalGain", s.TotalGain)
	w.Append("totalLoss", s.TotalLoss)
	w.Append("netGain", s.NetGain)
	w.Append("byAsset", s.ByAsset)
	return w.MarshalJSON()
}

// summarize groups disposal events by tax year, then by asset. Years appear in
// the order of their first disposal, which is chronological for a replayed
// ledger. Years without disposals have no summary.
func summarize(events []DisposalEvent) []TaxYearSummary {
	summaries := []TaxYearSummary{}
	yearIndex := make(map[date.TaxYear]int)
	for _, e := range events {
		i, ok := yearIndex[e.TaxYear()]
		if !ok {
			i = len(summaries)
			yearIndex[e.TaxYear()] = i
			summaries = append(summaries, TaxYearSummary{TaxYear: e.TaxYear(), Gains: newGains(), ByAsset: []AssetGains{}})
		}
		s := &summaries[i]

		j := -1
		for k, a := range s.ByAsset {
			if a.Asset == e.Asset {
				j = k
				break
			}
		}
		if j < 0 {
			j = len(s.ByAsset)
			s.ByAsset = append(s.ByAsset, AssetGains{Asset: e.Asset, Gains: newGains()})
		}

		gain := e.Gain()
		s.add(gain)
		s.ByAsset[j].add(gain)
	}
	return summaries
}
