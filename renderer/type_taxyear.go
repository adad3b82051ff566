package renderer

import (
	"github.com/zacgt/cgt"
)

// taxYearView is the data of the tax year templates, every amount already
// formatted.
type taxYearView struct {
	Year           int
	Label          string
	BoundaryDate   string
	TotalGain      string
	TotalLoss      string
	NetGain        string
	Assets         []assetGainsView
	BaseCosts      []holdingView
	BaseCostsTotal string
	Disposals      []disposalView
}

type assetGainsView struct {
	Asset, Gain, Loss, Net string
}

type holdingView struct {
	Asset, Quantity, CostBasis string
}

type disposalView struct {
	Date, Kind, Asset, Quantity string
	Proceeds, CostBasis         string
	GainLabel, Gain             string
	Lots                        []lotView
}

type lotView struct {
	AcquiredAt, Quantity, UnitPrice, CostBasis string
}

func newTaxYearView(report *cgt.TaxYearReport) taxYearView {
	y := report.TaxYear
	v := taxYearView{
		Year:         int(y),
		Label:        y.Label(),
		BoundaryDate: y.Boundary().DayString(),
		TotalGain:    report.Summary.TotalGain.String(),
		TotalLoss:    report.Summary.TotalLoss.String(),
		NetGain:      report.Summary.NetGain.SignedString(),
	}
	for _, a := range report.Summary.ByAsset {
		v.Assets = append(v.Assets, assetGainsView{
			Asset: a.Asset,
			Gain:  a.TotalGain.String(),
			Loss:  a.TotalLoss.String(),
			Net:   a.NetGain.SignedString(),
		})
	}
	if s := report.BaseCosts; s != nil {
		for _, h := range s.Assets {
			v.BaseCosts = append(v.BaseCosts, holdingView{Asset: h.Asset, Quantity: h.Quantity.String(), CostBasis: h.CostBasis.String()})
		}
		v.BaseCostsTotal = s.TotalCostBasis().String()
	}
	for _, e := range report.Events {
		d := disposalView{
			Date:      e.Date.DayString(),
			Kind:      e.Kind.String(),
			Asset:     e.Asset,
			Quantity:  e.Quantity.String(),
			Proceeds:  e.Proceeds.String(),
			CostBasis: e.CostBasis.String(),
			GainLabel: "gain",
			Gain:      e.Gain().String(),
		}
		if e.Gain().IsNegative() {
			d.GainLabel, d.Gain = "loss", e.Gain().Abs().String()
		}
		for _, l := range e.LotsConsumed {
			d.Lots = append(d.Lots, lotView{
				AcquiredAt: l.AcquiredAt.DayString(),
				Quantity:   l.Quantity.String(),
				UnitPrice:  l.UnitPrice.String(),
				CostBasis:  l.CostBasis().String(),
			})
		}
		v.Disposals = append(v.Disposals, d)
	}
	return v
}
