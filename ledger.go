package cgt

import (
	"fmt"

	"github.com/zacgt/cgt/date"
)

// DisposalEvent is the capital gain or loss realized by a SELL or a TRADE.
type DisposalEvent struct {
	Date         date.Time
	Asset        string   // the asset disposed of
	Quantity     Quantity // the quantity disposed of
	CostBasis    Money    // cost of the consumed lots
	Proceeds     Money
	Kind         Kind
	LotsConsumed []LotConsumption // oldest first
}

// Gain returns proceeds minus cost basis, negative for a loss.
func (e DisposalEvent) Gain() Money { return e.Proceeds.Sub(e.CostBasis) }

// TaxYear returns the tax year the disposal is declared in.
func (e DisposalEvent) TaxYear() date.TaxYear { return e.Date.TaxYear() }

// Description returns a one line summary of the disposal.
func (e DisposalEvent) Description() string {
	label := "Gain"
	if e.Gain().IsNegative() {
		label = "Loss"
	}
	return fmt.Sprintf("%s: Sold %s %s for %s (Cost: %s, %s: %s)",
		e.Date.DayString(), e.Quantity.Decimal().StringFixed(8), e.Asset,
		e.Proceeds, e.CostBasis, label, e.Gain().Abs())
}

// MarshalJSON implements the json.Marshaler interface for DisposalEvent.
func (e DisposalEvent) MarshalJSON() ([]byte, error) {
	lots := e.LotsConsumed
	if lots == nil {
		lots = []LotConsumption{}
	}
	var w jsonObjectWriter
	w.Append("date", e.Date)
	w.Append("disposedAsset", e.Asset)
	w.Append("disposedQuantity", e.Quantity)
	w.Append("costBasis", e.CostBasis)
	w.Append("proceeds", e.Proceeds)
	// Amounts are marshalled rounded, the gain must stay their difference.
	w.Append("gain", e.Proceeds.Round().Sub(e.CostBasis.Round()))
	w.Append("kind", e.Kind)
	w.Append("taxYear", e.TaxYear())
	w.Append("lotsConsumed", lots)
	return w.MarshalJSON()
}

// engine replays a ledger. It is built for a single Compute call and never
// shared.
type engine struct {
	inventories []*inventory // in order of first appearance
	byAsset     map[string]*inventory
	events      []DisposalEvent
}

func newEngine() *engine {
	return &engine{byAsset: make(map[string]*inventory)}
}

// Compute replays transactions, which must be sorted by date, and returns
// balances, disposals, tax year summaries and 1 March snapshots.
//
// Each call starts from empty inventories, so Compute is safe for concurrent
// use and returns identical results for identical input.
func Compute(transactions []Transaction) (*Result, error) {
	e := newEngine()
	for _, tx := range transactions {
		if err := e.apply(tx); err != nil {
			return nil, fmt.Errorf("on %s, %s %s: %w", tx.Date, tx.Kind, tx.SellAsset, err)
		}
	}

	return &Result{
		Balances:              e.balances(),
		DisposalEvents:        e.events,
		TaxYearSummaries:      summarize(e.events),
		YearBoundarySnapshots: e.snapshots(transactions),
	}, nil
}

// inventory returns the inventory for asset, creating it if needed.
func (e *engine) inventory(asset string) *inventory {
	inv, ok := e.byAsset[asset]
	if !ok {
		inv = newInventory(asset)
		e.byAsset[asset] = inv
		e.inventories = append(e.inventories, inv)
	}
	return inv
}

func (e *engine) apply(tx Transaction) error {
	switch tx.Kind {
	case Buy, Sell, Trade:
	default:
		return fmt.Errorf("%w: %v", ErrInvalidKind, tx.Kind)
	}
	if tx.Kind.IsDisposal() {
		// TotalValue is the rand received on a SELL, not BuyQuantity * UnitPrice.
		if err := e.dispose(tx, tx.TotalValue()); err != nil {
			return err
		}
	}
	if tx.Kind != Sell {
		// A received asset starts a new lot at its value on the day.
		e.inventory(tx.BuyAsset).add(tx.BuyQuantity, tx.UnitPrice, tx.Date)
	}
	return nil
}

// dispose consumes the sold quantity and records the disposal event.
func (e *engine) dispose(tx Transaction, proceeds Money) error {
	consumed, err := e.inventory(tx.SellAsset).removeFIFO(tx.SellQuantity)
	if err != nil {
		return err
	}
	cost := R(0)
	for _, c := range consumed {
		cost = cost.Add(c.CostBasis())
	}
	e.events = append(e.events, DisposalEvent{
		Date:         tx.Date,
		Asset:        tx.SellAsset,
		Quantity:     tx.SellQuantity,
		CostBasis:    cost,
		Proceeds:     proceeds,
		Kind:         tx.Kind,
		LotsConsumed: consumed,
	})
	return nil
}

func (e *engine) balances() Balances {
	balances := Balances{}
	for _, inv := range e.inventories {
		if inv.isEmpty() {
			continue
		}
		balances = append(balances, Balance{
			Asset:          inv.asset,
			TotalQuantity:  inv.total(),
			TotalCostBasis: inv.costBasis(),
			Lots:           inv.snapshot(),
		})
	}
	return balances
}
