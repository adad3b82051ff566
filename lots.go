package cgt

import (
	"github.com/zacgt/cgt/date"
)

// Lot is the part of a purchase of an asset that has not been disposed of yet.
type Lot struct {
	Asset      string
	Quantity   Quantity
	UnitPrice  Money
	AcquiredAt date.Time
}

// CostBasis returns the rand cost of the lot (quantity * unit price).
func (l Lot) CostBasis() Money { return l.UnitPrice.Mul(l.Quantity) }

// IsEmpty reports whether the lot holds only dust.
func (l Lot) IsEmpty() bool { return l.Quantity.IsDust() }

// MarshalJSON implements the json.Marshaler interface for Lot.
func (l Lot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("asset", l.Asset)
	w.Append("quantity", l.Quantity)
	w.Append("unitPrice", l.UnitPrice)
	w.Append("acquiredAt", l.AcquiredAt)
	w.Append("costBasis", l.CostBasis())
	return w.MarshalJSON()
}

// LotConsumption records the part of a lot used by a disposal.
type LotConsumption struct {
	AcquiredAt date.Time
	Quantity   Quantity
	UnitPrice  Money
}

// CostBasis returns the rand cost of the consumed quantity.
func (c LotConsumption) CostBasis() Money { return c.UnitPrice.Mul(c.Quantity) }

// MarshalJSON implements the json.Marshaler interface for LotConsumption.
func (c LotConsumption) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("acquiredAt", c.AcquiredAt)
	w.Append("quantity", c.Quantity)
	w.Append("unitPrice", c.UnitPrice)
	w.Append("costBasis", c.CostBasis())
	return w.MarshalJSON()
}

// inventory is the FIFO queue of lots held for one asset, oldest first.
type inventory struct {
	asset string
	lots  []*Lot
}

func newInventory(asset string) *inventory {
	return &inventory{asset: asset}
}

// add appends a lot at the back of the queue.
func (inv *inventory) add(quantity Quantity, price Money, on date.Time) {
	inv.lots = append(inv.lots, &Lot{Asset: inv.asset, Quantity: quantity, UnitPrice: price, AcquiredAt: on})
}

// total returns the quantity held across all lots.
func (inv *inventory) total() Quantity {
	var q Quantity
	for _, l := range inv.lots {
		q = q.Add(l.Quantity)
	}
	return q
}

// costBasis returns the cost of all lots.
func (inv *inventory) costBasis() Money {
	cost := R(0)
	for _, l := range inv.lots {
		cost = cost.Add(l.CostBasis())
	}
	return cost
}

// isEmpty reports whether the inventory holds only dust.
func (inv *inventory) isEmpty() bool {
	return len(inv.lots) == 0 || inv.total().IsDust()
}

// removeFIFO consumes quantity from the oldest lots first. A lot larger than
// what is left to remove is split in place. Lots left with dust are pruned.
// It returns the consumed parts, oldest first.
func (inv *inventory) removeFIFO(quantity Quantity) ([]LotConsumption, error) {
	if available := inv.total(); quantity.GreaterThan(available) {
		return nil, &InsufficientBalanceError{Asset: inv.asset, Requested: quantity, Available: available}
	}

	var consumed []LotConsumption
	remaining := quantity
	for _, l := range inv.lots {
		if remaining.IsDust() {
			break
		}
		if l.Quantity.LessThanOrEqual(remaining) {
			// Full consumption of this lot
			consumed = append(consumed, LotConsumption{AcquiredAt: l.AcquiredAt, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
			remaining = remaining.Sub(l.Quantity)
			l.Quantity = Q(0)
		} else {
			// Partial consumption of this lot
			consumed = append(consumed, LotConsumption{AcquiredAt: l.AcquiredAt, Quantity: remaining, UnitPrice: l.UnitPrice})
			l.Quantity = l.Quantity.Sub(remaining)
			remaining = Q(0)
		}
	}

	kept := inv.lots[:0]
	for _, l := range inv.lots {
		if !l.IsEmpty() {
			kept = append(kept, l)
		}
	}
	clear(inv.lots[len(kept):])
	inv.lots = kept
	return consumed, nil
}

// asOf returns the quantity and cost of the lots acquired on or before on.
// It reads the current lots and does not replay earlier disposals.
func (inv *inventory) asOf(on date.Time) (Quantity, Money) {
	var q Quantity
	cost := R(0)
	for _, l := range inv.lots {
		if l.AcquiredAt.After(on) {
			continue
		}
		q = q.Add(l.Quantity)
		cost = cost.Add(l.CostBasis())
	}
	return q, cost
}

// snapshot returns a copy of the lots, safe to hand out of the engine.
func (inv *inventory) snapshot() []Lot {
	lots := make([]Lot, len(inv.lots))
	for i, l := range inv.lots {
		lots[i] = *l
	}
	return lots
}
