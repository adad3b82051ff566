package cgt

import (
	"fmt"
	"strings"

	"github.com/zacgt/cgt/date"
)

// Transaction is one line of the ledger: SellQuantity of SellAsset was given
// up for BuyQuantity of BuyAsset. UnitPrice is the rand price of one unit of
// the received asset at the time of the transaction.
type Transaction struct {
	Date         date.Time
	Kind         Kind
	SellAsset    string
	SellQuantity Quantity
	BuyAsset     string
	BuyQuantity  Quantity
	UnitPrice    Money
}

// NewBuy returns a BUY of quantity asset for spent rand at price per unit.
func NewBuy(on date.Time, spent Money, asset string, quantity Quantity, price Money) Transaction {
	return Transaction{Date: on, Kind: Buy, SellAsset: ZAR, SellQuantity: Quantity{spent.value}, BuyAsset: strings.ToUpper(asset), BuyQuantity: quantity, UnitPrice: price.exact()}
}

// NewSell returns a SELL of quantity asset for received rand.
func NewSell(on date.Time, asset string, quantity Quantity, received Money, price Money) Transaction {
	return Transaction{Date: on, Kind: Sell, SellAsset: strings.ToUpper(asset), SellQuantity: quantity, BuyAsset: ZAR, BuyQuantity: Quantity{received.value}, UnitPrice: price.exact()}
}

// NewTrade returns a TRADE of sold for bought, price being the rand value of
// one unit of the bought asset.
func NewTrade(on date.Time, sellAsset string, sold Quantity, buyAsset string, bought Quantity, price Money) Transaction {
	return Transaction{Date: on, Kind: Trade, SellAsset: strings.ToUpper(sellAsset), SellQuantity: sold, BuyAsset: strings.ToUpper(buyAsset), BuyQuantity: bought, UnitPrice: price.exact()}
}

// TotalValue returns the rand value of the transaction: the rand spent on a
// BUY, the rand received on a SELL, and the value of the received asset on a
// TRADE.
func (t Transaction) TotalValue() Money {
	switch t.Kind {
	case Buy:
		return R(t.SellQuantity.value)
	case Sell:
		return R(t.BuyQuantity.value)
	case Trade:
		return t.UnitPrice.Mul(t.BuyQuantity)
	default:
		return R(0)
	}
}

// Validate checks the asset placement rules of the transaction kind.
func (t Transaction) Validate() error {
	if t.SellAsset == "" || t.BuyAsset == "" {
		return fmt.Errorf("%w: sell asset and buy asset cannot be empty", ErrInvalidAsset)
	}
	if t.SellQuantity.IsNegative() || t.BuyQuantity.IsNegative() {
		return fmt.Errorf("%w: quantities cannot be negative", ErrInvalidAmount)
	}
	switch t.Kind {
	case Buy:
		if t.SellAsset != ZAR {
			return fmt.Errorf("%w: BUY transactions must sell ZAR, got %s", ErrInvalidAsset, t.SellAsset)
		}
	case Sell:
		if t.BuyAsset != ZAR {
			return fmt.Errorf("%w: SELL transactions must buy ZAR, got %s", ErrInvalidAsset, t.BuyAsset)
		}
	case Trade:
		if t.SellAsset == ZAR || t.BuyAsset == ZAR {
			return fmt.Errorf("%w: TRADE transactions cannot involve ZAR", ErrInvalidAsset)
		}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidKind, t.Kind)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", t.Date)
	w.Append("type", t.Kind)
	w.Append("sellAsset", t.SellAsset)
	w.Append("sellQuantity", t.SellQuantity)
	w.Append("buyAsset", t.BuyAsset)
	w.Append("buyQuantity", t.BuyQuantity)
	w.Append("unitPrice", t.UnitPrice)
	w.Append("totalValue", t.TotalValue())
	return w.MarshalJSON()
}

// IndexedTransaction is a transaction numbered in a listing.
type IndexedTransaction struct {
	Index int
	Transaction
}

// IndexTransactions numbers transactions from 1, in their order.
func IndexTransactions(transactions []Transaction) []IndexedTransaction {
	rows := make([]IndexedTransaction, len(transactions))
	for i, tx := range transactions {
		rows[i] = IndexedTransaction{Index: i + 1, Transaction: tx}
	}
	return rows
}

// MarshalJSON implements the json.Marshaler interface for IndexedTransaction.
// The index comes first, followed by the transaction fields.
func (t IndexedTransaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("index", t.Index)
	w.EmbedFrom(t.Transaction)
	return w.MarshalJSON()
}
