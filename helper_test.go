package cgt

import (
	"github.com/shopspring/decimal"
	"github.com/zacgt/cgt/date"
)

// on is a helper for test to create timestamps from const.
func on(s string) date.Time { return date.MustParse(s) }

// qty is a helper for test to create exact quantities from const.
func qty(s string) Quantity { return Q(decimal.RequireFromString(s)) }

// zar is a helper for test to create exact rand amounts from const.
func zar(s string) Money { return R(decimal.RequireFromString(s)) }

// ledgerText joins tab separated rows under the standard header.
func ledgerText(rows ...string) string {
	text := "Date\tType\tSellCoin\tSellAmount\tBuyCoin\tBuyAmount\tBuyPricePerCoin\n"
	for _, r := range rows {
		text += r + "\n"
	}
	return text
}

// mustCompute parses and replays a ledger, failing on any error.
func mustCompute(t interface {
	Helper()
	Fatalf(string, ...any)
}, rows ...string) *Result {
	t.Helper()
	txs, err := Parse(ledgerText(rows...))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r, err := Compute(txs)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	return r
}
