package cgt

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestTransaction_TotalValue(t *testing.T) {
	day := on("2025-01-01")
	tests := []struct {
		name string
		tx   Transaction
		want Money
	}{
		{"buy", NewBuy(day, zar("8000"), "btc", qty("0.1"), zar("80000")), zar("8000")},
		{"sell", NewSell(day, "btc", qty("0.1"), zar("9500"), zar("100000")), zar("9500")},
		{"trade", NewTrade(day, "btc", qty("0.1"), "eth", qty("4"), zar("2500")), zar("10000")},
	}
	for _, tc := range tests {
		if got := tc.tx.TotalValue(); !got.Equal(tc.want) {
			t.Errorf("%s: TotalValue() = %v, want %v", tc.name, got.Decimal(), tc.want.Decimal())
		}
	}
}

func TestTransaction_Validate(t *testing.T) {
	day := on("2025-01-01")
	tests := []struct {
		name string
		tx   Transaction
		want error
	}{
		{"buy", NewBuy(day, zar("8000"), "BTC", qty("0.1"), zar("80000")), nil},
		{"sell", NewSell(day, "BTC", qty("0.1"), zar("9500"), zar("95000")), nil},
		{"trade", NewTrade(day, "BTC", qty("0.1"), "ETH", qty("4"), zar("2500")), nil},
		{"trade into rand", NewTrade(day, "BTC", qty("0.1"), ZAR, qty("4"), zar("1")), ErrInvalidAsset},
		{"negative", NewTrade(day, "BTC", qty("-0.1"), "ETH", qty("4"), zar("2500")), ErrInvalidAmount},
		{"no kind", Transaction{Date: day, SellAsset: "A", BuyAsset: "B"}, ErrInvalidKind},
	}
	for _, tc := range tests {
		err := tc.tx.Validate()
		if tc.want == nil && err != nil {
			t.Errorf("%s: Validate() unexpected error: %v", tc.name, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Errorf("%s: Validate() error = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestIndexedTransaction_JSON(t *testing.T) {
	txs, err := Parse(ledgerText(
		"2025-01-02\tSELL\tBTC\t0.05\tZAR\t5000\t100000",
		"2025-01-01\tBUY\tZAR\t8000\tBTC\t0.1\t80000",
	))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	rows := IndexTransactions(txs)
	if len(rows) != 2 || rows[0].Index != 1 || rows[1].Index != 2 {
		t.Fatalf("IndexTransactions() = %v, want 2 rows numbered from 1", rows)
	}

	got, err := json.Marshal(rows[0])
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	want := `{"index":1,"date":"2025-01-01 00:00:00","type":"BUY","sellAsset":"ZAR","sellQuantity":8000,"buyAsset":"BTC","buyQuantity":0.1,"unitPrice":80000,"totalValue":8000}`
	if string(got) != want {
		t.Errorf("json.Marshal(IndexedTransaction) = %s, want %s", got, want)
	}

	if got, err := json.Marshal(IndexedTransaction{Index: 3}); err != nil || !json.Valid(got) {
		t.Errorf("json.Marshal(IndexedTransaction{Index: 3}) = %s, %v, want valid JSON", got, err)
	}
}
