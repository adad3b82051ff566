package cgt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	txs, err := Parse(ledgerText(append(tradeLedger, "2025-06-01\tSELL\tETH\t1\tZAR\t2500\t2500")...))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	report := Validate(txs)

	if report.TransactionCount != 4 {
		t.Errorf("Validate().TransactionCount = %d, want 4", report.TransactionCount)
	}
	if diff := cmp.Diff(map[string]int{"BUY": 2, "SELL": 1, "TRADE": 1}, report.TransactionTypes); diff != "" {
		t.Errorf("Validate().TransactionTypes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"BTC", "ETH"}, report.Assets); diff != "" {
		t.Errorf("Validate().Assets mismatch (-want +got):\n%s", diff)
	}
	if report.DateRange == nil {
		t.Fatalf("Validate().DateRange = nil, want a range")
	}
	if !report.DateRange.From.Equal(on("2024-11-01")) || !report.DateRange.To.Equal(on("2025-06-01")) {
		t.Errorf("Validate().DateRange = %v - %v, want 2024-11-01 - 2025-06-01", report.DateRange.From, report.DateRange.To)
	}
}

func TestValidate_Empty(t *testing.T) {
	report := Validate(nil)
	if report.DateRange != nil {
		t.Errorf("Validate(nil).DateRange = %v, want nil", report.DateRange)
	}
	if diff := cmp.Diff(map[string]int{"BUY": 0, "SELL": 0, "TRADE": 0}, report.TransactionTypes); diff != "" {
		t.Errorf("Validate(nil).TransactionTypes mismatch (-want +got):\n%s", diff)
	}
}
