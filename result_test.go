package cgt

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zacgt/cgt/date"
)

func TestResult_ForTaxYear(t *testing.T) {
	r := mustCompute(t, tradeLedger...)

	report, err := r.ForTaxYear(2026)
	if err != nil {
		t.Fatalf("ForTaxYear(2026) unexpected error: %v", err)
	}
	if report.EventCount != 1 || len(report.Events) != 1 {
		t.Errorf("ForTaxYear(2026) events = %d, want 1", report.EventCount)
	}
	if report.BaseCosts == nil || report.BaseCosts.TaxYear != 2026 {
		t.Errorf("ForTaxYear(2026).BaseCosts = %+v, want the 2026 snapshot", report.BaseCosts)
	}
	if !report.Summary.NetGain.Equal(zar("9000.00003")) {
		t.Errorf("ForTaxYear(2026).Summary.NetGain = %v, want 9000.00003", report.Summary.NetGain.Decimal())
	}
}

func TestResult_ForTaxYear_Unknown(t *testing.T) {
	r := mustCompute(t, tradeLedger...)

	_, err := r.ForTaxYear(2025)
	if !errors.Is(err, ErrUnknownTaxYear) {
		t.Fatalf("ForTaxYear(2025) error = %v, want %v", err, ErrUnknownTaxYear)
	}
	if !strings.Contains(err.Error(), "[2026]") {
		t.Errorf("ForTaxYear(2025) error = %q, want the available tax years listed", err)
	}
}

func TestResult_Metadata(t *testing.T) {
	r := mustCompute(t, tradeLedger...)
	got := r.Metadata(3)
	want := Metadata{
		TransactionCount:   3,
		DisposalEventCount: 1,
		AssetsTracked:      []string{"BTC", "ETH"},
		TaxYearsCovered:    []date.TaxYear{2026},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Metadata() mismatch (-want +got):\n%s", diff)
	}
}

func TestBalances_JSONKeepsLedgerOrder(t *testing.T) {
	r := mustCompute(t,
		"2024-01-01\tBUY\tZAR\t100\tZEC\t1\t100",
		"2024-01-02\tBUY\tZAR\t100\tADA\t1\t100",
		"2024-01-03\tBUY\tZAR\t100\tMKR\t1\t100",
	)
	b, err := r.Balances.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() unexpected error: %v", err)
	}
	got := string(b)
	if zec, ada, mkr := strings.Index(got, `"ZEC"`), strings.Index(got, `"ADA"`), strings.Index(got, `"MKR"`); !(zec < ada && ada < mkr) {
		t.Errorf("Balances.MarshalJSON() = %s, want ZEC, ADA, MKR in that order", got)
	}
}
