package cgt

import (
	"github.com/zacgt/cgt/date"
)

// ValidationReport describes a parsed ledger without replaying it.
type ValidationReport struct {
	TransactionCount int            `json:"transactionCount"`
	DateRange        *date.Range    `json:"dateRange"`
	TransactionTypes map[string]int `json:"transactionTypes"`
	Assets           []string       `json:"assetsInvolved"`
}

// Validate summarizes transactions: count, first and last date, number of
// each kind, and the assets other than ZAR in order of first appearance.
// DateRange is nil when there is no transaction.
func Validate(transactions []Transaction) ValidationReport {
	report := ValidationReport{
		TransactionCount: len(transactions),
		TransactionTypes: make(map[string]int, len(Kinds)),
		Assets:           []string{},
	}
	for _, k := range Kinds {
		report.TransactionTypes[k.String()] = 0
	}

	var r date.Range
	seen := make(map[string]bool)
	for _, tx := range transactions {
		r = r.Extend(tx.Date)
		report.TransactionTypes[tx.Kind.String()]++
		for _, asset := range []string{tx.SellAsset, tx.BuyAsset} {
			if asset == ZAR || seen[asset] {
				continue
			}
			seen[asset] = true
			report.Assets = append(report.Assets, asset)
		}
	}
	if len(transactions) > 0 {
		report.DateRange = &r
	}
	return report
}
