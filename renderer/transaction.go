package renderer

import (
	"fmt"
	"strings"

	"github.com/zacgt/cgt"
)

// Transaction renders a transaction to a string.
func Transaction(tx cgt.Transaction) string {
	switch tx.Kind {
	case cgt.Buy:
		return fmt.Sprintf("Bought %s %s for %s", tx.BuyQuantity, tx.BuyAsset, tx.TotalValue())
	case cgt.Sell:
		return fmt.Sprintf("Sold %s %s for %s", tx.SellQuantity, tx.SellAsset, tx.TotalValue())
	case cgt.Trade:
		return fmt.Sprintf("Traded %s %s for %s %s worth %s", tx.SellQuantity, tx.SellAsset, tx.BuyQuantity, tx.BuyAsset, tx.TotalValue())
	default:
		return tx.Kind.String()
	}
}

// ValidationMarkdown renders a validation report, and the transactions when
// any are given.
func ValidationMarkdown(v cgt.ValidationReport, transactions []cgt.Transaction) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Ledger\n\n")
	fmt.Fprintf(&b, "%d transactions", v.TransactionCount)
	if v.DateRange != nil {
		fmt.Fprintf(&b, " from %s to %s", v.DateRange.From.DayString(), v.DateRange.To.DayString())
	}
	fmt.Fprint(&b, ".\n\n")

	fmt.Fprintln(&b, "| Type | Count |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, k := range cgt.Kinds {
		fmt.Fprintf(&b, "| %s | %d |\n", k, v.TransactionTypes[k.String()])
	}
	fmt.Fprintln(&b)

	if len(v.Assets) > 0 {
		fmt.Fprintf(&b, "Assets: %s\n\n", strings.Join(v.Assets, ", "))
	}

	if len(transactions) > 0 {
		fmt.Fprint(&b, "## Transactions\n\n")
		for _, row := range cgt.IndexTransactions(transactions) {
			fmt.Fprintf(&b, "%d. %s: %s\n", row.Index, row.Date.DayString(), Transaction(row.Transaction))
		}
	}
	return b.String()
}
