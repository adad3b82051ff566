package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/zacgt/cgt"
)

// GainsMarkdown renders the full result: gains per tax year, current
// balances, base costs on each 1 March and the list of disposals.
func GainsMarkdown(r *cgt.Result) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Capital Gains Report\n\n")
	if len(r.TaxYearSummaries) == 0 && len(r.Balances) == 0 {
		fmt.Fprint(&b, "No transactions.\n")
		return b.String()
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Gains per Tax Year\n\n")
		fmt.Fprintln(w, "| Tax Year | Period | Gains | Losses | Net |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|---:|")
		for _, s := range r.TaxYearSummaries {
			fmt.Fprintf(w, "| %d | %s | %s | %s | %s |\n",
				s.TaxYear,
				s.TaxYear.Label(),
				s.TotalGain,
				s.TotalLoss,
				s.NetGain.SignedString(),
			)
		}
		fmt.Fprintln(w)
		return len(r.TaxYearSummaries) > 0
	})

	io.WriteString(&b, BalancesMarkdown(r.Balances))

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Base Costs on 1 March\n\n")
		fmt.Fprintln(w, "| Tax Year | Asset | Quantity | Base Cost |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|")
		for _, s := range r.YearBoundarySnapshots {
			for _, h := range s.Assets {
				fmt.Fprintf(w, "| %d | %s | %s | %s |\n", s.TaxYear, h.Asset, h.Quantity, h.CostBasis)
			}
			fmt.Fprintf(w, "| **%d** | **Total** | | **%s** |\n", s.TaxYear, s.TotalCostBasis())
		}
		fmt.Fprintln(w)
		return len(r.YearBoundarySnapshots) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Disposals\n\n")
		fmt.Fprintln(w, "| Date | Kind | Asset | Quantity | Proceeds | Base Cost | Gain | Tax Year |")
		fmt.Fprintln(w, "|:---|:---|:---|---:|---:|---:|---:|:---|")
		for _, e := range r.DisposalEvents {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s | %d |\n",
				e.Date.DayString(),
				e.Kind,
				e.Asset,
				e.Quantity,
				e.Proceeds,
				e.CostBasis,
				e.Gain().SignedString(),
				e.TaxYear(),
			)
		}
		fmt.Fprintln(w)
		return len(r.DisposalEvents) > 0
	})

	return b.String()
}

// BalancesMarkdown renders the holdings left at the end of the ledger, with
// their lots oldest first.
func BalancesMarkdown(balances cgt.Balances) string {
	var b strings.Builder
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Balances\n\n")
		fmt.Fprintln(w, "| Asset | Acquired | Quantity | Unit Price | Base Cost |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|---:|")
		for _, bal := range balances {
			for _, l := range bal.Lots {
				fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n", bal.Asset, l.AcquiredAt.DayString(), l.Quantity, l.UnitPrice, l.CostBasis())
			}
			fmt.Fprintf(w, "| **%s** | | **%s** | | **%s** |\n", bal.Asset, bal.TotalQuantity, bal.TotalCostBasis)
		}
		fmt.Fprintln(w)
		return len(balances) > 0
	})
	return b.String()
}
