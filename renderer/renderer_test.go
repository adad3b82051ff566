package renderer

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/zacgt/cgt"
)

const ledger = "Date\tType\tSellCoin\tSellAmount\tBuyCoin\tBuyAmount\tBuyPricePerCoin\n" +
	"2024-11-01\tBUY\tZAR\t8000\tBTC\t0.1\t80000\n" +
	"2024-11-02\tBUY\tZAR\t18000\tBTC\t0.2\t90000\n" +
	"2025-05-05\tTRADE\tBTC\t0.133333333\tETH\t10\t2000\n"

func compute(t *testing.T, text string) ([]cgt.Transaction, *cgt.Result) {
	t.Helper()
	txs, err := cgt.Parse(text)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	r, err := cgt.Compute(txs)
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}
	return txs, r
}

// outline is the structure of a markdown document.
type outline struct {
	headings []string
	tables   []int // number of body rows of each table
}

func parseOutline(t *testing.T, doc string) outline {
	t.Helper()
	source := []byte(doc)
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(source))

	var o outline
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Heading:
			var b strings.Builder
			for c := v.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					b.Write(txt.Segment.Value(source))
				}
			}
			o.headings = append(o.headings, b.String())
		case *east.Table:
			rows := 0
			for c := v.FirstChild(); c != nil; c = c.NextSibling() {
				if _, ok := c.(*east.TableRow); ok {
					rows++
				}
			}
			o.tables = append(o.tables, rows)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("ast.Walk() unexpected error: %v", err)
	}
	return o
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGainsMarkdown(t *testing.T) {
	_, r := compute(t, ledger)
	doc := GainsMarkdown(r)
	o := parseOutline(t, doc)

	want := []string{"Capital Gains Report", "Gains per Tax Year", "Balances", "Base Costs on 1 March", "Disposals"}
	if !equalStrings(o.headings, want) {
		t.Errorf("GainsMarkdown() headings = %q, want %q", o.headings, want)
	}
	// one tax year; BTC lot + total and ETH lot + total; 2025 BTC + total and
	// 2026 BTC, ETH + total; one disposal.
	wantRows := []int{1, 4, 5, 1}
	if len(o.tables) != len(wantRows) {
		t.Fatalf("GainsMarkdown() has %d tables, want %d:\n%s", len(o.tables), len(wantRows), doc)
	}
	for i, w := range wantRows {
		if o.tables[i] != w {
			t.Errorf("GainsMarkdown() table %d has %d rows, want %d", i, o.tables[i], w)
		}
	}
	if !strings.Contains(doc, "1 Mar 2025 - 28 Feb 2026") {
		t.Errorf("GainsMarkdown() does not label tax year 2026 with its period:\n%s", doc)
	}
}

func TestGainsMarkdown_Empty(t *testing.T) {
	r, err := cgt.Compute(nil)
	if err != nil {
		t.Fatalf("Compute(nil) unexpected error: %v", err)
	}
	o := parseOutline(t, GainsMarkdown(r))
	if len(o.headings) != 1 || len(o.tables) != 0 {
		t.Errorf("GainsMarkdown(empty) = %v headings and %v tables, want a title only", o.headings, o.tables)
	}
}

func TestRenderTaxYear(t *testing.T) {
	_, r := compute(t, ledger)
	report, err := r.ForTaxYear(2026)
	if err != nil {
		t.Fatalf("ForTaxYear(2026) unexpected error: %v", err)
	}
	doc := RenderTaxYear(report)
	if strings.HasPrefix(doc, "error") {
		t.Fatalf("RenderTaxYear() failed: %s", doc)
	}
	o := parseOutline(t, doc)

	want := []string{"Capital Gains for Tax Year 2026", "Summary", "Base Costs on 2026-03-01", "Disposals", "2025-05-05 TRADE 0.133333333 BTC"}
	if !equalStrings(o.headings, want) {
		t.Errorf("RenderTaxYear() headings = %q, want %q\n%s", o.headings, want, doc)
	}
	// summary: BTC + total; base costs: BTC, ETH + total; two consumed lots.
	wantRows := []int{2, 3, 2}
	if len(o.tables) != len(wantRows) {
		t.Fatalf("RenderTaxYear() has %d tables, want %d:\n%s", len(o.tables), len(wantRows), doc)
	}
	for i, w := range wantRows {
		if o.tables[i] != w {
			t.Errorf("RenderTaxYear() table %d has %d rows, want %d", i, o.tables[i], w)
		}
	}
	if !strings.Contains(doc, "1 Mar 2025 - 28 Feb 2026") {
		t.Errorf("RenderTaxYear() does not show the tax year period:\n%s", doc)
	}
}

func TestRenderTaxYear_NoBaseCosts(t *testing.T) {
	_, r := compute(t, "Date\tType\tSellCoin\tSellAmount\tBuyCoin\tBuyAmount\tBuyPricePerCoin\n"+
		"2024-04-01\tBUY\tZAR\t1000\tETH\t1\t1000\n"+
		"2024-05-01\tSELL\tETH\t1\tZAR\t800\t800\n")
	report, err := r.ForTaxYear(2025)
	if err != nil {
		t.Fatalf("ForTaxYear(2025) unexpected error: %v", err)
	}
	doc := RenderTaxYear(report)
	if !strings.Contains(doc, "No holdings on 2025-03-01.") {
		t.Errorf("RenderTaxYear() does not report the empty boundary:\n%s", doc)
	}
	if !strings.Contains(doc, "loss") {
		t.Errorf("RenderTaxYear() does not report the loss:\n%s", doc)
	}
}

func TestValidationMarkdown(t *testing.T) {
	txs, _ := compute(t, ledger)
	doc := ValidationMarkdown(cgt.Validate(txs), txs)
	o := parseOutline(t, doc)
	if want := []string{"Ledger", "Transactions"}; !equalStrings(o.headings, want) {
		t.Errorf("ValidationMarkdown() headings = %q, want %q", o.headings, want)
	}
	for _, s := range []string{"3 transactions from 2024-11-01 to 2025-05-05.", "Assets: BTC, ETH", "3. 2025-05-05: Traded 0.133333333 BTC for 10 ETH"} {
		if !strings.Contains(doc, s) {
			t.Errorf("ValidationMarkdown() does not contain %q:\n%s", s, doc)
		}
	}
}

func TestTransaction(t *testing.T) {
	txs, _ := compute(t, ledger)
	tests := []struct {
		tx     cgt.Transaction
		prefix string
	}{
		{txs[0], "Bought 0.1 BTC for "},
		{txs[2], "Traded 0.133333333 BTC for 10 ETH worth "},
		{cgt.Transaction{}, "UNKNOWN"},
	}
	for _, tc := range tests {
		if got := Transaction(tc.tx); !strings.HasPrefix(got, tc.prefix) {
			t.Errorf("Transaction(%v) = %q, want prefix %q", tc.tx.Kind, got, tc.prefix)
		}
	}
}
