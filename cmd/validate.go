package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/zacgt/cgt"
	"github.com/zacgt/cgt/renderer"
)

type validateCmd struct {
	in     string
	format string
	list   bool
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check a ledger can be parsed" }
func (*validateCmd) Usage() string {
	return `cgt validate [-in <file>] [-format markdown|json] [-list]

  Parses the ledger without replaying it, and prints the number of
  transactions, their date range, the count per type and the assets involved.
  Use -list to print the parsed transactions too.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "Ledger file. Defaults to stdin.")
	f.StringVar(&c.format, "format", "markdown", "Output format (markdown, json)")
	f.BoolVar(&c.list, "list", false, "List the parsed transactions")
}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := formatFlag(c.format); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	txs, err := decodeLedger(c.in)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	report := cgt.Validate(txs)

	if c.format == "json" {
		if err := printJSON(report, ""); err != nil {
			fmt.Fprintf(stderr, "Error printing report: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	if !c.list {
		txs = nil
	}
	printMarkdown(renderer.ValidationMarkdown(report, txs))
	return subcommands.ExitSuccess
}
