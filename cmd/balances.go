package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/zacgt/cgt/renderer"
)

type balancesCmd struct {
	in     string
	format string
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "remaining holdings and their lots" }
func (*balancesCmd) Usage() string {
	return `cgt balances [-in <file>] [-format markdown|json]

  Prints the quantity and base cost of every asset still held at the end of
  the ledger.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "Ledger file. Defaults to stdin.")
	f.StringVar(&c.format, "format", "markdown", "Output format (markdown, json)")
}

func (c *balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := formatFlag(c.format); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	_, result, err := computeLedger(c.in)
	if err != nil {
		fmt.Fprintf(stderr, "Error computing balances: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.format == "json" {
		if err := printJSON(result.Balances, ""); err != nil {
			fmt.Fprintf(stderr, "Error printing balances: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.BalancesMarkdown(result.Balances))
	return subcommands.ExitSuccess
}
