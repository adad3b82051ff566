package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/zacgt/cgt/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	in     string
	format string
	query  string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "capital gains report of a ledger" }
func (*reportCmd) Usage() string {
	return `cgt report [-in <file>] [-format markdown|json] [-query <jsonpath>]

  Replays the ledger with FIFO cost basis and prints the gains per tax year,
  the balances, the 1 March base costs and every disposal.

  The ledger is read from stdin unless -in is given. -query implies -format json
  and prints only the value at the given JSON path, for instance
  '$.taxYearSummaries[0].netGain'.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "Ledger file. Defaults to stdin.")
	f.StringVar(&c.format, "format", "markdown", "Output format (markdown, json)")
	f.StringVar(&c.query, "query", "", "JSON path to extract from the result")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.query != "" {
		c.format = "json"
	}
	if err := formatFlag(c.format); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}

	_, result, err := computeLedger(c.in)
	if err != nil {
		fmt.Fprintf(stderr, "Error computing gains: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.format == "json" {
		if err := printJSON(result, c.query); err != nil {
			fmt.Fprintf(stderr, "Error printing result: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.GainsMarkdown(result))
	return subcommands.ExitSuccess
}
