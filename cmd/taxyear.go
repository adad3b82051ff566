package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/zacgt/cgt/date"
	"github.com/zacgt/cgt/renderer"
)

type taxYearCmd struct {
	in     string
	year   string
	format string
}

func (*taxYearCmd) Name() string     { return "taxyear" }
func (*taxYearCmd) Synopsis() string { return "gains, base costs and disposals of one tax year" }
func (*taxYearCmd) Usage() string {
	return `cgt taxyear -year <year> [-in <file>] [-format markdown|json]

  Prints the report of a single tax year. A tax year is named after the
  calendar year it ends in: 2025 runs from 1 March 2024 to 28 February 2025.
`
}

func (c *taxYearCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "Ledger file. Defaults to stdin.")
	f.StringVar(&c.year, "year", "", "Tax year, named after the year it ends in")
	f.StringVar(&c.format, "format", "markdown", "Output format (markdown, json)")
}

func (c *taxYearCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.year == "" {
		fmt.Fprintln(stderr, "-year is required")
		return subcommands.ExitUsageError
	}
	year, err := date.ParseTaxYear(c.year)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing tax year: %v\n", err)
		return subcommands.ExitUsageError
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
	report, err := result.ForTaxYear(year)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.format == "json" {
		if err := printJSON(report, ""); err != nil {
			fmt.Fprintf(stderr, "Error printing report: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderTaxYear(report))
	return subcommands.ExitSuccess
}
