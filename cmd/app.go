// Package cmd implements the cgt command line application.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
	"github.com/zacgt/cgt"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&balancesCmd{}, "reports")
	c.Register(&taxYearCmd{}, "reports")
	c.Register(&validateCmd{}, "ledger")
	c.Register(&serveCmd{}, "server")
	c.Register(&topicCmd{}, "help")
}

// Commands returns a fresh instance of every registered subcommand.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&reportCmd{},
		&balancesCmd{},
		&taxYearCmd{},
		&validateCmd{},
		&serveCmd{},
		&topicCmd{},
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// decodeLedger reads and parses the ledger in file, or stdin when file is
// empty or "-".
func decodeLedger(file string) ([]cgt.Transaction, error) {
	if file == "" || file == "-" {
		return cgt.Decode(stdin)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	txs, err := cgt.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return txs, nil
}

// computeLedger decodes and replays the ledger in file.
func computeLedger(file string) ([]cgt.Transaction, *cgt.Result, error) {
	txs, err := decodeLedger(file)
	if err != nil {
		return nil, nil, err
	}
	result, err := cgt.Compute(txs)
	if err != nil {
		return nil, nil, err
	}
	return txs, result, nil
}

// printMarkdown prints md styled for the terminal, or raw when stdout is not
// a terminal.
func printMarkdown(md string) {
	f, ok := stdout.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// printJSON prints v as indented JSON. When query is not empty only the value
// at that JSON path is printed.
func printJSON(v any, query string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var out any = json.RawMessage(data)
	if query != "" {
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		if out, err = jsonpath.Get(query, doc); err != nil {
			return fmt.Errorf("query %q: %w", query, err)
		}
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// formatFlag validates the -format flag value.
func formatFlag(format string) error {
	switch format {
	case "markdown", "json":
		return nil
	default:
		return fmt.Errorf("unknown format %q, want markdown or json", format)
	}
}
