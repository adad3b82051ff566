// Command cgt computes South African capital gains tax on crypto ledgers.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/zacgt/cgt/cmd"
)

func main() {
	// Answers shell completion requests (COMP_LINE set) and exits.
	cmd.Completion().Complete("cgt")

	commander := subcommands.NewCommander(flag.CommandLine, "cgt")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
