package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"github.com/zacgt/cgt/docs"
)

// topicCmd prints the embedded documentation.
type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read about the ledger format, tax years and FIFO" }
func (*topicCmd) Usage() string {
	topics, _ := docs.GetAllTopics()
	return fmt.Sprintf(`cgt topic [-list] [<topic>...]

  Prints the documentation of each topic, or the readme when none is given.
  '*' prints every topic.

  Topics: %s
`, strings.Join(topics, ", "))
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "List the topic names, one per line")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		topics, err := docs.GetAllTopics()
		if err != nil {
			fmt.Fprintf(stderr, "Error listing topics: %v\n", err)
			return subcommands.ExitFailure
		}
		for _, t := range topics {
			fmt.Fprintln(stdout, t)
		}
		return subcommands.ExitSuccess
	}

	if f.NArg() == 0 {
		printMarkdown(docs.Readme())
		return subcommands.ExitSuccess
	}

	doc, err := docs.GetTopics(f.Args()...)
	if err != nil {
		topics, _ := docs.GetAllTopics()
		fmt.Fprintf(stderr, "%v\nAvailable topics: %s\n", err, strings.Join(topics, ", "))
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
