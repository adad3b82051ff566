package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/zacgt/cgt/docs"
)

// Completion describes the subcommands and their flags for shell completion.
func Completion() *complete.Command {
	root := &complete.Command{Sub: make(map[string]*complete.Command)}
	for _, c := range Commands() {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)

		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		f.VisitAll(func(fl *flag.Flag) {
			sub.Flags[fl.Name] = flagPredictor(fl.Name)
		})
		if c.Name() == "topic" {
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(topics)
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

func flagPredictor(name string) complete.Predictor {
	switch name {
	case "in":
		return predict.Files("*")
	case "config":
		return predict.Files("*.toml")
	case "format":
		return predict.Set{"markdown", "json"}
	case "log-level":
		return predict.Set{"debug", "info", "warn", "error"}
	case "list":
		return predict.Nothing
	default:
		return predict.Something
	}
}
