package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/zacgt/cgt/config"
	"github.com/zacgt/cgt/logging"
	"github.com/zacgt/cgt/server"
)

type serveCmd struct {
	config   string
	host     string
	logLevel string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the capital gains API over HTTP" }
func (*serveCmd) Usage() string {
	return `cgt serve [-config <file>] [-host <host>] [-log-level <level>]

  Starts the HTTP API. Configuration is read from the TOML file, then from the
  CGT_* environment variables. The server stops gracefully on SIGINT or SIGTERM.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "cgt.toml", "TOML configuration file. Skipped when missing.")
	f.StringVar(&c.host, "host", "", "Override the listening host")
	f.StringVar(&c.logLevel, "log-level", "", "Override the log level (debug, info, warn, error)")
}

// load returns the configuration with the command line overrides applied.
func (c *serveCmd) load() (*config.Config, error) {
	cfg, err := config.Load(c.config)
	if err != nil {
		return nil, err
	}
	if c.host != "" {
		cfg.Server.Host = c.host
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	return cfg, nil
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	logger := logging.NewConsole(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, logger).ListenAndServe(ctx); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
