package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/tradesim/server"
	"github.com/google/subcommands"
)

// EnvAddr provides the default listen address of the serve command.
const EnvAddr = "TSIM_ADDR"

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve a new simulation account over HTTP" }
func (*serveCmd) Usage() string {
	return `tsim [global flags] serve [-addr <address>]

  Creates an account and serves it over HTTP until interrupted:

    POST /deposit   {"amount": 100}
    POST /withdraw  {"amount": 100}
    POST /buy       {"symbol": "AAPL", "quantity": 2}
    POST /sell      {"symbol": "AAPL", "quantity": 2}
    GET  /holdings
    GET  /transactions
    GET  /journal
    GET  /value
    GET  /pnl[?initial=1000]

  Rejected operations answer 422 with the error message and its kind.
  Logs are written as JSON to the standard error.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", envOr(EnvAddr, ":8080"), "Address to listen on")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	level := slog.LevelInfo
	if *Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	a, initial, err := NewAccount()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating account: %v\n", err)
		return subcommands.ExitFailure
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(a, initial, logger).Run(ctx, c.addr); err != nil {
		logger.Error("server failed", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
