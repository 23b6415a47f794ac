package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/tradesim/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.LoadEnv()

	commander := subcommands.NewCommander(flag.CommandLine, "tsim")
	cmd.Register(commander, flag.CommandLine)

	// exits when invoked by the shell for completion.
	cmd.Completion().Complete("tsim")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
