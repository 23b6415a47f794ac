package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/tradesim"
	"github.com/google/subcommands"
)

// Session holds one account for the duration of a simulation, and executes
// command lines against it.
type Session struct {
	Account        *tradesim.Account
	InitialDeposit tradesim.Money // profit and loss are measured against it
	Out            io.Writer
	// Markdown renders reports for display. Reports are printed as markdown
	// source when nil.
	Markdown func(string) string
}

// NewSession creates a session on a, writing to out.
func NewSession(a *tradesim.Account, initialDeposit tradesim.Money, out io.Writer) *Session {
	return &Session{Account: a, InitialDeposit: initialDeposit, Out: out}
}

// Execute runs a single command line. Blank lines and lines starting with
// '#' are ignored.
func (s *Session) Execute(ctx context.Context, line string) subcommands.ExitStatus {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return subcommands.ExitSuccess
	}

	top := flag.NewFlagSet("session", flag.ContinueOnError)
	top.SetOutput(s.Out)
	cdr := subcommands.NewCommander(top, "session")
	cdr.Output = s.Out
	cdr.Error = s.Out
	registerSessionCommands(cdr)

	// session commands only take positional arguments, "--" keeps negative
	// amounts from being read as flags.
	args := append([]string{fields[0], "--"}, fields[1:]...)
	if err := top.Parse(args); err != nil {
		return subcommands.ExitUsageError
	}
	return cdr.Execute(ctx, s)
}

// RunSession executes every line read from r. If prompt is not empty it is
// printed before reading each line. It returns the number of lines that failed.
func RunSession(ctx context.Context, r io.Reader, s *Session, prompt string) (failed int, err error) {
	scanner := bufio.NewScanner(r)
	for {
		if prompt != "" {
			fmt.Fprint(s.Out, prompt)
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			break
		}
		if status := s.Execute(ctx, line); status != subcommands.ExitSuccess {
			failed++
		}
		if err := ctx.Err(); err != nil {
			return failed, err
		}
	}
	return failed, scanner.Err()
}

// session from the Execute args.
func session(args []interface{}) *Session {
	return args[0].(*Session)
}

// --- Session Command ---

type sessionCmd struct {
	plain bool
	quiet bool
}

func (*sessionCmd) Name() string     { return "session" }
func (*sessionCmd) Synopsis() string { return "start an interactive simulation on a new account" }
func (*sessionCmd) Usage() string {
	return `tsim [global flags] session [-plain] [-q]

  Creates an account and reads commands from the standard input, one per line,
  until "quit" or end of input. Type "help" for the list of commands.
  The account lives as long as the session.
`
}

func (c *sessionCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "Print reports as markdown source instead of rendering them")
	f.BoolVar(&c.quiet, "q", false, "Do not print the prompt")
}

func (c *sessionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, initial, err := NewAccount()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating account: %v\n", err)
		return subcommands.ExitFailure
	}
	s := NewSession(a, initial, os.Stdout)
	if !c.plain {
		s.Markdown = renderMarkdown
	}
	prompt := "> "
	if c.quiet {
		prompt = ""
	} else {
		fmt.Printf("Trading simulation account %s (%s). Type \"help\" for commands.\n", a.ID(), a.Currency())
	}

	if _, err := RunSession(ctx, os.Stdin, s, prompt); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- Run Command ---

type runCmd struct {
	plain bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run a simulation script on a new account" }
func (*runCmd) Usage() string {
	return `tsim [global flags] run [-plain] <script>

  Creates an account and executes the session commands of the script, one per
  line. A failing command is reported and the script goes on, but the exit
  status is a failure. Use "-" to read the script from the standard input.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", true, "Print reports as markdown source instead of rendering them")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	var r io.Reader = os.Stdin
	if name := f.Arg(0); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}

	a, initial, err := NewAccount()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating account: %v\n", err)
		return subcommands.ExitFailure
	}
	s := NewSession(a, initial, os.Stdout)
	if !c.plain {
		s.Markdown = renderMarkdown
	}

	failed, err := RunSession(ctx, r, s, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
		return subcommands.ExitFailure
	}
	if failed > 0 {
		debugf("%d commands failed", failed)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
