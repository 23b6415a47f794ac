package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tradesim"
	"github.com/etnz/tradesim/renderer"
	"github.com/google/subcommands"
)

// registerSessionCommands registers the commands available in a session.
func registerSessionCommands(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")

	c.Register(&depositCmd{}, "cash")
	c.Register(&withdrawCmd{}, "cash")

	c.Register(&buyCmd{}, "shares")
	c.Register(&sellCmd{}, "shares")

	c.Register(&valueCmd{}, "reports")
	c.Register(&pnlCmd{}, "reports")
	c.Register(&holdingsCmd{}, "reports")
	c.Register(&txCmd{}, "reports")
	c.Register(&reportCmd{}, "reports")
	c.Register(&exportCmd{}, "reports")
}

// fail reports err to the session and returns the failure status.
// Account errors carry the message meant for the user, it is printed verbatim.
func fail(s *Session, err error) subcommands.ExitStatus {
	fmt.Fprintln(s.Out, err.Error())
	return subcommands.ExitFailure
}

// formatHoldings formats holdings as {AAPL: 2, TSLA: 1}, by symbol.
func formatHoldings(a *tradesim.Account) string {
	parts := make([]string, 0, len(a.Symbols()))
	for _, symbol := range a.Symbols() {
		parts = append(parts, fmt.Sprintf("%s: %s", symbol, a.Position(symbol)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// cashArgs parses the single amount argument of cash commands.
func cashArgs(s *Session, f *flag.FlagSet) (tradesim.Money, bool) {
	if f.NArg() != 1 {
		f.Usage()
		return tradesim.Money{}, false
	}
	amount, err := tradesim.ParseMoney(f.Arg(0), s.Account.Currency())
	if err != nil {
		fmt.Fprintf(s.Out, "Invalid amount %q.\n", f.Arg(0))
		return tradesim.Money{}, false
	}
	return amount, true
}

// sharesArgs parses the symbol and quantity arguments of share commands.
func sharesArgs(s *Session, f *flag.FlagSet) (string, tradesim.Quantity, bool) {
	if f.NArg() != 2 {
		f.Usage()
		return "", tradesim.Quantity{}, false
	}
	quantity, err := tradesim.ParseQuantity(f.Arg(1))
	if err != nil {
		fmt.Fprintf(s.Out, "Invalid quantity %q.\n", f.Arg(1))
		return "", tradesim.Quantity{}, false
	}
	return f.Arg(0), quantity, true
}

// --- Deposit Command ---

type depositCmd struct{}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "add cash to the account" }
func (*depositCmd) Usage() string {
	return `deposit <amount>

  Adds cash to the account balance. The amount must be positive.
`
}
func (*depositCmd) SetFlags(f *flag.FlagSet) {}
func (*depositCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	amount, ok := cashArgs(s, f)
	if !ok {
		return subcommands.ExitUsageError
	}
	if err := s.Account.Deposit(amount); err != nil {
		return fail(s, err)
	}
	fmt.Fprintf(s.Out, "Deposited %s. Current Balance: %s\n", amount, s.Account.Balance())
	return subcommands.ExitSuccess
}

// --- Withdraw Command ---

type withdrawCmd struct{}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "remove cash from the account" }
func (*withdrawCmd) Usage() string {
	return `withdraw <amount>

  Removes cash from the account balance. The amount must be positive and
  cannot exceed the balance.
`
}
func (*withdrawCmd) SetFlags(f *flag.FlagSet) {}
func (*withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	amount, ok := cashArgs(s, f)
	if !ok {
		return subcommands.ExitUsageError
	}
	if err := s.Account.Withdraw(amount); err != nil {
		return fail(s, err)
	}
	fmt.Fprintf(s.Out, "Withdrew %s. Current Balance: %s\n", amount, s.Account.Balance())
	return subcommands.ExitSuccess
}

// --- Buy Command ---

type buyCmd struct{}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares at the current price" }
func (*buyCmd) Usage() string {
	return `buy <symbol> <quantity>

  Buys a whole number of shares at the current price. The cost is debited
  from the cash balance.
`
}
func (*buyCmd) SetFlags(f *flag.FlagSet) {}
func (*buyCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	symbol, quantity, ok := sharesArgs(s, f)
	if !ok {
		return subcommands.ExitUsageError
	}
	if err := s.Account.BuyShares(symbol, quantity); err != nil {
		return fail(s, err)
	}
	fmt.Fprintf(s.Out, "Bought %s shares of %s. Current Holdings: %s\n", quantity, symbol, formatHoldings(s.Account))
	return subcommands.ExitSuccess
}

// --- Sell Command ---

type sellCmd struct{}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares at the current price" }
func (*sellCmd) Usage() string {
	return `sell <symbol> <quantity>

  Sells a whole number of held shares at the current price. The proceeds are
  credited to the cash balance.
`
}
func (*sellCmd) SetFlags(f *flag.FlagSet) {}
func (*sellCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	symbol, quantity, ok := sharesArgs(s, f)
	if !ok {
		return subcommands.ExitUsageError
	}
	if err := s.Account.SellShares(symbol, quantity); err != nil {
		return fail(s, err)
	}
	fmt.Fprintf(s.Out, "Sold %s shares of %s. Current Holdings: %s\n", quantity, symbol, formatHoldings(s.Account))
	return subcommands.ExitSuccess
}

// --- Value Command ---

type valueCmd struct{}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "print the total portfolio value" }
func (*valueCmd) Usage() string {
	return `value

  Prints the cash balance plus the value of the holdings at current prices.
`
}
func (*valueCmd) SetFlags(f *flag.FlagSet) {}
func (*valueCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	total, err := s.Account.TotalPortfolioValue()
	if err != nil {
		return fail(s, err)
	}
	fmt.Fprintf(s.Out, "Total Portfolio Value: %s\n", total)
	return subcommands.ExitSuccess
}

// --- Profit/Loss Command ---

type pnlCmd struct{}

func (*pnlCmd) Name() string     { return "pnl" }
func (*pnlCmd) Synopsis() string { return "print the profit or loss" }
func (*pnlCmd) Usage() string {
	return `pnl [<initial deposit>]

  Prints the total portfolio value minus the initial deposit. The initial
  deposit defaults to the -initial-deposit global flag.
`
}
func (*pnlCmd) SetFlags(f *flag.FlagSet) {}
func (*pnlCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	initial := s.InitialDeposit
	if f.NArg() > 0 {
		var ok bool
		if initial, ok = cashArgs(s, f); !ok {
			return subcommands.ExitUsageError
		}
	}
	pnl, err := s.Account.ProfitLoss(initial)
	if err != nil {
		return fail(s, err)
	}
	fmt.Fprintf(s.Out, "Profit/Loss: %s\n", pnl)
	return subcommands.ExitSuccess
}

// --- Holdings Command ---

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "print the shares held" }
func (*holdingsCmd) Usage() string {
	return `holdings

  Prints the quantity held per symbol.
`
}
func (*holdingsCmd) SetFlags(f *flag.FlagSet) {}
func (*holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	fmt.Fprintf(s.Out, "Current Holdings: %s\n", formatHoldings(s.Account))
	return subcommands.ExitSuccess
}

// --- Transactions Command ---

type txCmd struct{}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions" }
func (*txCmd) Usage() string {
	return `tx

  Lists every transaction of the account, oldest first.
`
}
func (*txCmd) SetFlags(f *flag.FlagSet) {}
func (*txCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	fmt.Fprintln(s.Out, "Transactions:")
	for _, tx := range s.Account.Transactions() {
		fmt.Fprintf(s.Out, "  %s\n", tx)
	}
	return subcommands.ExitSuccess
}

// --- Report Command ---

type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the summary, holding and transactions reports" }
func (*reportCmd) Usage() string {
	return `report

  Prints the account summary, the holding report and the transactions.
`
}
func (*reportCmd) SetFlags(f *flag.FlagSet) {}
func (*reportCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	summary, err := renderer.NewSummary(s.Account, s.InitialDeposit)
	if err != nil {
		return fail(s, err)
	}
	holding, err := renderer.NewHolding(s.Account)
	if err != nil {
		return fail(s, err)
	}
	md := renderer.RenderSummary(summary) + "\n" +
		renderer.RenderHolding(holding) + "\n" +
		renderer.Transactions(s.Account.Journal())
	if s.Markdown != nil {
		md = s.Markdown(md)
	}
	fmt.Fprint(s.Out, md)
	return subcommands.ExitSuccess
}

// --- Export Command ---

type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the transactions as JSONL" }
func (*exportCmd) Usage() string {
	return `export [<file>]

  Writes the transactions, one JSON object per line. Without a file, they are
  written to the session output. An existing file is overwritten.
`
}
func (*exportCmd) SetFlags(f *flag.FlagSet) {}
func (*exportCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	if f.NArg() == 0 {
		if err := tradesim.EncodeJournal(s.Out, s.Account); err != nil {
			return fail(s, err)
		}
		return subcommands.ExitSuccess
	}

	filename := f.Arg(0)
	file, err := os.Create(filename)
	if err != nil {
		return fail(s, fmt.Errorf("cannot create %q: %w", filename, err))
	}
	defer file.Close()
	if err := tradesim.EncodeJournal(file, s.Account); err != nil {
		return fail(s, fmt.Errorf("cannot write %q: %w", filename, err))
	}
	fmt.Fprintf(s.Out, "Exported %d transactions to %s\n", len(s.Account.Journal()), filename)
	return subcommands.ExitSuccess
}
