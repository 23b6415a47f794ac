package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tradesim"
	"github.com/google/subcommands"
)

type pricesCmd struct{}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "list the prices of the price table" }
func (*pricesCmd) Usage() string {
	return `tsim [global flags] prices [<symbol>...]

  Lists the symbols of the price table and their price. The table is the
  -prices file, or the built-in table. Without symbols, every symbol is listed.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	table, err := DecodePrices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices: %v\n", err)
		return subcommands.ExitFailure
	}
	symbols := f.Args()
	if len(symbols) == 0 {
		symbols = table.Symbols()
	}
	md, err := priceList(table, symbols)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// priceList formats symbols and their price as a markdown table.
func priceList(table *tradesim.PriceTable, symbols []string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Prices (%s)\n\n", table.Currency())
	b.WriteString("| Symbol | Price |\n")
	b.WriteString("|:---|---:|\n")
	for _, symbol := range symbols {
		price, err := table.Price(symbol)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "| %s | %s |\n", symbol, price)
	}
	return b.String(), nil
}
