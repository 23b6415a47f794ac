// Package cmd implements the CLI application to run a trading simulation account.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/tradesim"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Environment variables providing the default value of the global flags.
const (
	EnvPrices         = "TSIM_PRICES"
	EnvPricePath      = "TSIM_PRICE_PATH"
	EnvCurrency       = "TSIM_CURRENCY"
	EnvInitialDeposit = "TSIM_INITIAL_DEPOSIT"
	EnvAccount        = "TSIM_ACCOUNT"
	EnvVerbose        = "TSIM_VERBOSE"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	pricesFile     *string
	pricePath      *string
	currency       *string
	initialDeposit *string
	accountID      *string
	// Verbose enables diagnostic logs.
	Verbose *bool
)

// Register the subcommands and the global flags.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
// The global flags default to their environment variable, so LoadEnv must be called first.
func Register(c *subcommands.Commander, f *flag.FlagSet) {
	pricesFile = f.String("prices", os.Getenv(EnvPrices), "Path to a JSON price table. Defaults to the built-in table")
	pricePath = f.String("price-path", envOr(EnvPricePath, "$"), "JSONPath selecting the symbol to price object in the price table")
	currency = f.String("currency", envOr(EnvCurrency, "USD"), "Currency of the account and of the price table")
	initialDeposit = f.String("initial-deposit", envOr(EnvInitialDeposit, "1000"), "Initial deposit profit and loss are measured against")
	accountID = f.String("account", os.Getenv(EnvAccount), "Account identifier. Defaults to a random UUID")
	Verbose = f.Bool("v", envBool(EnvVerbose), "Print diagnostic logs")

	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&sessionCmd{}, "simulation")
	c.Register(&runCmd{}, "simulation")
	c.Register(&serveCmd{}, "simulation")

	c.Register(&pricesCmd{}, "reference")
	c.Register(&topicCmd{}, "reference")
}

// LoadEnv loads the .env file of the working directory into the environment, if any.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, cannot load .env file: %v", err)
	}
}

func envOr(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

// debugf logs only in verbose mode.
func debugf(format string, args ...any) {
	if Verbose != nil && *Verbose {
		log.Printf(format, args...)
	}
}

// DecodePrices loads the price table from the -prices file, or the built-in
// table if there is none.
func DecodePrices() (*tradesim.PriceTable, error) {
	if *pricesFile == "" {
		debugf("no price file, using the built-in price table")
		return tradesim.DefaultPriceTable(), nil
	}
	f, err := os.Open(*pricesFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open price table: %w", err)
	}
	defer f.Close()
	table, err := tradesim.DecodePriceTable(f, *pricePath, *currency)
	if err != nil {
		return nil, fmt.Errorf("invalid price table %q: %w", *pricesFile, err)
	}
	debugf("loaded %d prices from %s", len(table.Symbols()), *pricesFile)
	return table, nil
}

// NewAccount creates the account of a simulation from the global flags.
func NewAccount() (*tradesim.Account, tradesim.Money, error) {
	if err := tradesim.ValidateCurrency(*currency); err != nil {
		return nil, tradesim.Money{}, fmt.Errorf("invalid -currency: %w", err)
	}
	table, err := DecodePrices()
	if err != nil {
		return nil, tradesim.Money{}, err
	}
	if table.Currency() != *currency {
		return nil, tradesim.Money{}, fmt.Errorf("the built-in price table is in %s, the account is in %s: use -prices with a price table in %s", table.Currency(), *currency, *currency)
	}
	initial, err := tradesim.ParseMoney(*initialDeposit, *currency)
	if err != nil {
		return nil, tradesim.Money{}, fmt.Errorf("invalid initial deposit: %w", err)
	}
	id := *accountID
	if id == "" {
		id = uuid.NewString()
	}
	a, err := tradesim.NewAccount(id, *currency, table)
	if err != nil {
		return nil, tradesim.Money{}, err
	}
	debugf("created account %s in %s", id, *currency)
	return a, initial, nil
}

// renderMarkdown renders markdown for the terminal, falling back to the
// markdown source if it cannot.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		debugf("cannot create markdown renderer: %v", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		debugf("cannot render markdown: %v", err)
		return md
	}
	return out
}

func printMarkdown(md string) {
	fmt.Print(renderMarkdown(md))
}
