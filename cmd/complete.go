package cmd

import (
	"os"

	"github.com/etnz/tradesim"
	"github.com/etnz/tradesim/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictSymbols predicts the symbols of the built-in price table, or of the
// TSIM_PRICES table when it can be read.
var predictSymbols = complete.PredictFunc(func(prefix string) []string {
	table := tradesim.DefaultPriceTable()
	if name := os.Getenv(EnvPrices); name != "" {
		if f, err := os.Open(name); err == nil {
			defer f.Close()
			if t, err := tradesim.DecodePriceTable(f, envOr(EnvPricePath, "$"), envOr(EnvCurrency, "USD")); err == nil {
				table = t
			}
		}
	}
	return table.Symbols()
})

var predictTopics = complete.PredictFunc(func(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append(topics, "readme", "*")
})

// Completion returns the shell completion of the tsim command line.
func Completion() *complete.Command {
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"prices":          predict.Files("*.json"),
			"price-path":      predict.Something,
			"currency":        predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"},
			"initial-deposit": predict.Something,
			"account":         predict.Something,
			"v":               predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"session": {
				Flags: map[string]complete.Predictor{
					"plain": predict.Nothing,
					"q":     predict.Nothing,
				},
			},
			"run": {
				Flags: map[string]complete.Predictor{
					"plain": predict.Nothing,
				},
				Args: predict.Files("*"),
			},
			"serve": {
				Flags: map[string]complete.Predictor{
					"addr": predict.Something,
				},
			},
			"prices": {Args: predictSymbols},
			"topic":  {Args: predictTopics},
			"help":   {Args: predict.Set{"session", "run", "serve", "prices", "topic"}},
		},
	}
}
