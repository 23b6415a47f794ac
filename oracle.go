package tradesim

import (
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// PriceOracle supplies the current unit price of a symbol.
//
// Implementations must be deterministic for a given symbol within a run, and
// fail with an error matching ErrUnknownSymbol for symbols they cannot price.
type PriceOracle interface {
	Price(symbol string) (Money, error)
}

// PriceFunc adapts a function to the PriceOracle interface.
type PriceFunc func(symbol string) (Money, error)

func (f PriceFunc) Price(symbol string) (Money, error) { return f(symbol) }

// UnknownSymbol returns the error an oracle reports for a symbol it cannot price.
func UnknownSymbol(symbol string) error {
	return newError(ErrUnknownSymbol, fmt.Sprintf("Unknown symbol: %s.", symbol))
}

// PriceTable is a static PriceOracle: a fixed price per symbol, all in one currency.
type PriceTable struct {
	currency string
	prices   map[string]decimal.Decimal
}

// NewPriceTable creates a price table in currency.
func NewPriceTable(currency string, prices map[string]decimal.Decimal) *PriceTable {
	if prices == nil {
		prices = make(map[string]decimal.Decimal)
	}
	return &PriceTable{currency: currency, prices: maps.Clone(prices)}
}

// DefaultPriceTable returns the built-in USD table used when no price file is given.
func DefaultPriceTable() *PriceTable {
	return NewPriceTable("USD", map[string]decimal.Decimal{
		"AAPL":  decimal.NewFromInt(150),
		"TSLA":  decimal.NewFromInt(720),
		"GOOGL": decimal.NewFromInt(2800),
	})
}

// Price returns the price of symbol.
func (t *PriceTable) Price(symbol string) (Money, error) {
	p, ok := t.prices[symbol]
	if !ok {
		return Money{}, UnknownSymbol(symbol)
	}
	return Money{value: p, cur: t.currency}, nil
}

// Currency returns the currency of all the prices in the table.
func (t *PriceTable) Currency() string { return t.currency }

// Symbols returns the symbols in the table, sorted.
func (t *PriceTable) Symbols() []string {
	return slices.Sorted(maps.Keys(t.prices))
}
