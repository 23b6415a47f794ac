package renderer

import (
	"fmt"

	"github.com/etnz/tradesim"
)

// Holding is a struct to represent the holding data of an account.
// Numbers are handled using the exact decimal types (Money, Quantity)
// So that they already contain basics renderers (SignedString etc.)
type Holding struct {
	// Account is the account identifier.
	Account string `json:"account"`
	// Currency of the cash balance and of every value.
	Currency string `json:"currency"`
	// Balance is the cash balance.
	Balance tradesim.Money `json:"balance"`
	// TotalSecuritiesValue is the market value of all the shares held.
	TotalSecuritiesValue tradesim.Money `json:"totalSecuritiesValue"`
	// TotalPortfolioValue is the cash balance plus the securities value.
	TotalPortfolioValue tradesim.Money `json:"totalPortfolioValue"`
	// Securities is the list of held securities, by ticker.
	Securities []HoldingSecurity `json:"securities"`
}

// HoldingSecurity represents a single security holding.
type HoldingSecurity struct {
	Ticker      string            `json:"ticker"`
	Quantity    tradesim.Quantity `json:"quantity"`
	Price       tradesim.Money    `json:"price"`
	MarketValue tradesim.Money    `json:"marketValue"`
}

// NewHolding creates a new Holding struct from an account, pricing every
// holding at the current price.
func NewHolding(a *tradesim.Account) (*Holding, error) {
	h := &Holding{
		Account:              a.ID(),
		Currency:             a.Currency(),
		Balance:              a.Balance(),
		TotalSecuritiesValue: tradesim.M(0, a.Currency()),
	}
	for _, ticker := range a.Symbols() {
		price, err := a.Quote(ticker)
		if err != nil {
			return nil, fmt.Errorf("cannot value %s: %w", ticker, err)
		}
		quantity := a.Position(ticker)
		value := price.Mul(quantity)
		h.Securities = append(h.Securities, HoldingSecurity{
			Ticker:      ticker,
			Quantity:    quantity,
			Price:       price,
			MarketValue: value,
		})
		h.TotalSecuritiesValue = h.TotalSecuritiesValue.Add(value)
	}
	h.TotalPortfolioValue = h.Balance.Add(h.TotalSecuritiesValue)
	return h, nil
}
