package renderer

import "github.com/etnz/tradesim"

// Summary holds the headline figures of an account.
type Summary struct {
	Account             string         `json:"account"`
	Balance             tradesim.Money `json:"balance"`
	SecuritiesValue     tradesim.Money `json:"securitiesValue"`
	TotalPortfolioValue tradesim.Money `json:"totalPortfolioValue"`
	InitialDeposit      tradesim.Money `json:"initialDeposit"`
	ProfitLoss          tradesim.Money `json:"profitLoss"`
	Transactions        int            `json:"transactions"`
}

// NewSummary computes the summary of an account, profit or loss being
// measured against initialDeposit.
func NewSummary(a *tradesim.Account, initialDeposit tradesim.Money) (*Summary, error) {
	total, err := a.TotalPortfolioValue()
	if err != nil {
		return nil, err
	}
	pnl, err := a.ProfitLoss(initialDeposit)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Account:             a.ID(),
		Balance:             a.Balance(),
		SecuritiesValue:     total.Sub(a.Balance()),
		TotalPortfolioValue: total,
		InitialDeposit:      total.Sub(pnl),
		ProfitLoss:          pnl,
		Transactions:        len(a.Journal()),
	}, nil
}
