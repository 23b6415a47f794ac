package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/tradesim"
)

// Transactions renders the journal as a markdown table, oldest first.
func Transactions(txs []tradesim.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintln(&b, "No transactions.")
		return b.String()
	}
	fmt.Fprintln(&b, "| # | Command | Description | Cash |")
	fmt.Fprintln(&b, "|---:|:---|:---|---:|")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", tx.Seq(), tx.What(), tx, cash(tx).SignedString())
	}
	return b.String()
}

// cash returns the cash movement of a transaction on the balance.
func cash(tx tradesim.Transaction) tradesim.Money {
	switch v := tx.(type) {
	case tradesim.Deposit:
		return v.Amount
	case tradesim.Withdraw:
		return v.Amount.Neg()
	case tradesim.Buy:
		return v.Amount().Neg()
	case tradesim.Sell:
		return v.Amount()
	default:
		return tradesim.Money{}
	}
}
