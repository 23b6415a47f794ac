package tradesim

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// quantityComparer lets cmp compare Quantity values despite their unexported decimal.
var quantityComparer = cmp.Comparer(func(a, b Quantity) bool { return a.Equal(b) })

// newFundedAccount returns an account priced with the default table, after a
// first deposit of 1000 USD.
func newFundedAccount(t *testing.T) *Account {
	t.Helper()
	a, err := NewAccount("user123", "USD", DefaultPriceTable())
	if err != nil {
		t.Fatalf("NewAccount() error = %v", err)
	}
	if err := a.Deposit(USD(1000)); err != nil {
		t.Fatalf("Deposit(1000) error = %v", err)
	}
	return a
}
