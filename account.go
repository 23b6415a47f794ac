package tradesim

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

const (
	msgDepositNotPositive  = "Deposit amount must be positive."
	msgWithdrawNotPositive = "Withdrawal amount must be positive."
	msgWithdrawFunds       = "Insufficient funds for this withdrawal."
	msgBuyFunds            = "Insufficient funds to buy shares."
	msgSellShares          = "Insufficient shares to sell."
	msgQuantity            = "Quantity must be a positive whole number of shares."
)

// Account is a trading simulation account: a cash balance, share holdings and
// the journal of every transaction applied to it.
//
// The balance is never negative and every held symbol has a positive
// quantity. A failed operation leaves the account unchanged.
//
// An Account is not safe for concurrent use.
type Account struct {
	id           string
	currency     string
	oracle       PriceOracle
	balance      Money
	holdings     map[string]Quantity
	transactions []Transaction
}

// NewAccount creates an empty account holding cash in currency and pricing
// shares with oracle.
func NewAccount(id, currency string, oracle PriceOracle) (*Account, error) {
	if err := ValidateCurrency(currency); err != nil {
		return nil, fmt.Errorf("invalid account currency: %w", err)
	}
	if oracle == nil {
		return nil, errors.New("price oracle is missing")
	}
	return &Account{
		id:           id,
		currency:     currency,
		oracle:       oracle,
		balance:      M(0, currency),
		holdings:     make(map[string]Quantity),
		transactions: make([]Transaction, 0),
	}, nil
}

// ID returns the account identifier.
func (a *Account) ID() string { return a.id }

// Currency returns the currency of the cash balance.
func (a *Account) Currency() string { return a.currency }

// Balance returns the cash balance.
func (a *Account) Balance() Money { return a.balance }

// Deposit adds amount to the cash balance.
func (a *Account) Deposit(amount Money) error {
	if !amount.IsPositive() {
		return newError(ErrInvalidAmount, msgDepositNotPositive)
	}
	amount, err := a.cash("Deposit", amount)
	if err != nil {
		return err
	}
	a.balance = a.balance.Add(amount)
	a.append(NewDeposit(a.nextSeq(), amount))
	return nil
}

// Withdraw removes amount from the cash balance.
func (a *Account) Withdraw(amount Money) error {
	if !amount.IsPositive() {
		return newError(ErrInvalidAmount, msgWithdrawNotPositive)
	}
	amount, err := a.cash("Withdrawal", amount)
	if err != nil {
		return err
	}
	if a.balance.LessThan(amount) {
		return newError(ErrInsufficientFunds, msgWithdrawFunds)
	}
	a.balance = a.balance.Sub(amount)
	a.append(NewWithdraw(a.nextSeq(), amount))
	return nil
}

// BuyShares buys quantity shares of symbol at its current price.
func (a *Account) BuyShares(symbol string, quantity Quantity) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	price, err := a.Quote(symbol)
	if err != nil {
		return err
	}
	cost := price.Mul(quantity)
	if a.balance.LessThan(cost) {
		return newError(ErrInsufficientFunds, msgBuyFunds)
	}
	a.balance = a.balance.Sub(cost)
	a.holdings[symbol] = a.holdings[symbol].Add(quantity)
	a.append(NewBuy(a.nextSeq(), symbol, quantity, price))
	return nil
}

// SellShares sells quantity shares of symbol at its current price.
func (a *Account) SellShares(symbol string, quantity Quantity) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	held := a.holdings[symbol]
	if held.LessThan(quantity) {
		return newError(ErrInsufficientShares, msgSellShares)
	}
	price, err := a.Quote(symbol)
	if err != nil {
		return err
	}
	a.balance = a.balance.Add(price.Mul(quantity))
	if left := held.Sub(quantity); left.IsZero() {
		delete(a.holdings, symbol)
	} else {
		a.holdings[symbol] = left
	}
	a.append(NewSell(a.nextSeq(), symbol, quantity, price))
	return nil
}

// Quote returns the current price of symbol, in the account currency.
func (a *Account) Quote(symbol string) (Money, error) {
	price, err := a.oracle.Price(symbol)
	if err != nil {
		return Money{}, err
	}
	price = price.in(a.currency)
	if price.Currency() != a.currency {
		return Money{}, fmt.Errorf("%w: price of %s is in %s, the account is in %s", ErrInvalidPrice, symbol, price.Currency(), a.currency)
	}
	if !price.IsPositive() {
		return Money{}, fmt.Errorf("%w: price of %s must be positive, got %v", ErrInvalidPrice, symbol, price)
	}
	return price, nil
}

// Position returns the quantity of symbol held, zero if none.
func (a *Account) Position(symbol string) Quantity { return a.holdings[symbol] }

// TotalPortfolioValue returns the cash balance plus the value of every
// holding at current prices.
func (a *Account) TotalPortfolioValue() (Money, error) {
	total := a.balance
	for _, symbol := range a.Symbols() {
		price, err := a.Quote(symbol)
		if err != nil {
			return Money{}, err
		}
		total = total.Add(price.Mul(a.holdings[symbol]))
	}
	return total, nil
}

// ProfitLoss returns the total portfolio value minus initialDeposit.
func (a *Account) ProfitLoss(initialDeposit Money) (Money, error) {
	total, err := a.TotalPortfolioValue()
	if err != nil {
		return Money{}, err
	}
	initialDeposit = initialDeposit.in(a.currency)
	if initialDeposit.Currency() != a.currency {
		return Money{}, fmt.Errorf("initial deposit is in %s, the account is in %s", initialDeposit.Currency(), a.currency)
	}
	return total.Sub(initialDeposit), nil
}

// ReportProfitLoss is ProfitLoss.
func (a *Account) ReportProfitLoss(initialDeposit Money) (Money, error) {
	return a.ProfitLoss(initialDeposit)
}

// Holdings returns a copy of the quantity held per symbol.
func (a *Account) Holdings() map[string]Quantity { return maps.Clone(a.holdings) }

// Symbols returns the held symbols, sorted.
func (a *Account) Symbols() []string { return slices.Sorted(maps.Keys(a.holdings)) }

// Transactions returns the rendering of every transaction, oldest first.
func (a *Account) Transactions() []string {
	list := make([]string, 0, len(a.transactions))
	for _, tx := range a.transactions {
		list = append(list, tx.String())
	}
	return list
}

// Journal returns a copy of the transactions, oldest first.
func (a *Account) Journal() []Transaction { return slices.Clone(a.transactions) }

func (a *Account) nextSeq() int { return len(a.transactions) + 1 }

func (a *Account) append(tx Transaction) { a.transactions = append(a.transactions, tx) }

// cash returns amount in the account currency, or an error if it is in another one.
func (a *Account) cash(what string, amount Money) (Money, error) {
	amount = amount.in(a.currency)
	if amount.Currency() != a.currency {
		return amount, newError(ErrInvalidAmount, fmt.Sprintf("%s currency %s does not match account currency %s.", what, amount.Currency(), a.currency))
	}
	return amount, nil
}

func validateQuantity(q Quantity) error {
	if !q.IsPositive() || !q.IsInteger() {
		return newError(ErrInvalidQuantity, msgQuantity)
	}
	return nil
}
