package tradesim

import "fmt"

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdDeposit  CommandType = "deposit"
	CmdWithdraw CommandType = "withdraw"
	CmdBuy      CommandType = "buy"
	CmdSell     CommandType = "sell"
)

// Transaction is an immutable entry of an account journal.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "buy", "sell").
	Seq() int          // Seq returns the 1-based position of the transaction in its journal.
	String() string    // String returns the human-readable rendering used for audit.
	Equal(Transaction) bool
}

type baseCmd struct {
	Command  CommandType
	Sequence int
}

// What returns the command name for the transaction, which is used to identify the type of transaction.
func (t baseCmd) What() CommandType { return t.Command }

// Seq returns the position of the transaction in the journal.
func (t baseCmd) Seq() int { return t.Sequence }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Optional("seq", t.Sequence)
	return w.MarshalJSON()
}

// secCmd is a component for share transactions (buy, sell).
type secCmd struct {
	baseCmd
	Security string // Security is the ticker symbol of the shares.
	Quantity Quantity
	Price    Money // Price is the unit price at the time of the transaction.
}

// Amount returns the cash value of the transaction, price times quantity.
func (t secCmd) Amount() Money { return t.Price.Mul(t.Quantity) }

// MarshalJSON implements the json.Marshaler interface for secCmd.
func (t secCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("security", t.Security)
	w.Append("quantity", t.Quantity)
	w.Optional("currency", t.Price.Currency())
	w.Append("price", t.Price.Decimal())
	return w.MarshalJSON()
}

func (t secCmd) equal(o secCmd) bool {
	return t.baseCmd == o.baseCmd && t.Security == o.Security && t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price)
}

// Deposit represents cash added to the account.
type Deposit struct {
	baseCmd
	Amount Money
}

// NewDeposit creates a new Deposit transaction.
func NewDeposit(seq int, amount Money) Deposit {
	return Deposit{baseCmd: baseCmd{Command: CmdDeposit, Sequence: seq}, Amount: amount}
}

func (t Deposit) String() string { return fmt.Sprintf("Deposited %s", t.Amount) }

func (t Deposit) Equal(other Transaction) bool {
	o, ok := other.(Deposit)
	return ok && t.baseCmd == o.baseCmd && t.Amount.Equal(o.Amount)
}

// MarshalJSON implements the json.Marshaler interface for Deposit.
func (t Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// Withdraw represents cash removed from the account.
type Withdraw struct {
	baseCmd
	Amount Money
}

// NewWithdraw creates a new Withdraw transaction.
func NewWithdraw(seq int, amount Money) Withdraw {
	return Withdraw{baseCmd: baseCmd{Command: CmdWithdraw, Sequence: seq}, Amount: amount}
}

func (t Withdraw) String() string { return fmt.Sprintf("Withdrew %s", t.Amount) }

func (t Withdraw) Equal(other Transaction) bool {
	o, ok := other.(Withdraw)
	return ok && t.baseCmd == o.baseCmd && t.Amount.Equal(o.Amount)
}

// MarshalJSON implements the json.Marshaler interface for Withdraw.
func (t Withdraw) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// Buy represents shares purchased at the current price.
type Buy struct {
	secCmd
}

// NewBuy creates a new Buy transaction.
func NewBuy(seq int, security string, quantity Quantity, price Money) Buy {
	return Buy{secCmd{baseCmd: baseCmd{Command: CmdBuy, Sequence: seq}, Security: security, Quantity: quantity, Price: price}}
}

func (t Buy) String() string {
	return fmt.Sprintf("Bought %s shares of %s at %s", t.Quantity, t.Security, t.Price)
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.secCmd.equal(o.secCmd)
}

// Sell represents shares sold at the current price.
type Sell struct {
	secCmd
}

// NewSell creates a new Sell transaction.
func NewSell(seq int, security string, quantity Quantity, price Money) Sell {
	return Sell{secCmd{baseCmd: baseCmd{Command: CmdSell, Sequence: seq}, Security: security, Quantity: quantity, Price: price}}
}

func (t Sell) String() string {
	return fmt.Sprintf("Sold %s shares of %s at %s", t.Quantity, t.Security, t.Price)
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.secCmd.equal(o.secCmd)
}
