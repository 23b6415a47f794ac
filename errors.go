package tradesim

import "errors"

// Kinds of account operation failures. Test for them with errors.Is.
var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrUnknownSymbol      = errors.New("unknown symbol")
)

// ErrInvalidPrice is reported when the price oracle returns a price the
// account cannot trade at: in another currency, or not positive.
var ErrInvalidPrice = errors.New("invalid price")

// Error is the failure of an account operation. Its message is meant to be
// shown to the end user as is.
type Error struct {
	Kind    error // one of the Err* kinds
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindName returns the name of err's kind ("InsufficientFunds", ...), or ""
// if err is not an account operation failure.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return "InvalidAmount"
	case errors.Is(err, ErrInvalidQuantity):
		return "InvalidQuantity"
	case errors.Is(err, ErrInsufficientFunds):
		return "InsufficientFunds"
	case errors.Is(err, ErrInsufficientShares):
		return "InsufficientShares"
	case errors.Is(err, ErrUnknownSymbol):
		return "UnknownSymbol"
	default:
		return ""
	}
}
