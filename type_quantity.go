package tradesim

import (
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
)

// number is any value Money and Quantity can be built from.
type number interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~float32 | ~float64 | decimal.Decimal
}

// newDecimal converts value exactly, floats excepted.
func newDecimal[T number](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int())
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		return decimal.NewFromUint64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return decimal.NewFromFloat(rv.Float())
	}
	panic(fmt.Sprintf("unsupported number type %T", value))
}

// Limits of decimals read from user input.
const (
	maxDigits = 30 // integer digits
	maxScale  = 10 // fractional digits
)

// CheckDecimal rejects decimals with more than 30 integer digits or 10
// fractional digits.
func CheckDecimal(d decimal.Decimal) error {
	if d.Exponent() < -maxScale {
		return fmt.Errorf("number has more than %d decimal places", maxScale)
	}
	// integer digits, counted without expanding the number.
	if int64(d.NumDigits())+int64(d.Exponent()) > maxDigits {
		return fmt.Errorf("number is too large, more than %d digits", maxDigits)
	}
	return nil
}

// parseDecimal parses s, within the limits of CheckDecimal.
func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if err := CheckDecimal(d); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}

// Quantity is a number of shares.
type Quantity struct {
	value decimal.Decimal
}

// Q returns a quantity of value shares.
func Q[T number](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

// ParseQuantity parses a number of shares. It does not check the value is a
// whole positive number, the account does.
func ParseQuantity(s string) (Quantity, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return Quantity{value: d}, nil
}

func (t Quantity) Equal(p Quantity) bool           { return t.value.Equal(p.value) }
func (t Quantity) LessThan(quantity Quantity) bool { return t.value.LessThan(quantity.value) }
func (t Quantity) Add(p Quantity) Quantity         { return Quantity{value: t.value.Add(p.value)} }
func (t Quantity) Sub(p Quantity) Quantity         { return Quantity{value: t.value.Sub(p.value)} }
func (t Quantity) IsPositive() bool                { return t.value.IsPositive() }
func (t Quantity) IsZero() bool                    { return t.value.IsZero() }
func (t Quantity) IsInteger() bool                 { return t.value.IsInteger() }
func (q Quantity) String() string                  { return q.value.String() }

// MarshalJSON implements the json.Marshaler interface for Quantity.
func (t Quantity) MarshalJSON() ([]byte, error) {
	return t.value.MarshalJSON()
}

// UnmarshalJSON reads a number or a decimal string, within the limits of CheckDecimal.
func (t *Quantity) UnmarshalJSON(decimalBytes []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(decimalBytes); err != nil {
		return err
	}
	if err := CheckDecimal(d); err != nil {
		return fmt.Errorf("invalid quantity: %w", err)
	}
	t.value = d
	return nil
}
