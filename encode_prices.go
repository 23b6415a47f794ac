package tradesim

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DecodePriceTable reads a JSON document from r and builds a price table in
// currency from the object selected by the JSONPath expression path.
//
// The selected object maps symbols to prices, either numbers or decimal
// strings:
//
//	{"quotes": {"AAPL": 150, "TSLA": "720.50"}}
//
// is read with path "$.quotes". An empty path selects the whole document.
func DecodePriceTable(r io.Reader, path, currency string) (*PriceTable, error) {
	if err := ValidateCurrency(currency); err != nil {
		return nil, err
	}
	if path == "" {
		path = "$"
	}

	dec := json.NewDecoder(r)
	dec.UseNumber() // keep prices exact
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("price table is not a correct json: %w", err)
	}

	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error selecting prices with %q: %w", path, err)
	}
	// jsonpath may return a list of 1 answer instead of the answer itself.
	if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
		jval = jlist[0]
	}
	jprices, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%q does not select an object of prices, got %T", path, jval)
	}

	prices := make(map[string]decimal.Decimal, len(jprices))
	for symbol, v := range jprices {
		p, err := decodePrice(v)
		if err != nil {
			return nil, fmt.Errorf("price of %s: %w", symbol, err)
		}
		if !p.IsPositive() {
			return nil, fmt.Errorf("price of %s must be positive, got %v", symbol, p)
		}
		prices[symbol] = p
	}
	return NewPriceTable(currency, prices), nil
}

func decodePrice(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case json.Number:
		return parseDecimal(t.String())
	case string:
		return parseDecimal(t)
	case float64:
		return decimal.NewFromFloat(t), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("not a number: %v", v)
	}
}
