package tradesim

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeTransaction writes tx as a single line of JSON.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("could not encode %s transaction #%d: %w", tx.What(), tx.Seq(), err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// EncodeJournal writes the journal of a, one JSON object per line (JSONL), oldest first.
//
// The export is an audit trail, it is never read back into an account.
func EncodeJournal(w io.Writer, a *Account) error {
	for _, tx := range a.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
