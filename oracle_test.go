package tradesim

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultPriceTable(t *testing.T) {
	table := DefaultPriceTable()
	testCases := []struct {
		symbol string
		want   Money
	}{
		{"AAPL", USD(150)},
		{"TSLA", USD(720)},
		{"GOOGL", USD(2800)},
	}
	for _, tc := range testCases {
		got, err := table.Price(tc.symbol)
		if err != nil {
			t.Errorf("Price(%q) error = %v", tc.symbol, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("Price(%q) = %v, want %v", tc.symbol, got, tc.want)
		}
	}

	if _, err := table.Price("aapl"); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("Price(%q) error = %v, want %v", "aapl", err, ErrUnknownSymbol)
	}
	if diff := cmp.Diff([]string{"AAPL", "GOOGL", "TSLA"}, table.Symbols()); diff != "" {
		t.Errorf("Symbols() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePriceTable(t *testing.T) {
	testCases := []struct {
		name    string
		json    string
		path    string
		want    map[string]Money
		wantErr bool
	}{
		{
			name: "whole document",
			json: `{"AAPL": 150, "TSLA": 720.5}`,
			want: map[string]Money{"AAPL": M(150, "EUR"), "TSLA": M(720.5, "EUR")},
		},
		{
			name: "nested object",
			json: `{"asOf": "2025-01-10", "quotes": {"AIR": "132.10"}}`,
			path: "$.quotes",
			want: map[string]Money{"AIR": M(132.1, "EUR")},
		},
		{
			name:    "not an object",
			json:    `{"quotes": [1, 2]}`,
			path:    "$.quotes",
			wantErr: true,
		},
		{
			name:    "negative price",
			json:    `{"AIR": -1}`,
			wantErr: true,
		},
		{
			name:    "not a number",
			json:    `{"AIR": true}`,
			wantErr: true,
		},
		{
			name:    "not json",
			json:    `AIR=1`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := DecodePriceTable(strings.NewReader(tc.json), tc.path, "EUR")
			if tc.wantErr {
				if err == nil {
					t.Fatalf("DecodePriceTable() succeeded, want an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodePriceTable() error = %v", err)
			}
			if got := len(table.Symbols()); got != len(tc.want) {
				t.Errorf("table has %d symbols, want %d", got, len(tc.want))
			}
			for symbol, want := range tc.want {
				got, err := table.Price(symbol)
				if err != nil {
					t.Errorf("Price(%q) error = %v", symbol, err)
					continue
				}
				if !got.Equal(want) {
					t.Errorf("Price(%q) = %v, want %v", symbol, got, want)
				}
			}
		})
	}

	if _, err := DecodePriceTable(strings.NewReader(`{}`), "", "ZZZ"); err == nil {
		t.Error("DecodePriceTable() with an unknown currency succeeded, want an error")
	}
}
