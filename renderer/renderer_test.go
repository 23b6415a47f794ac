package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/tradesim"
	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func USD(v float64) tradesim.Money { return tradesim.M(v, "USD") }

// tradedAccount returns an account with 1000 USD deposited, 2 AAPL and 1 TSLA bought.
func tradedAccount(t *testing.T) *tradesim.Account {
	t.Helper()
	a, err := tradesim.NewAccount("user_001", "USD", tradesim.DefaultPriceTable())
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Deposit(USD(1000)); err != nil {
		t.Fatal(err)
	}
	if err := a.BuyShares("AAPL", tradesim.Q(2)); err != nil {
		t.Fatal(err)
	}
	if err := a.Deposit(USD(500)); err != nil {
		t.Fatal(err)
	}
	if err := a.BuyShares("TSLA", tradesim.Q(1)); err != nil {
		t.Fatal(err)
	}
	return a
}

// headings returns the text of every markdown heading in md.
func headings(t *testing.T, md string) []string {
	t.Helper()
	source := []byte(md)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var list []string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if txt, ok := c.(*ast.Text); ok {
				b.Write(txt.Segment.Value(source))
			}
		}
		list = append(list, b.String())
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		t.Fatalf("walking markdown: %v", err)
	}
	return list
}

func TestNewHolding(t *testing.T) {
	h, err := NewHolding(tradedAccount(t))
	if err != nil {
		t.Fatalf("NewHolding() error = %v", err)
	}
	if !h.Balance.Equal(USD(480)) {
		t.Errorf("Balance = %v, want %v", h.Balance, USD(480))
	}
	if !h.TotalSecuritiesValue.Equal(USD(1020)) {
		t.Errorf("TotalSecuritiesValue = %v, want %v", h.TotalSecuritiesValue, USD(1020))
	}
	if !h.TotalPortfolioValue.Equal(USD(1500)) {
		t.Errorf("TotalPortfolioValue = %v, want %v", h.TotalPortfolioValue, USD(1500))
	}
	var tickers []string
	for _, s := range h.Securities {
		tickers = append(tickers, s.Ticker)
	}
	if diff := cmp.Diff([]string{"AAPL", "TSLA"}, tickers); diff != "" {
		t.Errorf("Securities tickers mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderHolding(t *testing.T) {
	h, err := NewHolding(tradedAccount(t))
	if err != nil {
		t.Fatal(err)
	}
	md := RenderHolding(h)

	want := []string{"Holding Report for user_001", "Securities", "Cash"}
	if diff := cmp.Diff(want, headings(t, md)); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	for _, row := range []string{
		"Total Portfolio Value: **$1500.00**",
		"| AAPL | 2 | $150.00 | $300.00 |",
		"| TSLA | 1 | $720.00 | $720.00 |",
		"| **Total** | | | **$1020.00** |",
		"| USD | $480.00 |",
	} {
		if !strings.Contains(md, row) {
			t.Errorf("RenderHolding() does not contain %q:\n%s", row, md)
		}
	}
}

func TestRenderHolding_NoShares(t *testing.T) {
	a, err := tradesim.NewAccount("empty", "USD", tradesim.DefaultPriceTable())
	if err != nil {
		t.Fatal(err)
	}
	h, err := NewHolding(a)
	if err != nil {
		t.Fatal(err)
	}
	md := RenderHolding(h)
	if !strings.Contains(md, "No shares held.") {
		t.Errorf("RenderHolding() = %q, want a no shares message", md)
	}
	if strings.Contains(md, "| Ticker |") {
		t.Errorf("RenderHolding() = %q, want no securities table", md)
	}
}

func TestRenderSummary(t *testing.T) {
	s, err := NewSummary(tradedAccount(t), USD(1000))
	if err != nil {
		t.Fatalf("NewSummary() error = %v", err)
	}
	if !s.ProfitLoss.Equal(USD(500)) {
		t.Errorf("ProfitLoss = %v, want %v", s.ProfitLoss, USD(500))
	}
	if s.Transactions != 4 {
		t.Errorf("Transactions = %d, want 4", s.Transactions)
	}
	md := RenderSummary(s)
	for _, row := range []string{
		"# Summary for user_001",
		"| Cash Balance | $480.00 |",
		"| Securities Value | $1020.00 |",
		"| Total Portfolio Value | $1500.00 |",
		"| Initial Deposit | $1000.00 |",
		"| Profit/Loss | +$500.00 |",
		"| Transactions | 4 |",
	} {
		if !strings.Contains(md, row) {
			t.Errorf("RenderSummary() does not contain %q:\n%s", row, md)
		}
	}
}

func TestTransactions(t *testing.T) {
	a := tradedAccount(t)
	if err := a.SellShares("AAPL", tradesim.Q(1)); err != nil {
		t.Fatal(err)
	}
	if err := a.Withdraw(USD(30)); err != nil {
		t.Fatal(err)
	}
	want := `# Transactions

| # | Command | Description | Cash |
|---:|:---|:---|---:|
| 1 | deposit | Deposited $1000.00 | +$1000.00 |
| 2 | buy | Bought 2 shares of AAPL at $150.00 | $-300.00 |
| 3 | deposit | Deposited $500.00 | +$500.00 |
| 4 | buy | Bought 1 shares of TSLA at $720.00 | $-720.00 |
| 5 | sell | Sold 1 shares of AAPL at $150.00 | +$150.00 |
| 6 | withdraw | Withdrew $30.00 | $-30.00 |
`
	if diff := cmp.Diff(want, Transactions(a.Journal())); diff != "" {
		t.Errorf("Transactions() mismatch (-want +got):\n%s", diff)
	}

	if got := Transactions(nil); !strings.Contains(got, "No transactions.") {
		t.Errorf("Transactions(nil) = %q, want a no transactions message", got)
	}
}

func TestTemplatesParse(t *testing.T) {
	entries, err := templates.ReadDir(".")
	if err != nil {
		t.Fatalf("failed to read embedded templates: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no embedded templates")
	}
	for _, e := range entries {
		if got := renderTemplate("x", e.Name(), nil, nil); strings.HasPrefix(got, "error parsing") {
			t.Errorf("template %s: %s", e.Name(), got)
		}
	}
}
