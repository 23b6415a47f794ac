// Package server exposes a trading simulation account over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/etnz/tradesim"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/shopspring/decimal"
)

// Server serves one account. Requests are executed one at a time.
type Server struct {
	mu             sync.Mutex
	account        *tradesim.Account
	initialDeposit tradesim.Money
	log            *slog.Logger
}

// New creates a server on a. Profit and loss are measured against
// initialDeposit unless the request says otherwise.
func New(a *tradesim.Account, initialDeposit tradesim.Money, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{account: a, initialDeposit: initialDeposit, log: logger}
}

// CashRequest is the body of deposit and withdraw requests.
type CashRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// SharesRequest is the body of buy and sell requests.
type SharesRequest struct {
	Symbol   string            `json:"symbol"`
	Quantity tradesim.Quantity `json:"quantity"`
}

// App returns the fiber application with every route registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(cors.New())
	app.Use(s.serialize)

	app.Post("/deposit", s.Deposit)
	app.Post("/withdraw", s.Withdraw)
	app.Post("/buy", s.Buy)
	app.Post("/sell", s.Sell)

	app.Get("/holdings", s.Holdings)
	app.Get("/transactions", s.Transactions)
	app.Get("/journal", s.Journal)
	app.Get("/value", s.Value)
	app.Get("/pnl", s.ProfitLoss)
	return app
}

// Run listens on addr until ctx is done, then shuts the server down,
// letting active requests finish.
func (s *Server) Run(ctx context.Context, addr string) error {
	app := s.App()
	errc := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", addr, "account", s.account.ID(), "currency", s.account.Currency())
		errc <- app.Listen(addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server exited")
	return nil
}

// serialize holds the account lock for the whole request.
func (s *Server) serialize(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.Next()
}

// fail maps an account operation failure to its response.
func (s *Server) fail(c *fiber.Ctx, op string, err error) error {
	if errors.Is(err, tradesim.ErrInvalidPrice) {
		s.log.Error("price source failed", "op", op, "error", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": err.Error(), "kind": "InvalidPrice"})
	}
	kind := tradesim.KindName(err)
	if kind == "" {
		s.log.Error("operation failed", "op", op, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	s.log.Warn("operation rejected", "op", op, "kind", kind, "error", err)
	return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error(), "kind": kind})
}

func (s *Server) badRequest(c *fiber.Ctx, op string, err error) error {
	s.log.Warn("invalid request body", "op", op, "error", err)
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
}

func (s *Server) Deposit(c *fiber.Ctx) error {
	var req CashRequest
	if err := c.BodyParser(&req); err != nil {
		return s.badRequest(c, "deposit", err)
	}
	if err := tradesim.CheckDecimal(req.Amount); err != nil {
		return s.badRequest(c, "deposit", err)
	}
	amount := tradesim.M(req.Amount, s.account.Currency())
	if err := s.account.Deposit(amount); err != nil {
		return s.fail(c, "deposit", err)
	}
	s.log.Info("deposit", "amount", amount.String(), "balance", s.account.Balance().String())
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Deposited %s", amount),
		"balance": s.account.Balance(),
	})
}

func (s *Server) Withdraw(c *fiber.Ctx) error {
	var req CashRequest
	if err := c.BodyParser(&req); err != nil {
		return s.badRequest(c, "withdraw", err)
	}
	if err := tradesim.CheckDecimal(req.Amount); err != nil {
		return s.badRequest(c, "withdraw", err)
	}
	amount := tradesim.M(req.Amount, s.account.Currency())
	if err := s.account.Withdraw(amount); err != nil {
		return s.fail(c, "withdraw", err)
	}
	s.log.Info("withdraw", "amount", amount.String(), "balance", s.account.Balance().String())
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Withdrew %s", amount),
		"balance": s.account.Balance(),
	})
}

func (s *Server) Buy(c *fiber.Ctx) error {
	var req SharesRequest
	if err := c.BodyParser(&req); err != nil {
		return s.badRequest(c, "buy", err)
	}
	if err := s.account.BuyShares(req.Symbol, req.Quantity); err != nil {
		return s.fail(c, "buy", err)
	}
	s.log.Info("buy", "symbol", req.Symbol, "quantity", req.Quantity.String(), "balance", s.account.Balance().String())
	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("Bought %s shares of %s", req.Quantity, req.Symbol),
		"balance":  s.account.Balance(),
		"holdings": s.account.Holdings(),
	})
}

func (s *Server) Sell(c *fiber.Ctx) error {
	var req SharesRequest
	if err := c.BodyParser(&req); err != nil {
		return s.badRequest(c, "sell", err)
	}
	if err := s.account.SellShares(req.Symbol, req.Quantity); err != nil {
		return s.fail(c, "sell", err)
	}
	s.log.Info("sell", "symbol", req.Symbol, "quantity", req.Quantity.String(), "balance", s.account.Balance().String())
	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("Sold %s shares of %s", req.Quantity, req.Symbol),
		"balance":  s.account.Balance(),
		"holdings": s.account.Holdings(),
	})
}

func (s *Server) Holdings(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"balance":  s.account.Balance(),
		"holdings": s.account.Holdings(),
	})
}

// Transactions lists the transaction descriptions, oldest first.
func (s *Server) Transactions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"transactions": s.account.Transactions()})
}

// Journal streams the journal as JSONL.
func (s *Server) Journal(c *fiber.Ctx) error {
	var b bytes.Buffer
	if err := tradesim.EncodeJournal(&b, s.account); err != nil {
		return s.fail(c, "journal", err)
	}
	c.Set(fiber.HeaderContentType, "application/x-ndjson")
	return c.Send(b.Bytes())
}

func (s *Server) Value(c *fiber.Ctx) error {
	total, err := s.account.TotalPortfolioValue()
	if err != nil {
		return s.fail(c, "value", err)
	}
	return c.JSON(fiber.Map{"value": total})
}

// ProfitLoss reports the profit or loss against the "initial" query
// parameter, or the server initial deposit.
func (s *Server) ProfitLoss(c *fiber.Ctx) error {
	initial := s.initialDeposit
	if q := c.Query("initial"); q != "" {
		m, err := tradesim.ParseMoney(q, s.account.Currency())
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("Invalid initial deposit %q", q)})
		}
		initial = m
	}
	pnl, err := s.account.ProfitLoss(initial)
	if err != nil {
		return s.fail(c, "pnl", err)
	}
	return c.JSON(fiber.Map{"profit_loss": pnl, "initial_deposit": initial})
}
