// Package trade submits buy and sell orders. The remote service is the only
// authority on whether a trade is allowed; this package sequences the
// submission, the follow-up portfolio refresh, and the user notification.
package trade

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cisbosium-trader/api"
	"cisbosium-trader/models"
)

// Phase is the submission lifecycle. Succeeded and Failed are transient;
// the submitter settles back to Idle before Submit returns.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// ErrBusy is returned when a submission is attempted while another is still
// in flight.
var ErrBusy = errors.New("a trade is already in flight")

// Trader submits orders to the remote service.
type Trader interface {
	Buy(ctx context.Context, symbol string, quantity int) (models.TradeResult, error)
	Sell(ctx context.Context, symbol string, quantity int) (models.TradeResult, error)
}

// Refresher re-fetches the shared portfolio snapshot.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Quotes reports the last good price seen for a symbol.
type Quotes interface {
	LastQuote(symbol string) (q models.PriceQuote, stale bool, ok bool)
}

// Sessions reports the current bearer token.
type Sessions interface {
	CurrentToken() string
}

// Notification summarizes one finished submission for display.
type Notification struct {
	ID        string
	Success   bool
	Direction models.Direction
	Symbol    string
	Quantity  int

	// Price is the last polled price at submission time; PriceKnown is
	// false when no quote for the symbol had been fetched yet, in which
	// case Total is zero too.
	Price      float64
	PriceKnown bool
	Total      decimal.Decimal

	RemainingBalance float64
	BalanceKnown     bool

	Message string
	At      time.Time
}

// Submitter runs at most one trade at a time.
type Submitter struct {
	trader    Trader
	portfolio Refresher
	quotes    Quotes
	sessions  Sessions
	log       *zap.Logger

	mu    sync.Mutex
	phase Phase
}

// NewSubmitter wires the submitter to its collaborators.
func NewSubmitter(trader Trader, portfolio Refresher, quotes Quotes, sessions Sessions, log *zap.Logger) *Submitter {
	return &Submitter{
		trader:    trader,
		portfolio: portfolio,
		quotes:    quotes,
		sessions:  sessions,
		log:       log,
	}
}

// Phase reports the current lifecycle phase.
func (s *Submitter) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Submit sends one order and blocks until its outcome, including the
// follow-up portfolio refresh on success, is settled. Quantity must be
// positive; non-positive quantities are rejected without a network call.
// A second Submit while one is in flight returns ErrBusy.
func (s *Submitter) Submit(ctx context.Context, direction models.Direction, symbol string, quantity int) (Notification, error) {
	if quantity <= 0 {
		return s.failed(direction, symbol, quantity, "Quantity must be a positive number."),
			fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	s.mu.Lock()
	if s.phase == PhaseSubmitting {
		s.mu.Unlock()
		return Notification{}, ErrBusy
	}
	s.phase = PhaseSubmitting
	s.mu.Unlock()
	defer s.settle()

	if s.sessions.CurrentToken() == "" {
		s.setPhase(PhaseFailed)
		return s.failed(direction, symbol, quantity, api.Message(api.ErrUnauthorized)), api.ErrUnauthorized
	}

	s.log.Info("submitting trade",
		zap.String("direction", string(direction)),
		zap.String("symbol", symbol),
		zap.Int("quantity", quantity))

	var result models.TradeResult
	var err error
	switch direction {
	case models.Sell:
		result, err = s.trader.Sell(ctx, symbol, quantity)
	default:
		result, err = s.trader.Buy(ctx, symbol, quantity)
	}
	if err != nil {
		s.log.Warn("trade rejected", zap.String("symbol", symbol), zap.Error(err))
		s.setPhase(PhaseFailed)
		return s.failed(direction, symbol, quantity, api.Message(err)), err
	}

	s.setPhase(PhaseSucceeded)

	// The notification waits for the refresh so the views re-render the
	// balance and the confirmation together. A refresh failure does not
	// demote the trade; the snapshot just reads stale until the next one.
	if rerr := s.portfolio.Refresh(ctx); rerr != nil {
		s.log.Warn("post-trade refresh failed", zap.Error(rerr))
	}

	n := Notification{
		ID:               uuid.NewString(),
		Success:          true,
		Direction:        direction,
		Symbol:           symbol,
		Quantity:         quantity,
		RemainingBalance: result.RemainingBalance,
		BalanceKnown:     true,
		At:               time.Now(),
	}
	if q, _, ok := s.quotes.LastQuote(symbol); ok {
		n.Price = q.Price
		n.PriceKnown = true
		n.Total = decimal.NewFromFloat(q.Price).Mul(decimal.NewFromInt(int64(quantity)))
	}
	n.Message = successMessage(n)
	return n, nil
}

func (s *Submitter) setPhase(p Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

func (s *Submitter) settle() {
	s.setPhase(PhaseIdle)
}

func (s *Submitter) failed(direction models.Direction, symbol string, quantity int, msg string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Direction: direction,
		Symbol:    symbol,
		Quantity:  quantity,
		Message:   msg,
		At:        time.Now(),
	}
}

func successMessage(n Notification) string {
	verb := "Bought"
	if n.Direction == models.Sell {
		verb = "Sold"
	}
	if n.PriceKnown {
		return fmt.Sprintf("%s %d %s at $%.2f (total $%s). Remaining balance: $%.2f.",
			verb, n.Quantity, n.Symbol, n.Price, n.Total.StringFixed(2), n.RemainingBalance)
	}
	return fmt.Sprintf("%s %d %s. Remaining balance: $%.2f.", verb, n.Quantity, n.Symbol, n.RemainingBalance)
}
