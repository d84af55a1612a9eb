package models

import "time"

// Direction is the side of a trade.
type Direction string

const (
	Buy  Direction = "buy"
	Sell Direction = "sell"
)

// StockHolding is one position in the user's portfolio, as reported by the
// remote service.
type StockHolding struct {
	Symbol   string `json:"stock_symbol"`
	Quantity int    `json:"quantity"`
}

// Portfolio is the balance and holdings snapshot returned by
// GET /api/holdings/. It is never persisted locally and is considered
// possibly stale the instant it is fetched.
type Portfolio struct {
	Balance  float64        `json:"balance"`
	Holdings []StockHolding `json:"stock_holdings"`
}

// PriceQuote is the most recent observed price for one symbol.
type PriceQuote struct {
	Symbol string
	Price  float64
	At     time.Time
}

// TradeResult is the remote service's answer to a buy or sell order.
type TradeResult struct {
	RemainingBalance float64 `json:"remaining_balance"`
}

// UserProfile is the account record behind GET /api/user/profile.
type UserProfile struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Balance  float64 `json:"balance"`
}

// Transaction is one entry of the user's trade history.
type Transaction struct {
	Timestamp time.Time `json:"timestamp"`
	Symbol    string    `json:"symbol"`
	Type      string    `json:"type"` // "buy" or "sell"
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}
