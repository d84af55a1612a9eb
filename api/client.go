// Package api implements the client for the remote Cisbosium trading
// service. The service owns all business logic; this client only shapes
// requests, attaches the bearer credential, and normalizes errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cisbosium-trader/models"
)

// ErrUnauthorized is returned when a call requires a bearer token and none
// is available, or the service rejects the one presented.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a rejection from the remote service (a non-2xx response).
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("remote service: %s (status %d)", e.Message, e.StatusCode)
}

// TokenSource supplies the current bearer token. An empty string means no
// session.
type TokenSource interface {
	CurrentToken() string
}

// Client talks to the trading service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a client for the service at baseURL. Authenticated
// endpoints read the bearer token from tokens on every call.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

// loginRequest and friends mirror the service's wire format.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access string `json:"access"`
}

type tradeRequest struct {
	Symbol   string `json:"symbol"`
	Quantity int    `json:"quantity"`
}

type priceResponse struct {
	Price float64 `json:"price"`
}

type transactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

// remoteError covers both error shapes the service uses: {"detail": ...}
// from the login endpoint and {"error": ...} everywhere else.
type remoteError struct {
	Detail string `json:"detail"`
	Err    string `json:"error"`
}

func (r remoteError) message() string {
	if r.Detail != "" {
		return r.Detail
	}
	return r.Err
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/api/login/", loginRequest{Username: username, Password: password}, false, &out)
	if err != nil {
		return "", err
	}
	if out.Access == "" {
		return "", &Error{StatusCode: http.StatusOK, Message: "login response carried no token"}
	}
	return out.Access, nil
}

// StockPrice fetches the current price for one symbol.
func (c *Client) StockPrice(ctx context.Context, symbol string) (float64, error) {
	var out priceResponse
	path := "/api/stock-price/" + url.PathEscape(symbol)
	if err := c.do(ctx, http.MethodGet, path, nil, false, &out); err != nil {
		return 0, err
	}
	return out.Price, nil
}

// Buy submits a buy order for quantity shares of symbol.
func (c *Client) Buy(ctx context.Context, symbol string, quantity int) (models.TradeResult, error) {
	return c.trade(ctx, "/api/buy/", symbol, quantity)
}

// Sell submits a sell order for quantity shares of symbol.
func (c *Client) Sell(ctx context.Context, symbol string, quantity int) (models.TradeResult, error) {
	return c.trade(ctx, "/api/sell/", symbol, quantity)
}

func (c *Client) trade(ctx context.Context, path, symbol string, quantity int) (models.TradeResult, error) {
	var out models.TradeResult
	err := c.do(ctx, http.MethodPost, path, tradeRequest{Symbol: symbol, Quantity: quantity}, true, &out)
	return out, err
}

// Holdings fetches the full balance and holdings snapshot.
func (c *Client) Holdings(ctx context.Context) (models.Portfolio, error) {
	var out models.Portfolio
	err := c.do(ctx, http.MethodGet, "/api/holdings/", nil, true, &out)
	return out, err
}

// Profile fetches the user's account record.
func (c *Client) Profile(ctx context.Context) (models.UserProfile, error) {
	var out models.UserProfile
	err := c.do(ctx, http.MethodGet, "/api/user/profile", nil, true, &out)
	return out, err
}

// Transactions fetches the user's trade history.
func (c *Client) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var out transactionsResponse
	if err := c.do(ctx, http.MethodGet, "/api/transactions", nil, true, &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

// do performs one request/response cycle. Authenticated calls fail with
// ErrUnauthorized before touching the network when no token is present.
func (c *Client) do(ctx context.Context, method, path string, in any, auth bool, out any) error {
	var token string
	if auth {
		token = c.tokens.CurrentToken()
		if token == "" {
			return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
		}
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var remote remoteError
		_ = json.Unmarshal(raw, &remote)
		msg := remote.message()
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%s: %w", msg, ErrUnauthorized)
		}
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// A 2xx with a body we cannot read is treated like a rejection.
		return &Error{StatusCode: resp.StatusCode, Message: "malformed response from service"}
	}
	return nil
}

// Message extracts the user-facing text from a remote-call error, falling
// back to a generic message for transport and decoding failures.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnauthorized) {
		return "You are not signed in."
	}
	return "Something went wrong. Please try again."
}
