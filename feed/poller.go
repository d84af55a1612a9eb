// Package feed keeps the price of the selected instrument current. The
// default transport is polling; a streaming transport can feed observations
// into the same store when one is configured.
package feed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"cisbosium-trader/models"
)

// Quoter fetches a single spot price from the remote service.
type Quoter interface {
	StockPrice(ctx context.Context, symbol string) (float64, error)
}

// Update is one change to the price of a watched symbol. Stale means the
// quote shown is the last good one and newer fetches have been failing.
type Update struct {
	Symbol string
	Quote  models.PriceQuote
	Stale  bool
	Known  bool
}

// PriceFeed polls the price of one symbol at a time. Switching symbols
// cancels the previous poll loop; a response that arrives for a symbol that
// is no longer watched is discarded rather than shown under the new symbol.
type PriceFeed struct {
	quoter   Quoter
	interval time.Duration
	log      *zap.Logger

	mu      sync.Mutex
	current string
	cancel  context.CancelFunc
	quotes  map[string]models.PriceQuote
	stale   map[string]bool
	updates chan Update
}

// NewPriceFeed creates a feed that polls every interval while a symbol is
// watched.
func NewPriceFeed(quoter Quoter, interval time.Duration, log *zap.Logger) *PriceFeed {
	return &PriceFeed{
		quoter:   quoter,
		interval: interval,
		log:      log,
		quotes:   make(map[string]models.PriceQuote),
		stale:    make(map[string]bool),
		updates:  make(chan Update, 16),
	}
}

// Updates delivers price changes for whichever symbol is currently watched.
// The channel is shared across watches; consumers read it for the lifetime
// of the feed.
func (f *PriceFeed) Updates() <-chan Update {
	return f.updates
}

// Watch makes symbol the watched instrument: the previous poll loop is
// cancelled, the last known quote for symbol (if any) is replayed
// immediately, and a fresh fetch plus periodic polling begins.
func (f *PriceFeed) Watch(symbol string) {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	f.current = symbol
	f.cancel = cancel

	if q, ok := f.quotes[symbol]; ok {
		f.push(Update{Symbol: symbol, Quote: q, Stale: f.stale[symbol], Known: true})
	} else {
		f.push(Update{Symbol: symbol})
	}
	f.mu.Unlock()

	f.log.Debug("watching symbol", zap.String("symbol", symbol))
	go f.poll(ctx, symbol)
}

// Stop cancels the active poll loop without starting a new one.
func (f *PriceFeed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.current = ""
}

// LastQuote returns the last good quote for symbol and whether it is stale.
// ok is false when no fetch for symbol has ever succeeded.
func (f *PriceFeed) LastQuote(symbol string) (q models.PriceQuote, stale bool, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok = f.quotes[symbol]
	return q, f.stale[symbol], ok
}

// Observe records a price seen outside the poll loop, such as one pushed by
// a streaming transport. It is ignored when symbol is not the watched one.
func (f *PriceFeed) Observe(symbol string, price float64) {
	f.apply(symbol, price, nil)
}

func (f *PriceFeed) poll(ctx context.Context, symbol string) {
	f.fetch(ctx, symbol)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.fetch(ctx, symbol)
		}
	}
}

func (f *PriceFeed) fetch(ctx context.Context, symbol string) {
	price, err := f.quoter.StockPrice(ctx, symbol)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		f.log.Warn("price fetch failed", zap.String("symbol", symbol), zap.Error(err))
		f.apply(symbol, 0, err)
		return
	}
	f.apply(symbol, price, nil)
}

// apply stores the outcome of a fetch keyed by symbol. Outcomes for a symbol
// that is no longer watched are dropped entirely.
func (f *PriceFeed) apply(symbol string, price float64, fetchErr error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if symbol != f.current {
		f.log.Debug("discarding result for unwatched symbol", zap.String("symbol", symbol))
		return
	}

	if fetchErr != nil {
		f.stale[symbol] = true
		q, ok := f.quotes[symbol]
		f.push(Update{Symbol: symbol, Quote: q, Stale: true, Known: ok})
		return
	}

	q := models.PriceQuote{Symbol: symbol, Price: price, At: time.Now()}
	f.quotes[symbol] = q
	f.stale[symbol] = false
	f.push(Update{Symbol: symbol, Quote: q, Known: true})
}

// push delivers an update without ever blocking the poll loop. When the
// consumer lags, the oldest queued update is dropped in favor of the new one.
func (f *PriceFeed) push(u Update) {
	for {
		select {
		case f.updates <- u:
			return
		default:
			select {
			case <-f.updates:
			default:
			}
		}
	}
}
