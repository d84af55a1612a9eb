package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

// fakeQuoter serves fixed prices per symbol and counts requests. A symbol
// listed in blocked holds its request until the matching channel is closed.
type fakeQuoter struct {
	mu      sync.Mutex
	prices  map[string]float64
	errs    map[string]error
	counts  map[string]int
	blocked map[string]chan struct{}
}

func newFakeQuoter() *fakeQuoter {
	return &fakeQuoter{
		prices:  make(map[string]float64),
		errs:    make(map[string]error),
		counts:  make(map[string]int),
		blocked: make(map[string]chan struct{}),
	}
}

func (q *fakeQuoter) StockPrice(ctx context.Context, symbol string) (float64, error) {
	q.mu.Lock()
	q.counts[symbol]++
	gate := q.blocked[symbol]
	price := q.prices[symbol]
	err := q.errs[symbol]
	q.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return 0, err
	}
	return price, nil
}

func (q *fakeQuoter) count(symbol string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.counts[symbol]
}

func (q *fakeQuoter) setError(symbol string, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.errs[symbol] = err
}

// drainUntil reads updates until cond matches one or the deadline hits.
func drainUntil(t *testing.T, f *PriceFeed, desc string, cond func(Update) bool) Update {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case u := <-f.Updates():
			if cond(u) {
				return u
			}
		case <-deadline:
			t.Fatalf("%s: wanted update never arrived", desc)
		}
	}
}

func TestWatchFetchesImmediatelyAndPolls(t *testing.T) {
	quoter := newFakeQuoter()
	quoter.prices["AAPL"] = 182.50

	f := NewPriceFeed(quoter, 5*time.Millisecond, zap.NewNop())
	defer f.Stop()
	f.Watch("AAPL")

	u := drainUntil(t, f, "TestWatchFetchesImmediatelyAndPolls: first quote", func(u Update) bool {
		return u.Known && u.Symbol == "AAPL"
	})
	if u.Quote.Price != 182.50 {
		t.Errorf("TestWatchFetchesImmediatelyAndPolls: price = %v, want 182.50", u.Quote.Price)
	}

	deadline := time.Now().Add(5 * time.Second)
	for quoter.count("AAPL") < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := quoter.count("AAPL"); got < 3 {
		t.Errorf("TestWatchFetchesImmediatelyAndPolls: %d requests, want repeated polling", got)
	}
}

func TestSwitchStopsPollingOldSymbol(t *testing.T) {
	quoter := newFakeQuoter()
	quoter.prices["AAPL"] = 182.50
	quoter.prices["TSLA"] = 249.00

	f := NewPriceFeed(quoter, 5*time.Millisecond, zap.NewNop())
	defer f.Stop()

	f.Watch("AAPL")
	drainUntil(t, f, "TestSwitchStopsPollingOldSymbol: first AAPL quote", func(u Update) bool {
		return u.Known && u.Symbol == "AAPL"
	})

	f.Watch("TSLA")
	drainUntil(t, f, "TestSwitchStopsPollingOldSymbol: first TSLA quote", func(u Update) bool {
		return u.Known && u.Symbol == "TSLA"
	})

	settled := quoter.count("AAPL")
	time.Sleep(50 * time.Millisecond)
	if got := quoter.count("AAPL"); got > settled+1 {
		t.Errorf("TestSwitchStopsPollingOldSymbol: AAPL requests grew %d -> %d after switch", settled, got)
	}
}

func TestLateResultForOldSymbolDiscarded(t *testing.T) {
	quoter := newFakeQuoter()
	gate := make(chan struct{})
	quoter.prices["AAPL"] = 182.50
	quoter.blocked["AAPL"] = gate
	quoter.prices["TSLA"] = 249.00

	f := NewPriceFeed(quoter, time.Hour, zap.NewNop())
	defer f.Stop()

	f.Watch("AAPL") // request is now parked behind the gate

	f.Watch("TSLA")
	drainUntil(t, f, "TestLateResultForOldSymbolDiscarded: TSLA quote", func(u Update) bool {
		return u.Known && u.Symbol == "TSLA"
	})

	close(gate) // the AAPL response arrives while TSLA is watched

	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		if _, _, ok := f.LastQuote("AAPL"); ok {
			t.Fatal("TestLateResultForOldSymbolDiscarded: late response was recorded")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFetchFailureKeepsLastQuoteAndMarksStale(t *testing.T) {
	quoter := newFakeQuoter()
	quoter.prices["NVDA"] = 905.75

	f := NewPriceFeed(quoter, 5*time.Millisecond, zap.NewNop())
	defer f.Stop()
	f.Watch("NVDA")

	drainUntil(t, f, "TestFetchFailureKeepsLastQuoteAndMarksStale: first quote", func(u Update) bool {
		return u.Known && u.Symbol == "NVDA"
	})

	quoter.setError("NVDA", errors.New("service unavailable"))
	u := drainUntil(t, f, "TestFetchFailureKeepsLastQuoteAndMarksStale: stale update", func(u Update) bool {
		return u.Stale
	})

	if !u.Known || u.Quote.Price != 905.75 {
		t.Errorf("TestFetchFailureKeepsLastQuoteAndMarksStale: update = %+v, want last good price retained", u)
	}
	if q, stale, ok := f.LastQuote("NVDA"); !ok || !stale || q.Price != 905.75 {
		t.Errorf("TestFetchFailureKeepsLastQuoteAndMarksStale: LastQuote = (%+v, stale=%v, ok=%v)", q, stale, ok)
	}
}

func TestRecoveryClearsStale(t *testing.T) {
	quoter := newFakeQuoter()
	quoter.prices["V"] = 270.10
	quoter.setError("V", errors.New("timeout"))

	f := NewPriceFeed(quoter, 5*time.Millisecond, zap.NewNop())
	defer f.Stop()
	f.Watch("V")

	drainUntil(t, f, "TestRecoveryClearsStale: stale update", func(u Update) bool {
		return u.Stale
	})

	quoter.setError("V", nil)
	u := drainUntil(t, f, "TestRecoveryClearsStale: fresh quote", func(u Update) bool {
		return u.Known && !u.Stale
	})
	if u.Quote.Price != 270.10 {
		t.Errorf("TestRecoveryClearsStale: price = %v, want 270.10", u.Quote.Price)
	}
}

func TestObserveIgnoresUnwatchedSymbol(t *testing.T) {
	quoter := newFakeQuoter()
	quoter.prices["AAPL"] = 182.50

	f := NewPriceFeed(quoter, time.Hour, zap.NewNop())
	defer f.Stop()
	f.Watch("AAPL")
	drainUntil(t, f, "TestObserveIgnoresUnwatchedSymbol: AAPL quote", func(u Update) bool {
		return u.Known && u.Symbol == "AAPL"
	})

	f.Observe("TSLA", 249.00)
	if _, _, ok := f.LastQuote("TSLA"); ok {
		t.Error("TestObserveIgnoresUnwatchedSymbol: observation for unwatched symbol was recorded")
	}

	f.Observe("AAPL", 183.00)
	if q, _, _ := f.LastQuote("AAPL"); q.Price != 183.00 {
		t.Errorf("TestObserveIgnoresUnwatchedSymbol: watched observation not applied, price = %v", q.Price)
	}
}
