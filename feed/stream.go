package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// streamTick is one price message pushed by the streaming endpoint.
type streamTick struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// Stream feeds pushed prices into a PriceFeed. Polling keeps running
// underneath it, so a dropped stream degrades to the poll interval instead
// of freezing the price.
type Stream struct {
	url  string
	feed *PriceFeed
	log  *zap.Logger
}

// NewStream creates a stream reader for the given websocket URL.
func NewStream(url string, feed *PriceFeed, log *zap.Logger) *Stream {
	return &Stream{url: url, feed: feed, log: log}
}

// Run dials the endpoint and forwards ticks until ctx is cancelled,
// redialling with backoff after any connection failure.
func (s *Stream) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if err := s.readLoop(ctx); err != nil {
			s.log.Warn("price stream disconnected", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (s *Stream) readLoop(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	s.log.Info("price stream connected", zap.String("url", s.url))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var tick streamTick
		if err := json.Unmarshal(msg, &tick); err != nil {
			s.log.Debug("skipping malformed stream message", zap.Error(err))
			continue
		}
		if tick.Symbol == "" {
			continue
		}
		s.feed.Observe(tick.Symbol, tick.Price)
	}
}
