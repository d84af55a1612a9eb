// Package market serves the static instrument catalog. The catalog ships
// with the binary, but callers still receive it asynchronously after a short
// simulated delay so the views exercise their loading states.
package market

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cisbosium-trader/models"
)

// Catalog hands out the listed instruments. The instrument set never changes
// while the application runs; there is no refresh operation.
type Catalog struct {
	delay time.Duration
	log   *zap.Logger
}

// NewCatalog creates a catalog whose loads complete after delay.
func NewCatalog(delay time.Duration, log *zap.Logger) *Catalog {
	return &Catalog{delay: delay, log: log}
}

// Load delivers the full instrument list on the returned channel after the
// configured delay, then closes the channel. Cancelling ctx before the delay
// elapses closes the channel without delivering anything. Each call runs its
// own delay; results are never cached across calls.
func (c *Catalog) Load(ctx context.Context) <-chan []models.Instrument {
	out := make(chan []models.Instrument, 1)

	go func() {
		defer close(out)

		timer := time.NewTimer(c.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			c.log.Debug("catalog load cancelled", zap.Error(ctx.Err()))
			return
		case <-timer.C:
		}

		instruments := models.ListedInstruments()
		c.log.Debug("catalog loaded", zap.Int("instruments", len(instruments)))
		out <- instruments
	}()

	return out
}
