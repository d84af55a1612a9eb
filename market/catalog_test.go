package market

import (
	"context"
	"testing"
	"time"

	"github.com/kylelemons/godebug/pretty"
	"go.uber.org/zap"

	"cisbosium-trader/models"
)

func TestLoadDeliversFullCatalogAfterDelay(t *testing.T) {
	c := NewCatalog(10*time.Millisecond, zap.NewNop())

	start := time.Now()
	got, ok := <-c.Load(context.Background())
	if !ok {
		t.Fatal("TestLoadDeliversFullCatalogAfterDelay: channel closed without a catalog")
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("TestLoadDeliversFullCatalogAfterDelay: delivered after %v, want at least the configured delay", elapsed)
	}

	if diff := pretty.Compare(models.ListedInstruments(), got); diff != "" {
		t.Errorf("TestLoadDeliversFullCatalogAfterDelay: -want/+got:\n%s", diff)
	}
}

func TestLoadCancelledBeforeDelay(t *testing.T) {
	c := NewCatalog(time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	ch := c.Load(ctx)
	cancel()

	select {
	case got, ok := <-ch:
		if ok {
			t.Errorf("TestLoadCancelledBeforeDelay: received %d instruments, want closed channel", len(got))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("TestLoadCancelledBeforeDelay: channel never closed after cancellation")
	}
}

func TestEachLoadRunsItsOwnDelay(t *testing.T) {
	c := NewCatalog(10*time.Millisecond, zap.NewNop())

	<-c.Load(context.Background())

	// A later call is not served from a cache; it waits out the delay again.
	start := time.Now()
	if _, ok := <-c.Load(context.Background()); !ok {
		t.Fatal("TestEachLoadRunsItsOwnDelay: second load closed without a catalog")
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("TestEachLoadRunsItsOwnDelay: second load delivered after %v, want at least the configured delay", elapsed)
	}
}
