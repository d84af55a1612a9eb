// Package portfolio owns the shared balance/holdings snapshot. A single
// Store instance is handed to every view; views subscribe to changes rather
// than fetching on their own.
package portfolio

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/johnsiilver/boutique"
	"go.uber.org/zap"

	"cisbosium-trader/models"
	"cisbosium-trader/state"
	"cisbosium-trader/state/actions"
	"cisbosium-trader/state/data"
)

// Fetcher retrieves the authoritative snapshot from the remote service.
type Fetcher interface {
	Holdings(ctx context.Context) (models.Portfolio, error)
}

// Sessions reports the current bearer token; an empty token makes every
// refresh settle without touching the network.
type Sessions interface {
	CurrentToken() string
}

// Store is the shared portfolio state. All mutation goes through Refresh
// (full replacement) or Reset; there is no local arithmetic on the balance.
type Store struct {
	store    *boutique.Store
	fetcher  Fetcher
	sessions Sessions
	log      *zap.Logger

	// seq numbers refreshes in issue order; see Refresh.
	seq atomic.Uint64
}

// New creates the store and issues the initial refresh in the background,
// so consumers mounted right away see loading state first.
func New(fetcher Fetcher, sessions Sessions, log *zap.Logger) (*Store, error) {
	bst, err := state.New()
	if err != nil {
		return nil, err
	}

	s := &Store{
		store:    bst,
		fetcher:  fetcher,
		sessions: sessions,
		log:      log,
	}

	go func() {
		_ = s.Refresh(context.Background())
	}()

	return s, nil
}

// Refresh fetches balance and holdings and replaces the snapshot wholesale.
// Overlapping calls are allowed; only the most recently issued refresh may
// apply its outcome, so a slow early response never overwrites a later one.
// Without a session token the fetch is skipped and loading settles to false.
func (s *Store) Refresh(ctx context.Context) error {
	seq := s.seq.Add(1)
	if err := s.store.Perform(actions.FetchStarted(seq)); err != nil {
		return err
	}

	if s.sessions.CurrentToken() == "" {
		s.log.Debug("portfolio refresh skipped, no session")
		return s.store.Perform(actions.FetchSkipped(seq))
	}

	p, err := s.fetcher.Holdings(ctx)
	if err != nil {
		s.log.Warn("portfolio refresh failed", zap.Uint64("seq", seq), zap.Error(err))
		if perr := s.store.Perform(actions.FetchFailed(seq, err.Error())); perr != nil {
			return perr
		}
		return err
	}

	s.log.Debug("portfolio refreshed",
		zap.Uint64("seq", seq),
		zap.Float64("balance", p.Balance),
		zap.Int("holdings", len(p.Holdings)))
	return s.store.Perform(actions.ApplySnapshot(seq, p, time.Now()))
}

// Reset clears the snapshot; called on logout.
func (s *Store) Reset() error {
	return s.store.Perform(actions.Reset())
}

// State returns the current snapshot.
func (s *Store) State() data.State {
	return s.store.State().Data.(data.State)
}

// Subscribe registers for change signals on one state field, or
// boutique.Any for all changes. The returned CancelFunc must be called on
// teardown.
func (s *Store) Subscribe(field string) (chan boutique.Signal, boutique.CancelFunc, error) {
	return s.store.Subscribe(field)
}
