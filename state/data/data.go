// Package data holds the portfolio state object stored in the boutique
// instance shared by every view.
package data

import (
	"time"

	"cisbosium-trader/models"
)

// Status describes how trustworthy the current snapshot is.
type Status int

const (
	// StatusUnknown means no fetch has completed yet.
	StatusUnknown Status = iota
	// StatusOK means the snapshot reflects the last successful fetch.
	StatusOK
	// StatusStale means the most recent fetch failed and the displayed
	// snapshot is from an earlier success.
	StatusStale
)

// String implements fmt.Stringer for display.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusStale:
		return "stale"
	}
	return "unknown"
}

// State is the shared portfolio snapshot. It is replaced wholesale by a
// successful refresh and never mutated by local arithmetic.
type State struct {
	// Balance is the cash balance reported by the service. BalanceKnown is
	// false until the first successful fetch.
	Balance      float64
	BalanceKnown bool

	// Holdings are the user's positions as of the last successful fetch.
	Holdings []models.StockHolding

	// Loading is true while a refresh is outstanding.
	Loading bool

	// Status qualifies the snapshot for display.
	Status Status

	// IssuedSeq is the sequence number of the most recently issued refresh;
	// AppliedSeq is the sequence of the response currently applied.
	// Responses whose sequence is not the most recently issued are
	// discarded, so a slow early response can never overwrite a later one.
	IssuedSeq  uint64
	AppliedSeq uint64

	// LastUpdated is the arrival time of the applied snapshot; LastError
	// is the reason the snapshot is stale, if it is.
	LastUpdated time.Time
	LastError   string
}
