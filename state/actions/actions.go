// Package actions details the boutique.Actions used by the updaters to
// change the portfolio state.
package actions

import (
	"time"

	"github.com/johnsiilver/boutique"

	"cisbosium-trader/models"
)

const (
	// ActFetchStarted records that a refresh has been issued.
	ActFetchStarted = iota
	// ActApplySnapshot replaces the snapshot with a fetched one.
	ActApplySnapshot
	// ActFetchFailed records a failed refresh.
	ActFetchFailed
	// ActFetchSkipped settles a refresh that never contacted the service
	// (no session token).
	ActFetchSkipped
	// ActReset clears the state on logout.
	ActReset
)

// Fetch identifies one refresh cycle.
type Fetch struct {
	Seq uint64
}

// Snapshot carries a fetched portfolio together with the sequence of the
// refresh that produced it.
type Snapshot struct {
	Seq       uint64
	Portfolio models.Portfolio
	At        time.Time
}

// Failure carries the outcome of a refresh that did not produce a snapshot.
type Failure struct {
	Seq    uint64
	Reason string
}

// FetchStarted marks refresh seq as issued and the store as loading.
func FetchStarted(seq uint64) boutique.Action {
	return boutique.Action{Type: ActFetchStarted, Update: Fetch{Seq: seq}}
}

// ApplySnapshot replaces the whole snapshot with the fetched portfolio.
func ApplySnapshot(seq uint64, p models.Portfolio, at time.Time) boutique.Action {
	return boutique.Action{Type: ActApplySnapshot, Update: Snapshot{Seq: seq, Portfolio: p, At: at}}
}

// FetchFailed settles refresh seq without touching the snapshot.
func FetchFailed(seq uint64, reason string) boutique.Action {
	return boutique.Action{Type: ActFetchFailed, Update: Failure{Seq: seq, Reason: reason}}
}

// FetchSkipped settles refresh seq that was skipped for lack of a session.
func FetchSkipped(seq uint64) boutique.Action {
	return boutique.Action{Type: ActFetchSkipped, Update: Fetch{Seq: seq}}
}

// Reset returns the state to its zero value.
func Reset() boutique.Action {
	return boutique.Action{Type: ActReset, Update: nil}
}
