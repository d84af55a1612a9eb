// Package updaters holds the boutique.Modifier set for the portfolio store.
// Each updater works on a copy of the state; reference types are duplicated
// before being stored.
package updaters

import (
	"github.com/johnsiilver/boutique"

	"cisbosium-trader/models"
	"cisbosium-trader/state/actions"
	"cisbosium-trader/state/data"
)

// Modifiers is the combined boutique.Modifiers for the store.
var Modifiers = boutique.NewModifiers(FetchLifecycle, Snapshot)

// FetchLifecycle handles the bookkeeping around a refresh: issuing,
// settling on failure or skip, and resetting on logout.
func FetchLifecycle(state interface{}, action boutique.Action) interface{} {
	s := state.(data.State)

	switch action.Type {
	case actions.ActFetchStarted:
		f := action.Update.(actions.Fetch)
		if f.Seq > s.IssuedSeq {
			s.IssuedSeq = f.Seq
		}
		s.Loading = true
	case actions.ActFetchFailed:
		f := action.Update.(actions.Failure)
		if f.Seq != s.IssuedSeq {
			// A newer refresh has been issued; this outcome is obsolete.
			break
		}
		s.Loading = false
		s.LastError = f.Reason
		if s.BalanceKnown {
			s.Status = data.StatusStale
		}
	case actions.ActFetchSkipped:
		f := action.Update.(actions.Fetch)
		if f.Seq != s.IssuedSeq {
			break
		}
		s.Loading = false
	case actions.ActReset:
		s = data.State{}
	}
	return s
}

// Snapshot handles actions.ActApplySnapshot. The snapshot is applied only
// when it belongs to the most recently issued refresh; late responses from
// superseded refreshes are discarded whole.
func Snapshot(state interface{}, action boutique.Action) interface{} {
	s := state.(data.State)

	switch action.Type {
	case actions.ActApplySnapshot:
		snap := action.Update.(actions.Snapshot)
		if snap.Seq != s.IssuedSeq {
			break
		}

		holdings := make([]models.StockHolding, len(snap.Portfolio.Holdings))
		copy(holdings, snap.Portfolio.Holdings)

		s.Balance = snap.Portfolio.Balance
		s.BalanceKnown = true
		s.Holdings = holdings
		s.Loading = false
		s.Status = data.StatusOK
		s.AppliedSeq = snap.Seq
		s.LastUpdated = snap.At
		s.LastError = ""
	}
	return s
}
