// Package state constructs the boutique.Store holding the shared portfolio
// snapshot. Every view reads from this single store; writes happen only
// through the actions/updaters pair.
package state

import (
	"github.com/johnsiilver/boutique"

	"cisbosium-trader/state/data"
	"cisbosium-trader/state/updaters"
)

// New is the constructor for the portfolio boutique.Store. The initial
// state is loading with no balance and no holdings.
func New() (*boutique.Store, error) {
	d := data.State{
		Loading: true,
	}

	return boutique.New(d, updaters.Modifiers, nil)
}
