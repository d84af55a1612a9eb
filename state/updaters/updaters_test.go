package updaters

import (
	"runtime"
	"testing"
	"time"

	"github.com/kylelemons/godebug/pretty"
	"github.com/lukechampine/freeze"

	"cisbosium-trader/models"
	"cisbosium-trader/state/actions"
	"cisbosium-trader/state/data"
)

// supportedOS prevents the freeze-based tests from running on systems that
// cannot freeze memory.
func supportedOS() bool {
	switch runtime.GOOS {
	case "linux", "darwin":
		return true
	}
	return false
}

func frozenState(t *testing.T, s data.State) data.State {
	t.Helper()
	if len(s.Holdings) > 0 {
		s.Holdings = freeze.Slice(s.Holdings).([]models.StockHolding)
	}
	return s
}

func TestSnapshotFullReplacement(t *testing.T) {
	if !supportedOS() {
		return
	}

	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	prior := frozenState(t, data.State{
		Balance:      500,
		BalanceKnown: true,
		Holdings:     []models.StockHolding{{Symbol: "NVDA", Quantity: 9}},
		Loading:      true,
		Status:       data.StatusOK,
		IssuedSeq:    2,
		AppliedSeq:   1,
	})

	fetched := models.Portfolio{
		Balance:  994.50,
		Holdings: []models.StockHolding{{Symbol: "AAPL", Quantity: 5}},
	}
	got := Snapshot(prior, actions.ApplySnapshot(2, fetched, at)).(data.State)

	want := data.State{
		Balance:      994.50,
		BalanceKnown: true,
		Holdings:     []models.StockHolding{{Symbol: "AAPL", Quantity: 5}},
		Loading:      false,
		Status:       data.StatusOK,
		IssuedSeq:    2,
		AppliedSeq:   2,
		LastUpdated:  at,
	}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("TestSnapshotFullReplacement: -want/+got:\n%s", diff)
	}
}

func TestSnapshotDiscardsSupersededResponse(t *testing.T) {
	if !supportedOS() {
		return
	}

	prior := frozenState(t, data.State{
		Balance:      1000,
		BalanceKnown: true,
		Holdings:     []models.StockHolding{{Symbol: "MSFT", Quantity: 2}},
		Loading:      true,
		Status:       data.StatusOK,
		IssuedSeq:    5,
		AppliedSeq:   4,
	})

	// Response for refresh 3 arrives after refresh 5 was issued.
	late := models.Portfolio{Balance: 1, Holdings: []models.StockHolding{{Symbol: "GS", Quantity: 1}}}
	got := Snapshot(prior, actions.ApplySnapshot(3, late, time.Now())).(data.State)

	if diff := pretty.Compare(prior, got); diff != "" {
		t.Errorf("TestSnapshotDiscardsSupersededResponse: state changed, -want/+got:\n%s", diff)
	}
}

func TestFetchLifecycle(t *testing.T) {
	if !supportedOS() {
		return
	}

	tests := []struct {
		desc   string
		action func() interface{}
		want   data.State
	}{
		{
			desc: "started raises issued seq and loading",
			action: func() interface{} {
				return FetchLifecycle(data.State{IssuedSeq: 1}, actions.FetchStarted(2))
			},
			want: data.State{IssuedSeq: 2, Loading: true},
		},
		{
			desc: "failure marks loaded data stale and keeps it",
			action: func() interface{} {
				prior := data.State{
					Balance:      750,
					BalanceKnown: true,
					Holdings:     []models.StockHolding{{Symbol: "V", Quantity: 4}},
					Loading:      true,
					Status:       data.StatusOK,
					IssuedSeq:    3,
					AppliedSeq:   2,
				}
				return FetchLifecycle(prior, actions.FetchFailed(3, "service unavailable"))
			},
			want: data.State{
				Balance:      750,
				BalanceKnown: true,
				Holdings:     []models.StockHolding{{Symbol: "V", Quantity: 4}},
				Loading:      false,
				Status:       data.StatusStale,
				IssuedSeq:    3,
				AppliedSeq:   2,
				LastError:    "service unavailable",
			},
		},
		{
			desc: "failure for superseded refresh is a no-op",
			action: func() interface{} {
				prior := data.State{Loading: true, IssuedSeq: 4}
				return FetchLifecycle(prior, actions.FetchFailed(2, "timeout"))
			},
			want: data.State{Loading: true, IssuedSeq: 4},
		},
		{
			desc: "skip settles loading with empty state",
			action: func() interface{} {
				return FetchLifecycle(data.State{Loading: true, IssuedSeq: 1}, actions.FetchSkipped(1))
			},
			want: data.State{IssuedSeq: 1},
		},
		{
			desc: "reset zeroes the state",
			action: func() interface{} {
				prior := data.State{
					Balance:      10,
					BalanceKnown: true,
					Holdings:     []models.StockHolding{{Symbol: "C", Quantity: 1}},
					Status:       data.StatusOK,
					IssuedSeq:    9,
					AppliedSeq:   9,
				}
				return FetchLifecycle(prior, actions.Reset())
			},
			want: data.State{},
		},
	}

	for _, test := range tests {
		got := test.action().(data.State)
		if diff := pretty.Compare(test.want, got); diff != "" {
			t.Errorf("TestFetchLifecycle(%s): -want/+got:\n%s", test.desc, diff)
		}
	}
}
