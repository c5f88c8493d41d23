// Package position maintains a signed running position from trade and
// position-update events, per spec §2 "PositionTracker".
//
// C++: roq::algo::tools::PositionTracker (referenced by
// original_source/src/roq/algo/arbitrage/instrument.hpp)
package position

import "github.com/quantlink/algo/pkg/event"

// Tracker keeps a single signed position (positive = long, negative =
// short) derived from fills and authoritative position snapshots.
type Tracker struct {
	position float64
	synced   bool
}

// New creates an empty, unsynced tracker.
func New() *Tracker {
	return &Tracker{}
}

// Position returns the current signed position. Before the first
// update it is 0, matching a flat starting assumption.
func (t *Tracker) Position() float64 {
	return t.position
}

// IsSynced reports whether an authoritative PositionUpdate has been
// applied; until then, the running total is fill-derived only and may
// not reflect pre-existing exchange state.
func (t *Tracker) IsSynced() bool {
	return t.synced
}

// OnTradeUpdate adjusts the running position by the fill's signed
// quantity. side determines the sign: BUY increases, SELL decreases.
func (t *Tracker) OnTradeUpdate(side event.Side, quantity float64) {
	switch side {
	case event.SideBuy:
		t.position += quantity
	case event.SideSell:
		t.position -= quantity
	}
}

// OnPositionUpdate replaces the running position with an authoritative
// snapshot from the gateway/exchange.
func (t *Tracker) OnPositionUpdate(position float64) {
	t.position = position
	t.synced = true
}

// Reset clears the tracker back to its zero state (used when a source
// disconnects and re-downloads, spec §4.4 "Disconnected").
func (t *Tracker) Reset() {
	t.position = 0
	t.synced = false
}
