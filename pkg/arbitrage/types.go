// Package arbitrage implements the Simple multi-leg arbitrage strategy
// of spec §4.4: it monitors spreads across N≥2 instruments, decides
// when to enter/exit the spread, and drives orders through a Router
// (in simulation, a matcher; live, a gateway).
//
// C++: original_source/src/roq/algo/arbitrage/simple.hpp,
// original_source/src/roq/algo/arbitrage/instrument.hpp
package arbitrage

import (
	"fmt"
	"time"

	"github.com/quantlink/algo/pkg/event"
	"github.com/quantlink/algo/pkg/marketdata"
	"github.com/quantlink/algo/pkg/position"
)

// OrderState is a leg's order-slot state machine (spec §3 "Instrument
// (strategy)"): only one order_id may be associated with a leg at any
// time.
//
// C++: roq::algo::arbitrage::OrderState (original_source's
// arbitrage/instrument.hpp)
type OrderState int8

const (
	OrderStateIdle OrderState = iota
	OrderStateCreate
	OrderStateWorking
	OrderStateCancel
)

func (s OrderState) String() string {
	switch s {
	case OrderStateCreate:
		return "CREATE"
	case OrderStateWorking:
		return "WORKING"
	case OrderStateCancel:
		return "CANCEL"
	default:
		return "IDLE"
	}
}

// Leg is one instrument's static configuration (spec §6
// "Configuration (strategy)"). Multiplier defaults to 1 when unset;
// SPEC_FULL.md §12 supplements the source's "relative multiplier"
// wording with an explicit, optional field rather than assuming every
// leg trades 1:1.
type Leg struct {
	Source         uint8
	Account        string
	Exchange       string
	Symbol         string
	PositionEffect string
	MarginMode     string
	TimeInForce    string
	Multiplier     float64
}

func (l Leg) multiplier() float64 {
	if l.Multiplier == 0 {
		return 1
	}
	return l.Multiplier
}

// Parameters are the strategy's key/value-parsed tunables (spec §6).
type Parameters struct {
	MarketDataSource event.MarketDataSource
	MaxAge           time.Duration
	Threshold        float64
	Quantity0        float64
	MinPosition0     float64
	MaxPosition0     float64
	PublishSource    uint8
	StrategyID       string
}

// Instrument is the per-leg runtime container: identity, an owned
// MarketData, an owned PositionTracker, and the order-state slot
// (spec §3).
type Instrument struct {
	Leg Leg

	MarketData *marketdata.MarketData
	Position   *position.Tracker

	OrderState OrderState
	OrderID    uint64
	// Side is the side of the current (or most recently terminal) order
	// on this leg; TradeUpdate fills carry no side of their own, so this
	// is how position sign is recovered (spec §3 Order has Side, but the
	// strategy's Instrument only borrows it for the life of an attempt).
	Side event.Side

	// peers holds the other leg indices armed in the same attempt, so a
	// reject on one leg can cancel its siblings (spec §4.4 "Failure
	// semantics").
	peers []int
	// cancelOnAccept is set when this leg's sibling was rejected before
	// this leg's own CREATE had acked; the cancel is issued as soon as
	// the delayed ACCEPTED ack arrives.
	cancelOnAccept bool
}

func newInstrument(leg Leg, source event.MarketDataSource) *Instrument {
	return &Instrument{
		Leg:        leg,
		MarketData: marketdata.New(source),
		Position:   position.New(),
	}
}

// Reset clears the leg's order slot and position view, used when its
// source disconnects (spec §4.4 "Disconnected").
func (i *Instrument) Reset() {
	i.OrderState = OrderStateIdle
	i.OrderID = 0
	i.Position.Reset()
}

func (i *Instrument) isIdle() bool { return i.OrderState == OrderStateIdle }

// String renders a one-line diagnostic summary, the idiomatic Go
// analogue of the source's per-record fmt formatter (SPEC_FULL.md §12
// "Instrument.format_helper-style diagnostics").
func (i *Instrument) String() string {
	return fmt.Sprintf("%s:%s state=%s pos=%g", i.Leg.Exchange, i.Leg.Symbol, i.OrderState, i.Position.Position())
}
