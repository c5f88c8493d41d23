// Package ordercache owns the matcher-side Order records and hands out
// monotonic trade ids, per spec §3 "Order (matcher)" and §4.5
// "OrderCache (external contract)".
//
// C++: original_source/src/roq/algo/matcher/order.hpp (an all but empty
// forward declaration in the source; the shape below is reconstructed
// from how original_source/src/roq/algo/matcher/simple.hpp and
// queue_position_simple.hpp use it)
package ordercache

import "github.com/quantlink/algo/pkg/event"

// Order is a live simulated order. Ownership lives in Cache; the
// matcher and strategy both borrow it mutably for the duration of a
// single event handler, never across handler calls.
type Order struct {
	OrderID  uint64
	Account  string
	Exchange string
	Symbol   string
	Side     event.Side

	Quantity          float64 // original requested quantity
	RemainingQuantity float64
	TradedQuantity    float64
	TotalCost         float64 // sum of price * fill-qty

	Status            event.OrderStatus
	MaxRequestVersion uint32

	Price float64 // current limit price (post-modify)

	// Ahead is the Queue-Position matcher's estimate of resting volume
	// in front of this order at its price level; unused (left at NaN)
	// by the Simple matcher. Spec §3 "Resting-order index
	// (Queue-Position)".
	Ahead float64

	// sequence is the monotonic insertion-order tiebreaker used by the
	// resting-order index; a modify reissues it (spec §4.2 "Modify
	// order" — loses priority), so it is distinct from OrderID.
	sequence uint64
}

// IsTerminal reports whether no further mutation is permitted.
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// ApplyFill records a complete or partial fill, maintaining the
// invariant traded_quantity + remaining_quantity == quantity and that
// total_cost is monotone non-decreasing (spec §3).
func (o *Order) ApplyFill(price, quantity float64) event.Fill {
	o.TradedQuantity += quantity
	o.RemainingQuantity -= quantity
	o.TotalCost += price * quantity
	return event.Fill{Price: price, Quantity: quantity}
}

// ToOrderUpdate renders the order's current state as the wire event
// emitted after any mutation.
func (o *Order) ToOrderUpdate() event.OrderUpdate {
	return event.OrderUpdate{
		OrderID:           o.OrderID,
		Account:           o.Account,
		Exchange:          o.Exchange,
		Symbol:            o.Symbol,
		Side:              o.Side,
		Quantity:          o.Quantity,
		RemainingQuantity: o.RemainingQuantity,
		TradedQuantity:    o.TradedQuantity,
		TotalCost:         o.TotalCost,
		Status:            o.Status,
		MaxRequestVersion: o.MaxRequestVersion,
	}
}

// Sequence returns the insertion-order tiebreaker used by the
// resting-order index.
func (o *Order) Sequence() uint64 { return o.sequence }
