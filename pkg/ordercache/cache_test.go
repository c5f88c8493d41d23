package ordercache

import (
	"testing"

	"github.com/quantlink/algo/pkg/event"
)

func TestPutGetOrder(t *testing.T) {
	c := NewMemoryCache()
	o := &Order{OrderID: 1, Quantity: 2, RemainingQuantity: 2, Status: event.OrderStatusSent}
	if !c.PutOrder(o) {
		t.Fatalf("expected first PutOrder to succeed")
	}
	if c.PutOrder(&Order{OrderID: 1}) {
		t.Fatalf("expected duplicate OrderID to be rejected")
	}
	var seen *Order
	if !c.GetOrder(1, func(got *Order) { seen = got }) {
		t.Fatalf("expected order 1 to be found")
	}
	if seen.OrderID != 1 {
		t.Fatalf("visitor saw wrong order: %+v", seen)
	}
	if c.GetOrder(2, func(*Order) {}) {
		t.Fatalf("unknown order id should not be found")
	}
}

func TestNextTradeIDMonotonic(t *testing.T) {
	c := NewMemoryCache()
	a := c.NextTradeID()
	b := c.NextTradeID()
	if b <= a {
		t.Fatalf("trade ids must be strictly increasing: %d then %d", a, b)
	}
}

func TestApplyFillInvariant(t *testing.T) {
	o := &Order{Quantity: 5, RemainingQuantity: 5}
	o.ApplyFill(10.0, 2)
	if o.TradedQuantity+o.RemainingQuantity != o.Quantity {
		t.Fatalf("invariant violated: traded=%v remaining=%v quantity=%v", o.TradedQuantity, o.RemainingQuantity, o.Quantity)
	}
	if o.TotalCost != 20.0 {
		t.Fatalf("got total_cost=%v, want 20.0", o.TotalCost)
	}
}

func TestReissueBumpsSequence(t *testing.T) {
	c := NewMemoryCache()
	a := &Order{OrderID: 1}
	b := &Order{OrderID: 2}
	c.PutOrder(a)
	c.PutOrder(b)
	if a.Sequence() >= b.Sequence() {
		t.Fatalf("expected a to be inserted before b")
	}
	c.Reissue(a)
	if a.Sequence() <= b.Sequence() {
		t.Fatalf("expected reissue to move a behind b in sequence order")
	}
}
