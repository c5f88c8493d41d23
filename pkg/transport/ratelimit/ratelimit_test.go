package ratelimit

import (
	"testing"

	"github.com/quantlink/algo/pkg/event"
)

type recordingRouter struct {
	creates int
	cancels int
}

func (r *recordingRouter) SendCreateOrder(event.CreateOrder, uint8, bool) { r.creates++ }
func (r *recordingRouter) SendModifyOrder(event.ModifyOrder, uint8, bool) {}
func (r *recordingRouter) SendCancelOrder(event.CancelOrder, uint8, bool) { r.cancels++ }
func (r *recordingRouter) SendCancelAllOrders(event.CancelAllOrders, uint8) {}

func TestCreatesAreThrottled(t *testing.T) {
	inner := &recordingRouter{}
	r := New(inner, 1, 1)
	for i := 0; i < 10; i++ {
		r.SendCreateOrder(event.CreateOrder{}, 1, false)
	}
	if inner.creates >= 10 {
		t.Fatalf("expected throttling to drop some creates, got %d/10", inner.creates)
	}
	if inner.creates < 1 {
		t.Fatalf("expected at least the initial burst to pass, got %d", inner.creates)
	}
}

func TestCancelsAreNeverThrottled(t *testing.T) {
	inner := &recordingRouter{}
	r := New(inner, 1, 1)
	for i := 0; i < 10; i++ {
		r.SendCancelOrder(event.CancelOrder{}, 1, false)
	}
	if inner.cancels != 10 {
		t.Fatalf("expected all 10 cancels through, got %d", inner.cancels)
	}
}
