package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/quantlink/algo/pkg/event"
)

type recordingRouter struct{ creates int }

func (r *recordingRouter) SendCreateOrder(event.CreateOrder, uint8, bool)   { r.creates++ }
func (r *recordingRouter) SendModifyOrder(event.ModifyOrder, uint8, bool)   {}
func (r *recordingRouter) SendCancelOrder(event.CancelOrder, uint8, bool)   {}
func (r *recordingRouter) SendCancelAllOrders(event.CancelAllOrders, uint8) {}

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	inner := &recordingRouter{}
	r := New(inner, 2, 50*time.Millisecond)
	r.SetSender(func(string) error { return errors.New("send failed") })

	for i := 0; i < 5; i++ {
		r.SendCreateOrder(event.CreateOrder{}, 1, false)
	}
	if inner.creates != 0 {
		t.Fatalf("expected no sends to reach inner router, got %d", inner.creates)
	}
	if got := r.cb.State(); got != gobreaker.StateOpen {
		t.Fatalf("expected breaker open after consecutive failures, got %v", got)
	}
}

func TestBreakerPassesThroughOnSuccess(t *testing.T) {
	inner := &recordingRouter{}
	r := New(inner, 2, 50*time.Millisecond)
	r.SendCreateOrder(event.CreateOrder{}, 1, false)
	if inner.creates != 1 {
		t.Fatalf("expected 1 send through, got %d", inner.creates)
	}
}
