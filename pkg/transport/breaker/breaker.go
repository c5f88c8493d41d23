// Package breaker trips on a string of failed sends to a live gateway
// (spec §12 "transport"), so a dead downstream connection fails fast
// instead of piling up retries mid-arbitrage-attempt. Wraps
// sony/gobreaker around an arbitrage.Router; since Router's methods
// return no error, "failure" is reported via a caller-supplied error
// sink the wrapped transport feeds on a send failure.
package breaker

import (
	"errors"
	"log"
	"time"

	"github.com/sony/gobreaker"

	"github.com/quantlink/algo/pkg/arbitrage"
	"github.com/quantlink/algo/pkg/event"
)

// ErrOpen names the open-circuit condition. Router does not return it:
// while the breaker is open, guard logs gobreaker's own open-state
// error and skips the send.
var ErrOpen = errors.New("breaker: circuit open")

// Sender is the narrow send operation a live transport performs. The
// hook Router actually runs behind the breaker is the one installed by
// SetSender, a single func(kind string) error shared by all request
// kinds.
type Sender func() error

// Router wraps an arbitrage.Router so each send attempt trips a shared
// circuit breaker; Router itself never returns errors (matching
// arbitrage.Router's signature), so trips are logged, and the
// underlying send is simply skipped while the breaker is open.
type Router struct {
	next arbitrage.Router
	cb   *gobreaker.CircuitBreaker
	// send performs the actual network call for a request kind; in the
	// default construction it always succeeds (in-process wiring has
	// nothing to fail), but a transport layered underneath (e.g. a gRPC
	// gateway client) can set this to report real send failures.
	send func(kind string) error
}

// New builds a Router whose breaker opens after consecutiveFailures in
// a row and waits openFor before allowing a trial request through.
func New(next arbitrage.Router, consecutiveFailures uint32, openFor time.Duration) *Router {
	r := &Router{next: next}
	r.send = func(string) error { return nil }
	r.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "arbitrage-router",
		Timeout: openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= consecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[transport/breaker] %s: %s -> %s", name, from, to)
		},
	})
	return r
}

// SetSender overrides the send hook a live transport uses to report
// failures into the breaker.
func (r *Router) SetSender(send func(kind string) error) {
	r.send = send
}

func (r *Router) guard(kind string, forward func()) {
	_, err := r.cb.Execute(func() (interface{}, error) {
		if err := r.send(kind); err != nil {
			return nil, err
		}
		forward()
		return nil, nil
	})
	if err != nil {
		log.Printf("[transport/breaker] %s blocked: %v", kind, err)
	}
}

func (r *Router) SendCreateOrder(req event.CreateOrder, source uint8, isLast bool) {
	r.guard("create_order", func() { r.next.SendCreateOrder(req, source, isLast) })
}

func (r *Router) SendModifyOrder(req event.ModifyOrder, source uint8, isLast bool) {
	r.guard("modify_order", func() { r.next.SendModifyOrder(req, source, isLast) })
}

func (r *Router) SendCancelOrder(req event.CancelOrder, source uint8, isLast bool) {
	r.guard("cancel_order", func() { r.next.SendCancelOrder(req, source, isLast) })
}

func (r *Router) SendCancelAllOrders(req event.CancelAllOrders, source uint8) {
	r.guard("cancel_all_orders", func() { r.next.SendCancelAllOrders(req, source) })
}
