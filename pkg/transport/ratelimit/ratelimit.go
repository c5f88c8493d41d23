// Package ratelimit throttles outbound order traffic (spec §12
// "transport"): exchanges cap inbound order rates, and a naively fast
// arbitrage loop can otherwise blow through them on a wide re-peg.
// Wraps golang.org/x/time/rate's token bucket around an
// arbitrage.Router, dropping (not queuing) requests that would exceed
// the budget, since a delayed stale order is worse than a rejected one
// for this strategy.
package ratelimit

import (
	"log"

	"golang.org/x/time/rate"

	"github.com/quantlink/algo/pkg/arbitrage"
	"github.com/quantlink/algo/pkg/event"
)

// Router wraps an arbitrage.Router with a token-bucket limiter.
type Router struct {
	next    arbitrage.Router
	limiter *rate.Limiter
}

// New wraps next with a limiter allowing ratePerSec sustained requests
// and burst headroom up to burst.
func New(next arbitrage.Router, ratePerSec float64, burst int) *Router {
	return &Router{next: next, limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst)}
}

func (r *Router) allow(kind string) bool {
	if r.limiter.Allow() {
		return true
	}
	log.Printf("[transport/ratelimit] dropped %s: rate limit exceeded", kind)
	return false
}

func (r *Router) SendCreateOrder(req event.CreateOrder, source uint8, isLast bool) {
	if r.allow("create_order") {
		r.next.SendCreateOrder(req, source, isLast)
	}
}

func (r *Router) SendModifyOrder(req event.ModifyOrder, source uint8, isLast bool) {
	if r.allow("modify_order") {
		r.next.SendModifyOrder(req, source, isLast)
	}
}

func (r *Router) SendCancelOrder(req event.CancelOrder, source uint8, isLast bool) {
	// Cancels are never dropped: a suppressed cancel leaves a stray
	// live order, which is worse than exceeding the rate budget.
	r.next.SendCancelOrder(req, source, isLast)
}

func (r *Router) SendCancelAllOrders(req event.CancelAllOrders, source uint8) {
	r.next.SendCancelAllOrders(req, source)
}
