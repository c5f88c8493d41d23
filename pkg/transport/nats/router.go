package nats

import (
	"log"

	"github.com/quantlink/algo/pkg/event"
)

// Router publishes the strategy's outbound order requests onto NATS
// for a live gateway to pick up, implementing arbitrage.Router.
// sources maps a request's source id to the account/exchange/symbol
// that source's gateway listens on; sources not present are dropped
// with a log line rather than panicking, since the arbitrage layer has
// no way to pre-validate a source id against a live subject table.
type Router struct {
	conn    *Conn
	sources map[uint8]legAddress
}

type legAddress struct {
	account, exchange, symbol string
}

// NewRouter builds a Router that publishes order requests keyed by
// source id.
func NewRouter(conn *Conn) *Router {
	return &Router{conn: conn, sources: make(map[uint8]legAddress)}
}

// Bind registers the (account, exchange, symbol) a given source id's
// orders should be published to.
func (r *Router) Bind(source uint8, account, exchange, symbol string) {
	r.sources[source] = legAddress{account: account, exchange: exchange, symbol: symbol}
}

func (r *Router) addr(source uint8) (legAddress, bool) {
	a, ok := r.sources[source]
	return a, ok
}

func (r *Router) publish(source uint8, kind string, payload interface{}) {
	addr, ok := r.addr(source)
	if !ok {
		log.Printf("[transport/nats] router: no binding for source %d, dropping %s", source, kind)
		return
	}
	subject := orderSubject(addr.account, addr.exchange, addr.symbol)
	if err := r.conn.publish(subject, event.MessageInfo{Source: source}, kind, payload); err != nil {
		log.Printf("[transport/nats] router: publish %s failed: %v", kind, err)
	}
}

func (r *Router) SendCreateOrder(req event.CreateOrder, source uint8, isLast bool) {
	r.publish(source, "create_order", req)
}
func (r *Router) SendModifyOrder(req event.ModifyOrder, source uint8, isLast bool) {
	r.publish(source, "modify_order", req)
}
func (r *Router) SendCancelOrder(req event.CancelOrder, source uint8, isLast bool) {
	r.publish(source, "cancel_order", req)
}
func (r *Router) SendCancelAllOrders(req event.CancelAllOrders, source uint8) {
	r.publish(source, "cancel_all_orders", req)
}
