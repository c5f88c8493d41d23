package backtest

import (
	"log"

	"github.com/quantlink/algo/pkg/arbitrage"
	"github.com/quantlink/algo/pkg/event"
	"github.com/quantlink/algo/pkg/matcher"
	"github.com/quantlink/algo/pkg/reporter"
)

// simRouter implements arbitrage.Router by calling straight into the
// matching leg's matcher.Handler, skipping any wire encoding. isLast
// is accepted (it matches the interface) but unused: an in-process
// call has no batch boundary to hint.
//
// event.CreateOrder carries its own exchange/symbol, so a create
// resolves the exact leg directly even when several legs share one
// source. event.ModifyOrder/CancelOrder carry only an order id, so
// orderLegs remembers each live order's leg (keyed globally, since
// arbitrage.Simple hands out globally unique order ids) to route
// those back to the matcher that created it. CancelAllOrders does not
// use orderLegs; it sweeps by source (see SendCancelAllOrders).
type simRouter struct {
	engine    *Engine
	orderLegs map[uint64]legKey
}

func (r *simRouter) rememberOrder(orderID uint64, source uint8, exchange, symbol string) {
	if r.orderLegs == nil {
		r.orderLegs = make(map[uint64]legKey)
	}
	r.orderLegs[orderID] = legKey{source: source, exchange: exchange, symbol: symbol}
}

func (r *simRouter) SendCreateOrder(req event.CreateOrder, source uint8, isLast bool) {
	h, ok := r.engine.matcherFor(source, req.Exchange, req.Symbol)
	if !ok {
		log.Printf("[backtest] create order for unknown leg %d/%s/%s dropped", source, req.Exchange, req.Symbol)
		return
	}
	r.rememberOrder(req.OrderID, source, req.Exchange, req.Symbol)
	h.HandleCreateOrder(event.MessageInfo{Source: source}, req)
}

func (r *simRouter) SendModifyOrder(req event.ModifyOrder, source uint8, isLast bool) {
	key, ok := r.orderLegs[req.OrderID]
	if !ok {
		log.Printf("[backtest] modify order for unknown order %d dropped", req.OrderID)
		return
	}
	h, ok := r.engine.matcherFor(key.source, key.exchange, key.symbol)
	if !ok {
		log.Printf("[backtest] modify order for unknown leg %+v dropped", key)
		return
	}
	h.HandleModifyOrder(event.MessageInfo{Source: source}, req)
}

func (r *simRouter) SendCancelOrder(req event.CancelOrder, source uint8, isLast bool) {
	key, ok := r.orderLegs[req.OrderID]
	if !ok {
		log.Printf("[backtest] cancel order for unknown order %d dropped", req.OrderID)
		return
	}
	h, ok := r.engine.matcherFor(key.source, key.exchange, key.symbol)
	if !ok {
		log.Printf("[backtest] cancel order for unknown leg %+v dropped", key)
		return
	}
	h.HandleCancelOrder(event.MessageInfo{Source: source}, req)
}

// SendCancelAllOrders carries no exchange/symbol, so it sweeps every
// leg matcher registered under source: a source is usually one
// gateway connection, and "cancel all" on it is meant to hit every
// symbol the strategy trades through that gateway.
func (r *simRouter) SendCancelAllOrders(req event.CancelAllOrders, source uint8) {
	for key, h := range r.engine.matchers {
		if key.source != source {
			continue
		}
		h.HandleCancelAllOrders(event.MessageInfo{Source: source}, req)
	}
}

var _ arbitrage.Router = (*simRouter)(nil)

// simDispatcher implements matcher.Dispatcher for one leg: market-data
// events the matcher forwards are dropped by the embedded
// NopDispatcher, since Engine already fans each market-data event out
// to the strategy directly; order-lifecycle events feed the strategy's
// order-state machine and, on a trade, record the fill.
type simDispatcher struct {
	matcher.NopDispatcher
	strategy *arbitrage.Simple
	recorder *reporter.Recorder
	exchange string
	symbol   string
}

func (d *simDispatcher) OnOrderAck(info event.MessageInfo, ack event.OrderAck) {
	d.strategy.HandleOrderAck(info, ack)
}

func (d *simDispatcher) OnOrderUpdate(info event.MessageInfo, upd event.OrderUpdate) {
	d.strategy.HandleOrderUpdate(info, upd)
}

func (d *simDispatcher) OnTradeUpdate(info event.MessageInfo, trd event.TradeUpdate) {
	d.strategy.HandleTradeUpdate(info, trd)
	if leg, ok := d.legForOrder(trd.OrderID); ok {
		d.recorder.Record(d.exchange, d.symbol, leg.Side, trd.Fill.Price, trd.Fill.Quantity, trd.Fill.TradeID)
	}
}

// legForOrder recovers the side of the order a fill belongs to by
// scanning the strategy's legs for the one currently holding this
// order id; by the time OnTradeUpdate fires the strategy has not yet
// cleared the leg (HandleOrderUpdate, which clears it on terminal
// status, is always dispatched after the paired HandleTradeUpdate for
// a fully-filled order in these matchers).
func (d *simDispatcher) legForOrder(orderID uint64) (*arbitrage.Instrument, bool) {
	for i := 0; i < d.strategy.NumLegs(); i++ {
		leg := d.strategy.Leg(i)
		if leg.OrderID == orderID {
			return leg, true
		}
	}
	return nil, false
}

func (d *simDispatcher) OnCancelAllOrdersAck(event.MessageInfo, event.CancelAllOrdersAck) {}

var _ matcher.Dispatcher = (*simDispatcher)(nil)
