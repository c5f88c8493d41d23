package nats

import (
	"log"

	"github.com/quantlink/algo/pkg/event"
)

// Dispatcher publishes a matcher's outbound events onto NATS instead
// of invoking in-process callbacks, so a matcher can run in one
// process while strategies subscribe from another.
type Dispatcher struct {
	conn     *Conn
	exchange string
	symbol   string
}

// NewDispatcher builds a Dispatcher that publishes on the
// (exchange, symbol) subject pair.
func NewDispatcher(conn *Conn, exchange, symbol string) *Dispatcher {
	return &Dispatcher{conn: conn, exchange: exchange, symbol: symbol}
}

func (d *Dispatcher) mdSubject() string { return marketDataSubject(d.exchange, d.symbol) }

func (d *Dispatcher) publish(info event.MessageInfo, kind string, payload interface{}) {
	if err := d.conn.publish(d.mdSubject(), info, kind, payload); err != nil {
		log.Printf("[transport/nats] publish %s failed: %v", kind, err)
	}
}

func (d *Dispatcher) OnReferenceData(info event.MessageInfo, ref event.ReferenceData) {
	d.publish(info, "reference_data", ref)
}
func (d *Dispatcher) OnMarketStatus(info event.MessageInfo, status event.MarketStatus) {
	d.publish(info, "market_status", status)
}
func (d *Dispatcher) OnTopOfBook(info event.MessageInfo, tob event.TopOfBook) {
	d.publish(info, "top_of_book", tob)
}
func (d *Dispatcher) OnMarketByPriceUpdate(info event.MessageInfo, mbp event.MarketByPriceUpdate) {
	d.publish(info, "market_by_price_update", mbp)
}
func (d *Dispatcher) OnMarketByOrderUpdate(info event.MessageInfo, mbo event.MarketByOrderUpdate) {
	d.publish(info, "market_by_order_update", mbo)
}
func (d *Dispatcher) OnTradeSummary(info event.MessageInfo, ts event.TradeSummary) {
	d.publish(info, "trade_summary", ts)
}
func (d *Dispatcher) OnStatisticsUpdate(info event.MessageInfo, su event.StatisticsUpdate) {
	d.publish(info, "statistics_update", su)
}

func (d *Dispatcher) orderSubject(account string) string {
	return orderSubject(account, d.exchange, d.symbol)
}

func (d *Dispatcher) OnOrderAck(info event.MessageInfo, ack event.OrderAck) {
	if err := d.conn.publish(d.orderSubject(""), info, "order_ack", ack); err != nil {
		log.Printf("[transport/nats] publish order_ack failed: %v", err)
	}
}
func (d *Dispatcher) OnOrderUpdate(info event.MessageInfo, upd event.OrderUpdate) {
	if err := d.conn.publish(d.orderSubject(upd.Account), info, "order_update", upd); err != nil {
		log.Printf("[transport/nats] publish order_update failed: %v", err)
	}
}
func (d *Dispatcher) OnTradeUpdate(info event.MessageInfo, trd event.TradeUpdate) {
	if err := d.conn.publish(d.orderSubject(""), info, "trade_update", trd); err != nil {
		log.Printf("[transport/nats] publish trade_update failed: %v", err)
	}
}
func (d *Dispatcher) OnCancelAllOrdersAck(info event.MessageInfo, ack event.CancelAllOrdersAck) {
	if err := d.conn.publish(d.orderSubject(""), info, "cancel_all_orders_ack", ack); err != nil {
		log.Printf("[transport/nats] publish cancel_all_orders_ack failed: %v", err)
	}
}
