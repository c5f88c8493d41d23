package arbitrage

import "github.com/quantlink/algo/pkg/event"

// Router is the strategy's outbound port (spec §6 "Dispatcher port
// (strategy → router)"). In simulation it is wired straight into a
// matcher; live, into a gateway client. isLast hints batch boundaries
// to the transport and is advisory only — the core never depends on
// it for correctness.
type Router interface {
	SendCreateOrder(req event.CreateOrder, source uint8, isLast bool)
	SendModifyOrder(req event.ModifyOrder, source uint8, isLast bool)
	SendCancelOrder(req event.CancelOrder, source uint8, isLast bool)
	SendCancelAllOrders(req event.CancelAllOrders, source uint8)
}
