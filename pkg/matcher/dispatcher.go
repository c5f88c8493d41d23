// Package matcher simulates a per-(source, exchange, symbol) limit
// order book: it derives a top-of-book from recorded market data and
// matches create/modify/cancel requests against it, per spec §4.2
// "Simple Matcher" and §4.3 "Queue-Position Simple Matcher".
//
// C++: original_source/src/roq/algo/matcher/simple.hpp,
// queue_position_simple.hpp
package matcher

import (
	"github.com/quantlink/algo/pkg/event"
)

// Dispatcher is the matcher's outbound port (spec §6 "Dispatcher port
// (matcher → consumer)"). All market-data events are forwarded
// verbatim; order-lifecycle events are synthesized by the matcher.
//
// Mirrors the C++ source's inheritance-heavy dispatch (one virtual
// overload per event type) as a flat interface with a no-op default
// (NopDispatcher) for callers that only care about a subset, per
// SPEC_FULL.md §9 "inheritance-heavy event dispatch".
type Dispatcher interface {
	OnReferenceData(info event.MessageInfo, ref event.ReferenceData)
	OnMarketStatus(info event.MessageInfo, status event.MarketStatus)
	OnTopOfBook(info event.MessageInfo, tob event.TopOfBook)
	OnMarketByPriceUpdate(info event.MessageInfo, mbp event.MarketByPriceUpdate)
	OnMarketByOrderUpdate(info event.MessageInfo, mbo event.MarketByOrderUpdate)
	OnTradeSummary(info event.MessageInfo, ts event.TradeSummary)
	OnStatisticsUpdate(info event.MessageInfo, su event.StatisticsUpdate)

	OnOrderAck(info event.MessageInfo, ack event.OrderAck)
	OnOrderUpdate(info event.MessageInfo, upd event.OrderUpdate)
	OnTradeUpdate(info event.MessageInfo, trd event.TradeUpdate)
	OnCancelAllOrdersAck(info event.MessageInfo, ack event.CancelAllOrdersAck)
}

// NopDispatcher implements Dispatcher with every method a no-op.
// Embed it to avoid implementing events you don't care about.
type NopDispatcher struct{}

func (NopDispatcher) OnReferenceData(event.MessageInfo, event.ReferenceData)             {}
func (NopDispatcher) OnMarketStatus(event.MessageInfo, event.MarketStatus)               {}
func (NopDispatcher) OnTopOfBook(event.MessageInfo, event.TopOfBook)                     {}
func (NopDispatcher) OnMarketByPriceUpdate(event.MessageInfo, event.MarketByPriceUpdate) {}
func (NopDispatcher) OnMarketByOrderUpdate(event.MessageInfo, event.MarketByOrderUpdate) {}
func (NopDispatcher) OnTradeSummary(event.MessageInfo, event.TradeSummary)               {}
func (NopDispatcher) OnStatisticsUpdate(event.MessageInfo, event.StatisticsUpdate)       {}
func (NopDispatcher) OnOrderAck(event.MessageInfo, event.OrderAck)                       {}
func (NopDispatcher) OnOrderUpdate(event.MessageInfo, event.OrderUpdate)                 {}
func (NopDispatcher) OnTradeUpdate(event.MessageInfo, event.TradeUpdate)                 {}
func (NopDispatcher) OnCancelAllOrdersAck(event.MessageInfo, event.CancelAllOrdersAck)   {}
