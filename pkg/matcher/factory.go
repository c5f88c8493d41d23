package matcher

import (
	"fmt"

	"github.com/quantlink/algo/pkg/event"
	"github.com/quantlink/algo/pkg/ordercache"
)

// Handler is every inbound entry point a matcher variant exposes to
// the event source, per spec §6 "Matcher configuration".
type Handler interface {
	HandleReferenceData(info event.MessageInfo, ref event.ReferenceData)
	HandleMarketStatus(info event.MessageInfo, status event.MarketStatus)
	HandleTopOfBook(info event.MessageInfo, tob event.TopOfBook)
	HandleMarketByPriceUpdate(info event.MessageInfo, mbp event.MarketByPriceUpdate)
	HandleMarketByOrderUpdate(info event.MessageInfo, mbo event.MarketByOrderUpdate)
	HandleTradeSummary(info event.MessageInfo, ts event.TradeSummary)
	HandleStatisticsUpdate(info event.MessageInfo, su event.StatisticsUpdate)

	HandleCreateOrder(info event.MessageInfo, req event.CreateOrder)
	HandleModifyOrder(info event.MessageInfo, req event.ModifyOrder)
	HandleCancelOrder(info event.MessageInfo, req event.CancelOrder)
	HandleCancelAllOrders(info event.MessageInfo, req event.CancelAllOrders)
	HandleMassQuote(info event.MessageInfo, req event.MassQuote)
	HandleCancelQuotes(info event.MessageInfo, req event.CancelQuotes)
}

// New selects and constructs the matcher variant named by cfg.Variant.
func New(cfg Config, cache ordercache.Cache, dispatcher Dispatcher) (Handler, error) {
	switch cfg.Variant {
	case VariantSimple:
		return NewSimple(cfg, cache, dispatcher), nil
	case VariantQueuePositionSimple:
		return NewQueuePositionSimple(cfg, cache, dispatcher), nil
	default:
		return nil, fmt.Errorf("matcher: unknown variant %d", cfg.Variant)
	}
}
