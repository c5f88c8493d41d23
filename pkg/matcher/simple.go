package matcher

import (
	"github.com/quantlink/algo/pkg/event"
	"github.com/quantlink/algo/pkg/marketdata"
	"github.com/quantlink/algo/pkg/ordercache"
	"github.com/quantlink/algo/pkg/tick"
)

// Simple is the price/time-priority matcher of spec §4.2. It derives a
// top-of-book from recorded market data and matches create/modify/
// cancel requests against it with no level-walking: the derived book
// exposes only one layer per side.
//
// C++: original_source/src/roq/algo/matcher/simple.hpp
type Simple struct {
	cfg        Config
	cache      ordercache.Cache
	dispatcher Dispatcher
	md         *marketdata.MarketData

	buys  *restingIndex
	sells *restingIndex

	// onRestingInsert, when set, lets a variant (queue_position.go)
	// observe every newly-rested order to seed extra state. Plain
	// Simple leaves it nil.
	onRestingInsert func(o *ordercache.Order)
}

// NewSimple constructs a Simple matcher over cache, emitting through
// dispatcher.
func NewSimple(cfg Config, cache ordercache.Cache, dispatcher Dispatcher) *Simple {
	return &Simple{
		cfg:        cfg,
		cache:      cache,
		dispatcher: dispatcher,
		md:         marketdata.New(cfg.MarketDataSource),
		buys:       newRestingIndex(true),
		sells:      newRestingIndex(false),
	}
}

func (s *Simple) restingIndexFor(side event.Side) *restingIndex {
	if side == event.SideBuy {
		return s.buys
	}
	return s.sells
}

func (s *Simple) oppositeBestPrice(side event.Side) float64 {
	tob := s.md.TopOfBook()
	if side == event.SideBuy {
		return tob.AskPrice
	}
	return tob.BidPrice
}

// isAggressive reports whether a limit order at price/side would
// execute immediately against the current derived best opposite quote
// (spec §4.2 "Aggressiveness").
func (s *Simple) isAggressive(side event.Side, price float64) bool {
	tob := s.md.TopOfBook()
	switch side {
	case event.SideBuy:
		if !event.IsKnown(tob.AskPrice) {
			return false
		}
		priceTicks, _ := s.md.PriceToTicks(price)
		askTicks, _ := s.md.PriceToTicks(tob.AskPrice)
		return priceTicks >= askTicks
	case event.SideSell:
		if !event.IsKnown(tob.BidPrice) {
			return false
		}
		priceTicks, _ := s.md.PriceToTicks(price)
		bidTicks, _ := s.md.PriceToTicks(tob.BidPrice)
		return priceTicks <= bidTicks
	default:
		return false
	}
}

// ---- market data: forwarded verbatim, then re-evaluated for cascaded fills ----

func (s *Simple) HandleReferenceData(info event.MessageInfo, ref event.ReferenceData) {
	s.dispatcher.OnReferenceData(info, ref)
	s.md.OnReferenceData(ref)
}

func (s *Simple) HandleMarketStatus(info event.MessageInfo, status event.MarketStatus) {
	s.dispatcher.OnMarketStatus(info, status)
	s.md.OnMarketStatus(status)
}

func (s *Simple) HandleTopOfBook(info event.MessageInfo, tob event.TopOfBook) {
	s.dispatcher.OnTopOfBook(info, tob)
	if s.md.OnTopOfBook(tob) {
		s.matchRestingOnMove(info)
	}
}

func (s *Simple) HandleMarketByPriceUpdate(info event.MessageInfo, mbp event.MarketByPriceUpdate) {
	s.dispatcher.OnMarketByPriceUpdate(info, mbp)
	if s.md.OnMarketByPriceUpdate(mbp) {
		s.matchRestingOnMove(info)
	}
}

func (s *Simple) HandleMarketByOrderUpdate(info event.MessageInfo, mbo event.MarketByOrderUpdate) {
	s.dispatcher.OnMarketByOrderUpdate(info, mbo)
	if s.md.OnMarketByOrderUpdate(mbo) {
		s.matchRestingOnMove(info)
	}
}

func (s *Simple) HandleTradeSummary(info event.MessageInfo, ts event.TradeSummary) {
	s.dispatcher.OnTradeSummary(info, ts)
	s.md.OnTradeSummary(ts)
}

func (s *Simple) HandleStatisticsUpdate(info event.MessageInfo, su event.StatisticsUpdate) {
	s.dispatcher.OnStatisticsUpdate(info, su)
}

// matchRestingOnMove scans the head of each resting sequence and, while
// it is aggressive against the new opposite best, fills it entirely at
// its own limit price (spec §4.2 "Resting-order match on market move").
func (s *Simple) matchRestingOnMove(info event.MessageInfo) {
	for {
		filledAny := false
		if head := s.buys.Head(); head != nil && s.isAggressive(event.SideBuy, head.Price) {
			s.buys.PopHead()
			s.fillEntire(info, head, head.Price)
			filledAny = true
		}
		if head := s.sells.Head(); head != nil && s.isAggressive(event.SideSell, head.Price) {
			s.sells.PopHead()
			s.fillEntire(info, head, head.Price)
			filledAny = true
		}
		if !filledAny {
			break
		}
	}
}

// ---- order requests ----

func (s *Simple) validateCreate(req event.CreateOrder) event.Error {
	if req.Side != event.SideBuy && req.Side != event.SideSell {
		return event.ErrorInvalidRequest
	}
	if s.md.HasTickSize() {
		if _, exact := s.md.PriceToTicks(req.Price); !exact {
			return event.ErrorInvalidPrice
		}
	}
	if req.Quantity <= 0 {
		return event.ErrorInvalidQuantity
	}
	if minLot := s.md.MinTradeVol(); event.IsKnown(minLot) && minLot > 0 {
		if _, exact := tick.ToTicks(req.Quantity, minLot, -1); !exact {
			return event.ErrorInvalidQuantity
		}
	}
	if !s.md.HasTickSize() {
		return event.ErrorInvalidPrice
	}
	return event.ErrorNone
}

// HandleCreateOrder runs the create-order algorithm of spec §4.2.
func (s *Simple) HandleCreateOrder(info event.MessageInfo, req event.CreateOrder) {
	if err := s.validateCreate(req); err != event.ErrorNone {
		s.dispatcher.OnOrderAck(info, event.OrderAck{
			OrderID: req.OrderID, RequestStatus: event.RequestStatusRejected,
			Error: err, Status: event.OrderStatusRejected,
		})
		return
	}
	o := &ordercache.Order{
		OrderID: req.OrderID, Account: req.Account, Exchange: req.Exchange, Symbol: req.Symbol,
		Side: req.Side, Quantity: req.Quantity, RemainingQuantity: req.Quantity,
		Price: req.Price, Status: event.OrderStatusSent, Ahead: event.NaN,
	}
	if !s.cache.PutOrder(o) {
		s.dispatcher.OnOrderAck(info, event.OrderAck{
			OrderID: req.OrderID, RequestStatus: event.RequestStatusRejected,
			Error: event.ErrorInvalidRequest, Status: event.OrderStatusRejected,
		})
		return
	}
	s.dispatcher.OnOrderAck(info, event.OrderAck{
		OrderID: req.OrderID, RequestStatus: event.RequestStatusAccepted, Status: o.Status,
	})
	s.matchOrRest(info, o)
}

// matchOrRest is shared by create and (accepted) modify: fill entirely
// if aggressive, otherwise rest it.
func (s *Simple) matchOrRest(info event.MessageInfo, o *ordercache.Order) {
	if s.isAggressive(o.Side, o.Price) {
		s.fillEntire(info, o, s.oppositeBestPrice(o.Side))
		return
	}
	o.Status = event.OrderStatusWorking
	s.restingIndexFor(o.Side).Insert(o)
	if s.onRestingInsert != nil {
		s.onRestingInsert(o)
	}
	s.dispatcher.OnOrderUpdate(info, o.ToOrderUpdate())
}

// fillEntire executes a complete fill for o's entire remaining
// quantity at price, per spec §4.2 "Fill semantics (Simple)": fills
// are always complete, never partial.
func (s *Simple) fillEntire(info event.MessageInfo, o *ordercache.Order, price float64) {
	fill := o.ApplyFill(price, o.RemainingQuantity)
	fill.TradeID = s.cache.NextTradeID()
	o.Status = event.OrderStatusCompleted
	s.dispatcher.OnTradeUpdate(info, event.TradeUpdate{OrderID: o.OrderID, Fill: fill})
	s.dispatcher.OnOrderUpdate(info, o.ToOrderUpdate())
}

// fillPartial executes a fill for less than o's full remaining
// quantity, used only by the queue-position matcher's queue-drain
// rule (spec §4.3); Simple itself never produces partial fills.
func (s *Simple) fillPartial(info event.MessageInfo, o *ordercache.Order, price, qty float64) {
	fill := o.ApplyFill(price, qty)
	fill.TradeID = s.cache.NextTradeID()
	if o.RemainingQuantity <= 0 {
		o.Status = event.OrderStatusCompleted
	}
	s.dispatcher.OnTradeUpdate(info, event.TradeUpdate{OrderID: o.OrderID, Fill: fill})
	s.dispatcher.OnOrderUpdate(info, o.ToOrderUpdate())
}

// HandleModifyOrder runs the modify-order algorithm of spec §4.2.
func (s *Simple) HandleModifyOrder(info event.MessageInfo, req event.ModifyOrder) {
	var o *ordercache.Order
	found := s.cache.GetOrder(req.OrderID, func(order *ordercache.Order) { o = order })
	if !found {
		s.dispatcher.OnOrderAck(info, event.OrderAck{
			OrderID: req.OrderID, RequestStatus: event.RequestStatusRejected,
			Error: event.ErrorNotFound, Status: event.OrderStatusRejected,
		})
		return
	}
	if o.IsTerminal() || req.Quantity <= o.TradedQuantity {
		s.dispatcher.OnOrderAck(info, event.OrderAck{
			OrderID: req.OrderID, RequestStatus: event.RequestStatusRejected,
			Error: event.ErrorNotFound, Status: o.Status,
		})
		return
	}
	if !s.md.HasTickSize() {
		s.dispatcher.OnOrderAck(info, event.OrderAck{
			OrderID: req.OrderID, RequestStatus: event.RequestStatusRejected,
			Error: event.ErrorInvalidPrice, Status: o.Status,
		})
		return
	}
	if _, exact := s.md.PriceToTicks(req.Price); !exact {
		s.dispatcher.OnOrderAck(info, event.OrderAck{
			OrderID: req.OrderID, RequestStatus: event.RequestStatusRejected,
			Error: event.ErrorInvalidPrice, Status: o.Status,
		})
		return
	}
	if minLot := s.md.MinTradeVol(); event.IsKnown(minLot) && minLot > 0 {
		if _, exact := tick.ToTicks(req.Quantity, minLot, -1); !exact {
			s.dispatcher.OnOrderAck(info, event.OrderAck{
				OrderID: req.OrderID, RequestStatus: event.RequestStatusRejected,
				Error: event.ErrorInvalidQuantity, Status: o.Status,
			})
			return
		}
	}

	if o.Status == event.OrderStatusWorking {
		s.restingIndexFor(o.Side).Remove(o.OrderID)
	}
	o.Price = req.Price
	o.Quantity = req.Quantity
	o.RemainingQuantity = req.Quantity - o.TradedQuantity
	o.MaxRequestVersion++
	s.cache.Reissue(o)

	s.dispatcher.OnOrderAck(info, event.OrderAck{
		OrderID: req.OrderID, RequestStatus: event.RequestStatusAccepted, Status: o.Status,
	})
	s.matchOrRest(info, o)
}

// HandleCancelOrder runs the cancel-order algorithm of spec §4.2.
func (s *Simple) HandleCancelOrder(info event.MessageInfo, req event.CancelOrder) {
	var o *ordercache.Order
	found := s.cache.GetOrder(req.OrderID, func(order *ordercache.Order) { o = order })
	if !found || o.IsTerminal() {
		status := event.OrderStatusRejected
		if found {
			status = o.Status
		}
		s.dispatcher.OnOrderAck(info, event.OrderAck{
			OrderID: req.OrderID, RequestStatus: event.RequestStatusRejected,
			Error: event.ErrorNotFound, Status: status,
		})
		return
	}
	s.restingIndexFor(o.Side).Remove(o.OrderID)
	o.Status = event.OrderStatusCanceled
	s.dispatcher.OnOrderAck(info, event.OrderAck{
		OrderID: req.OrderID, RequestStatus: event.RequestStatusAccepted, Status: o.Status,
	})
	s.dispatcher.OnOrderUpdate(info, o.ToOrderUpdate())
}

// HandleMassQuote always rejects: quoting is absent from both matcher
// variants (SPEC_FULL.md §12 "MassQuote / CancelQuotes handler slots").
func (s *Simple) HandleMassQuote(info event.MessageInfo, req event.MassQuote) {
	s.dispatcher.OnOrderAck(info, event.OrderAck{
		RequestStatus: event.RequestStatusRejected, Error: event.ErrorNotSupported, Status: event.OrderStatusRejected,
	})
}

// HandleCancelQuotes always rejects, for the same reason as HandleMassQuote.
func (s *Simple) HandleCancelQuotes(info event.MessageInfo, req event.CancelQuotes) {
	s.dispatcher.OnOrderAck(info, event.OrderAck{
		RequestStatus: event.RequestStatusRejected, Error: event.ErrorNotSupported, Status: event.OrderStatusRejected,
	})
}

// HandleCancelAllOrders runs the cancel-all sweep of spec §4.2.
func (s *Simple) HandleCancelAllOrders(info event.MessageInfo, req event.CancelAllOrders) {
	count := 0
	for _, idx := range []*restingIndex{s.buys, s.sells} {
		for _, o := range idx.All(req.Account, req.OrderIDs) {
			idx.Remove(o.OrderID)
			o.Status = event.OrderStatusCanceled
			s.dispatcher.OnOrderUpdate(info, o.ToOrderUpdate())
			count++
		}
	}
	s.dispatcher.OnCancelAllOrdersAck(info, event.CancelAllOrdersAck{Count: count})
}
