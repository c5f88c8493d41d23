package arbitrage

import "github.com/quantlink/algo/pkg/event"

type legKey struct {
	source   uint8
	exchange string
	symbol   string
}

// Simple is the arbitrage strategy of spec §4.4.
type Simple struct {
	legs   []*Instrument
	params Parameters
	router Router

	byKey     map[legKey]int
	sources   map[uint8]*sourceState
	orderLegs map[uint64]int
	nextID    uint64
}

// NewSimple constructs a Simple arbitrage strategy over legs (N≥2,
// leg 0 is the reference leg), emitting requests through router.
func NewSimple(legs []Leg, params Parameters, router Router) *Simple {
	s := &Simple{
		params:    params,
		router:    router,
		byKey:     make(map[legKey]int),
		sources:   make(map[uint8]*sourceState),
		orderLegs: make(map[uint64]int),
	}
	for i, leg := range legs {
		s.legs = append(s.legs, newInstrument(leg, params.MarketDataSource))
		s.byKey[legKey{leg.Source, leg.Exchange, leg.Symbol}] = i
	}
	return s
}

// Leg returns the i-th instrument's runtime state, for tests and
// reporting.
func (s *Simple) Leg(i int) *Instrument { return s.legs[i] }

// NumLegs returns the number of legs the strategy was constructed
// with.
func (s *Simple) NumLegs() int { return len(s.legs) }

// SetParameters replaces the threshold/sizing/position-limit knobs in
// place, for live reconfiguration without restarting the strategy
// (spec §6's parameter string, pushed over pkg/transport/nats's config
// subject rather than re-read from disk). In-flight orders are
// unaffected; the new parameters apply starting with the next spread
// evaluation.
func (s *Simple) SetParameters(p Parameters) { s.params = p }

// Parameters returns the strategy's current parameter set.
func (s *Simple) Parameters() Parameters { return s.params }

func (s *Simple) sourceFor(src uint8) *sourceState {
	st, ok := s.sources[src]
	if !ok {
		st = &sourceState{}
		s.sources[src] = st
	}
	return st
}

func (s *Simple) legIndex(source uint8, exchange, symbol string) (int, bool) {
	idx, ok := s.byKey[legKey{source, exchange, symbol}]
	return idx, ok
}

func (s *Simple) nextOrderID() uint64 {
	s.nextID++
	return s.nextID
}

// ---- market data ----

func (s *Simple) HandleReferenceData(info event.MessageInfo, ref event.ReferenceData) {
	idx, ok := s.legIndex(info.Source, ref.Exchange, ref.Symbol)
	if !ok {
		return
	}
	s.legs[idx].MarketData.OnReferenceData(ref)
}

func (s *Simple) HandleMarketStatus(info event.MessageInfo, status event.MarketStatus) {
	idx, ok := s.legIndex(info.Source, status.Exchange, status.Symbol)
	if !ok {
		return
	}
	s.legs[idx].MarketData.OnMarketStatus(status)
}

func (s *Simple) HandleTopOfBook(info event.MessageInfo, tob event.TopOfBook) {
	idx, ok := s.legIndex(info.Source, tob.Exchange, tob.Symbol)
	if !ok {
		return
	}
	if s.legs[idx].MarketData.OnTopOfBook(tob) {
		s.evaluatePairsInvolving(info, idx)
	}
}

func (s *Simple) HandleMarketByPriceUpdate(info event.MessageInfo, mbp event.MarketByPriceUpdate) {
	idx, ok := s.legIndex(info.Source, mbp.Exchange, mbp.Symbol)
	if !ok {
		return
	}
	if s.legs[idx].MarketData.OnMarketByPriceUpdate(mbp) {
		s.evaluatePairsInvolving(info, idx)
	}
}

func (s *Simple) HandleMarketByOrderUpdate(info event.MessageInfo, mbo event.MarketByOrderUpdate) {
	idx, ok := s.legIndex(info.Source, mbo.Exchange, mbo.Symbol)
	if !ok {
		return
	}
	if s.legs[idx].MarketData.OnMarketByOrderUpdate(mbo) {
		s.evaluatePairsInvolving(info, idx)
	}
}

func (s *Simple) HandleTradeSummary(info event.MessageInfo, ts event.TradeSummary) {
	idx, ok := s.legIndex(info.Source, ts.Exchange, ts.Symbol)
	if !ok {
		return
	}
	s.legs[idx].MarketData.OnTradeSummary(ts)
}

func (s *Simple) HandleStatisticsUpdate(event.MessageInfo, event.StatisticsUpdate) {}

// ---- lifecycle ----

func (s *Simple) HandleConnected(info event.MessageInfo, c event.Connected) {
	s.sourceFor(c.Source).clear()
}

func (s *Simple) HandleDisconnected(info event.MessageInfo, d event.Disconnected) {
	s.sourceFor(d.Source).clear()
	for _, leg := range s.legs {
		if leg.Leg.Source == d.Source {
			leg.Reset()
		}
	}
}

func (s *Simple) HandleDownloadEnd(info event.MessageInfo, d event.DownloadEnd) {
	s.sourceFor(d.Source).downloadEnd = true
}

func (s *Simple) HandleReady(info event.MessageInfo, r event.Ready) {
	s.sourceFor(r.Source).explicitReady = true
}

func (s *Simple) HandleGatewayStatus(info event.MessageInfo, g event.GatewayStatus) {
	s.sourceFor(g.Source).gatewayConnected = g.Connected
}

func (s *Simple) HandleStreamStatus(info event.MessageInfo, st event.StreamStatus) {
	s.sourceFor(st.Source).streamOK = st.Supported
}

func (s *Simple) HandlePositionUpdate(info event.MessageInfo, pu event.PositionUpdate) {
	idx, ok := s.legIndex(info.Source, pu.Exchange, pu.Symbol)
	if !ok {
		return
	}
	s.legs[idx].Position.OnPositionUpdate(pu.Position)
}

// ---- order lifecycle ----

func (s *Simple) HandleOrderAck(info event.MessageInfo, ack event.OrderAck) {
	idx, ok := s.orderLegs[ack.OrderID]
	if !ok {
		return
	}
	leg := s.legs[idx]
	if ack.RequestStatus != event.RequestStatusAccepted {
		s.abandon(idx)
		return
	}
	if leg.cancelOnAccept {
		leg.cancelOnAccept = false
		leg.OrderState = OrderStateCancel
		s.router.SendCancelOrder(event.CancelOrder{OrderID: leg.OrderID}, leg.Leg.Source, true)
		return
	}
	leg.OrderState = OrderStateWorking
}

func (s *Simple) HandleOrderUpdate(info event.MessageInfo, upd event.OrderUpdate) {
	idx, ok := s.orderLegs[upd.OrderID]
	if !ok {
		return
	}
	if upd.Status.IsTerminal() {
		leg := s.legs[idx]
		delete(s.orderLegs, leg.OrderID)
		leg.OrderState = OrderStateIdle
		leg.OrderID = 0
		leg.peers = nil
	}
}

func (s *Simple) HandleTradeUpdate(info event.MessageInfo, trd event.TradeUpdate) {
	idx, ok := s.orderLegs[trd.OrderID]
	if !ok {
		return
	}
	leg := s.legs[idx]
	leg.Position.OnTradeUpdate(leg.Side, trd.Fill.Quantity)
}

// abandon aborts the in-flight attempt on leg idx: it returns idx to
// IDLE and, for every sibling already WORKING, issues an immediate
// cancel; a sibling still in CREATE is flagged to cancel as soon as
// its delayed ACCEPTED ack arrives (spec §4.4 "Failure semantics").
func (s *Simple) abandon(idx int) {
	leg := s.legs[idx]
	peers := leg.peers
	delete(s.orderLegs, leg.OrderID)
	leg.OrderState = OrderStateIdle
	leg.OrderID = 0
	leg.peers = nil

	for _, p := range peers {
		sib := s.legs[p]
		switch sib.OrderState {
		case OrderStateWorking:
			s.router.SendCancelOrder(event.CancelOrder{OrderID: sib.OrderID}, sib.Leg.Source, true)
			sib.OrderState = OrderStateCancel
		case OrderStateCreate:
			sib.cancelOnAccept = true
		}
		sib.peers = nil
	}
}

// ---- spread evaluation ----

func (s *Simple) evaluatePairsInvolving(info event.MessageInfo, legIdx int) {
	if legIdx == 0 {
		for i := 1; i < len(s.legs); i++ {
			s.evaluatePair(info, i)
		}
		return
	}
	s.evaluatePair(info, legIdx)
}

func (s *Simple) isLegReady(idx int, info event.MessageInfo) bool {
	leg := s.legs[idx]
	if !s.sourceFor(leg.Leg.Source).isReady() {
		return false
	}
	if !leg.isIdle() {
		return false
	}
	if !leg.MarketData.HasTickSize() {
		return false
	}
	return leg.MarketData.IsMarketActive(info, s.params.MaxAge)
}

// evaluatePair runs the spread signal + trade-arming rule of spec
// §4.4 for the pair (leg 0, leg i).
func (s *Simple) evaluatePair(info event.MessageInfo, i int) {
	if !s.isLegReady(0, info) || !s.isLegReady(i, info) {
		return
	}
	lhs := s.legs[0].MarketData.TopOfBook()
	rhs := s.legs[i].MarketData.TopOfBook()
	if !event.IsKnown(lhs.BidPrice) || !event.IsKnown(lhs.AskPrice) || !event.IsKnown(rhs.BidPrice) || !event.IsKnown(rhs.AskPrice) {
		return
	}

	spreadBuyLHS := rhs.BidPrice - lhs.AskPrice
	spreadSellLHS := lhs.BidPrice - rhs.AskPrice

	pos0 := s.legs[0].Position.Position()
	canBuy := spreadBuyLHS > s.params.Threshold && pos0+s.params.Quantity0 <= s.params.MaxPosition0
	canSell := spreadSellLHS > s.params.Threshold && pos0-s.params.Quantity0 >= s.params.MinPosition0

	switch {
	case canBuy && canSell:
		if spreadBuyLHS >= spreadSellLHS {
			s.arm(i, event.SideBuy, lhs.AskPrice, event.SideSell, rhs.BidPrice)
		} else {
			s.arm(i, event.SideSell, lhs.BidPrice, event.SideBuy, rhs.AskPrice)
		}
	case canBuy:
		s.arm(i, event.SideBuy, lhs.AskPrice, event.SideSell, rhs.BidPrice)
	case canSell:
		s.arm(i, event.SideSell, lhs.BidPrice, event.SideBuy, rhs.AskPrice)
	}
}

// arm issues simultaneous marketable-limit orders on leg 0 (lhsSide @
// lhsPrice) and leg i (rhsSide @ rhsPrice), per spec §4.4 "Trade
// arming & placement".
func (s *Simple) arm(i int, lhsSide event.Side, lhsPrice float64, rhsSide event.Side, rhsPrice float64) {
	lhs := s.legs[0]
	rhs := s.legs[i]
	if !lhs.isIdle() || !rhs.isIdle() {
		return
	}

	lhsID := s.nextOrderID()
	rhsID := s.nextOrderID()

	lhs.OrderState, lhs.OrderID, lhs.Side, lhs.peers = OrderStateCreate, lhsID, lhsSide, []int{i}
	rhs.OrderState, rhs.OrderID, rhs.Side, rhs.peers = OrderStateCreate, rhsID, rhsSide, []int{0}
	s.orderLegs[lhsID] = 0
	s.orderLegs[rhsID] = i

	s.router.SendCreateOrder(event.CreateOrder{
		OrderID: lhsID, Account: lhs.Leg.Account, Exchange: lhs.Leg.Exchange, Symbol: lhs.Leg.Symbol,
		Side: lhsSide, Price: lhsPrice, Quantity: s.params.Quantity0,
		TimeInForce: lhs.Leg.TimeInForce, PositionEffect: lhs.Leg.PositionEffect, MarginMode: lhs.Leg.MarginMode,
	}, lhs.Leg.Source, false)

	s.router.SendCreateOrder(event.CreateOrder{
		OrderID: rhsID, Account: rhs.Leg.Account, Exchange: rhs.Leg.Exchange, Symbol: rhs.Leg.Symbol,
		Side: rhsSide, Price: rhsPrice, Quantity: s.params.Quantity0 * rhs.Leg.multiplier(),
		TimeInForce: rhs.Leg.TimeInForce, PositionEffect: rhs.Leg.PositionEffect, MarginMode: rhs.Leg.MarginMode,
	}, rhs.Leg.Source, true)
}
