// Package backtest wires a recorded market-data stream through one
// matcher per leg and a single arbitrage strategy, recording every
// fill into a reporter.Recorder for an end-of-run summary. It is the
// in-process "everything talks to everything else directly" runtime a
// live deployment would instead split across pkg/transport/nats.
//
// C++: none; shaped after golang/pkg/backtest/order_router.go's
// BacktestOrderRouter + SimpleMatchEngine pairing, with the gRPC
// server removed since this package never leaves one process.
package backtest

import (
	"fmt"

	"github.com/quantlink/algo/pkg/arbitrage"
	"github.com/quantlink/algo/pkg/event"
	"github.com/quantlink/algo/pkg/matcher"
	"github.com/quantlink/algo/pkg/ordercache"
	"github.com/quantlink/algo/pkg/replay"
	"github.com/quantlink/algo/pkg/reporter"
)

// LegConfig is one leg's matcher wiring, keyed by the same
// (source, exchange, symbol) triple the arbitrage leg uses.
type LegConfig struct {
	Matcher matcher.Config
}

// legKey identifies one leg's matcher; a source (gateway/feed) can
// carry several legs trading different symbols, so the source id
// alone is not a unique matcher key.
type legKey struct {
	source           uint8
	exchange, symbol string
}

// Engine owns one matcher per leg, the arbitrage strategy straddling
// them, and the reporter recording every fill.
type Engine struct {
	strategy *arbitrage.Simple
	matchers map[legKey]matcher.Handler
	recorder *reporter.Recorder
}

// New builds an Engine: one matcher per leg config, an arbitrage
// strategy over legs, and a simRouter/simDispatcher pair gluing them
// together in-process.
func New(legs []arbitrage.Leg, legConfigs []LegConfig, params arbitrage.Parameters) (*Engine, error) {
	if len(legs) != len(legConfigs) {
		return nil, fmt.Errorf("backtest: %d legs but %d matcher configs", len(legs), len(legConfigs))
	}
	e := &Engine{
		matchers: make(map[legKey]matcher.Handler),
		recorder: reporter.New(),
	}
	router := &simRouter{engine: e}
	e.strategy = arbitrage.NewSimple(legs, params, router)

	for i, cfg := range legConfigs {
		key := legKey{source: legs[i].Source, exchange: legs[i].Exchange, symbol: legs[i].Symbol}
		if _, exists := e.matchers[key]; exists {
			return nil, fmt.Errorf("backtest: duplicate leg %+v", key)
		}
		cache := ordercache.NewMemoryCache()
		dispatcher := &simDispatcher{
			strategy: e.strategy,
			recorder: e.recorder,
			exchange: legs[i].Exchange,
			symbol:   legs[i].Symbol,
		}
		h, err := matcher.New(cfg.Matcher, cache, dispatcher)
		if err != nil {
			return nil, fmt.Errorf("backtest: leg %d: %w", i, err)
		}
		e.matchers[key] = h
	}
	return e, nil
}

// Strategy exposes the underlying arbitrage strategy for inspection.
func (e *Engine) Strategy() *arbitrage.Simple { return e.strategy }

// Recorder exposes the fill recorder for an end-of-run summary.
func (e *Engine) Recorder() *reporter.Recorder { return e.recorder }

func (e *Engine) matcherFor(source uint8, exchange, symbol string) (matcher.Handler, bool) {
	m, ok := e.matchers[legKey{source: source, exchange: exchange, symbol: symbol}]
	return m, ok
}

// HandleReferenceData and the rest of replay.MarketDataSink fan one
// recorded event out to both the matching leg's matcher and the
// arbitrage strategy, so the strategy's spread signal and the
// matcher's book derivation stay in lockstep off one source feed.
func (e *Engine) HandleReferenceData(info event.MessageInfo, ref event.ReferenceData) {
	if m, ok := e.matcherFor(info.Source, ref.Exchange, ref.Symbol); ok {
		m.HandleReferenceData(info, ref)
	}
	e.strategy.HandleReferenceData(info, ref)
}

func (e *Engine) HandleMarketStatus(info event.MessageInfo, status event.MarketStatus) {
	if m, ok := e.matcherFor(info.Source, status.Exchange, status.Symbol); ok {
		m.HandleMarketStatus(info, status)
	}
	e.strategy.HandleMarketStatus(info, status)
}

func (e *Engine) HandleTopOfBook(info event.MessageInfo, tob event.TopOfBook) {
	if m, ok := e.matcherFor(info.Source, tob.Exchange, tob.Symbol); ok {
		m.HandleTopOfBook(info, tob)
	}
	e.strategy.HandleTopOfBook(info, tob)
}

func (e *Engine) HandleMarketByPriceUpdate(info event.MessageInfo, mbp event.MarketByPriceUpdate) {
	if m, ok := e.matcherFor(info.Source, mbp.Exchange, mbp.Symbol); ok {
		m.HandleMarketByPriceUpdate(info, mbp)
	}
	e.strategy.HandleMarketByPriceUpdate(info, mbp)
}

func (e *Engine) HandleMarketByOrderUpdate(info event.MessageInfo, mbo event.MarketByOrderUpdate) {
	if m, ok := e.matcherFor(info.Source, mbo.Exchange, mbo.Symbol); ok {
		m.HandleMarketByOrderUpdate(info, mbo)
	}
	e.strategy.HandleMarketByOrderUpdate(info, mbo)
}

func (e *Engine) HandleTradeSummary(info event.MessageInfo, ts event.TradeSummary) {
	if m, ok := e.matcherFor(info.Source, ts.Exchange, ts.Symbol); ok {
		m.HandleTradeSummary(info, ts)
	}
	e.strategy.HandleTradeSummary(info, ts)
}

func (e *Engine) HandleStatisticsUpdate(info event.MessageInfo, su event.StatisticsUpdate) {
	e.strategy.HandleStatisticsUpdate(info, su)
}

// Lifecycle events drive only the arbitrage strategy's readiness gate;
// matchers have no notion of connection state.
func (e *Engine) HandleConnected(info event.MessageInfo, c event.Connected) {
	e.strategy.HandleConnected(info, c)
}
func (e *Engine) HandleDisconnected(info event.MessageInfo, d event.Disconnected) {
	e.strategy.HandleDisconnected(info, d)
}
func (e *Engine) HandleDownloadEnd(info event.MessageInfo, d event.DownloadEnd) {
	e.strategy.HandleDownloadEnd(info, d)
}
func (e *Engine) HandleReady(info event.MessageInfo, r event.Ready) {
	e.strategy.HandleReady(info, r)
}
func (e *Engine) HandleGatewayStatus(info event.MessageInfo, g event.GatewayStatus) {
	e.strategy.HandleGatewayStatus(info, g)
}
func (e *Engine) HandleStreamStatus(info event.MessageInfo, st event.StreamStatus) {
	e.strategy.HandleStreamStatus(info, st)
}
func (e *Engine) HandlePositionUpdate(info event.MessageInfo, pu event.PositionUpdate) {
	e.strategy.HandlePositionUpdate(info, pu)
}

var _ replay.MarketDataSink = (*Engine)(nil)
var _ replay.LifecycleSink = (*Engine)(nil)
