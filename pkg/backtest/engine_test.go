package backtest

import (
	"testing"

	"github.com/quantlink/algo/pkg/arbitrage"
	"github.com/quantlink/algo/pkg/event"
	"github.com/quantlink/algo/pkg/matcher"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	legs := []arbitrage.Leg{
		{Source: 1, Account: "acc", Exchange: "X0", Symbol: "A"},
		{Source: 1, Account: "acc", Exchange: "X1", Symbol: "B"},
	}
	legConfigs := []LegConfig{
		{Matcher: matcher.Config{Source: 1, Exchange: "X0", Symbol: "A", MarketDataSource: event.MarketDataSourceTopOfBook, Variant: matcher.VariantSimple}},
		{Matcher: matcher.Config{Source: 1, Exchange: "X1", Symbol: "B", MarketDataSource: event.MarketDataSourceTopOfBook, Variant: matcher.VariantSimple}},
	}
	params := arbitrage.Parameters{
		MarketDataSource: event.MarketDataSourceTopOfBook,
		Threshold:        0.5,
		Quantity0:        1,
		MinPosition0:     -10,
		MaxPosition0:     10,
	}
	e, err := New(legs, legConfigs, params)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

// Two legs sharing one source id but trading different symbols must
// be accepted: matcher.Config is keyed on the full (source, exchange,
// symbol) tuple, not source alone.
func TestNewAcceptsSharedSourceDistinctSymbols(t *testing.T) {
	newTestEngine(t)
}

func TestNewRejectsDuplicateLeg(t *testing.T) {
	legs := []arbitrage.Leg{
		{Source: 1, Exchange: "X0", Symbol: "A"},
		{Source: 1, Exchange: "X0", Symbol: "A"},
	}
	legConfigs := []LegConfig{
		{Matcher: matcher.Config{Source: 1, Exchange: "X0", Symbol: "A", Variant: matcher.VariantSimple}},
		{Matcher: matcher.Config{Source: 1, Exchange: "X0", Symbol: "A", Variant: matcher.VariantSimple}},
	}
	if _, err := New(legs, legConfigs, arbitrage.Parameters{}); err == nil {
		t.Fatalf("expected error for duplicate (source, exchange, symbol) leg")
	}
}

func TestNewRejectsMismatchedLegCount(t *testing.T) {
	legs := []arbitrage.Leg{{Source: 1, Exchange: "X0", Symbol: "A"}}
	if _, err := New(legs, nil, arbitrage.Parameters{}); err == nil {
		t.Fatalf("expected error for mismatched leg/config count")
	}
}

// End-to-end: replaying reference data, market status, and crossing
// top-of-book through the engine should arm both legs, fill both
// aggressively against the resting matchers, and leave the reporter
// holding one fill per leg.
func TestEngineEndToEndArbitrageFill(t *testing.T) {
	e := newTestEngine(t)
	info0 := event.MessageInfo{Source: 1}

	e.HandleDownloadEnd(info0, event.DownloadEnd{Source: 1})
	e.HandleReady(info0, event.Ready{Source: 1})
	e.HandleGatewayStatus(info0, event.GatewayStatus{Source: 1, Connected: true})
	e.HandleStreamStatus(info0, event.StreamStatus{Source: 1, Supported: true})

	e.HandleReferenceData(info0, event.ReferenceData{Exchange: "X0", Symbol: "A", TickSize: 0.1, Precision: event.Precision1})
	e.HandleReferenceData(info0, event.ReferenceData{Exchange: "X1", Symbol: "B", TickSize: 0.1, Precision: event.Precision1})
	e.HandleMarketStatus(info0, event.MarketStatus{Exchange: "X0", Symbol: "A", TradingStatus: event.TradingStatusOpen})
	e.HandleMarketStatus(info0, event.MarketStatus{Exchange: "X1", Symbol: "B", TradingStatus: event.TradingStatusOpen})

	// Seed each matcher's own book first so the aggressive arbitrage
	// order crosses into resting liquidity instead of just joining an
	// empty book.
	e.HandleTopOfBook(info0, event.TopOfBook{Exchange: "X0", Symbol: "A", Layer: event.Layer{BidPrice: 10.5, BidQuantity: 5, AskPrice: 10.6, AskQuantity: 5}})
	e.HandleTopOfBook(info0, event.TopOfBook{Exchange: "X1", Symbol: "B", Layer: event.Layer{BidPrice: 11.0, BidQuantity: 5, AskPrice: 11.1, AskQuantity: 5}})

	// Widen leg0's strategy-visible top of book so the spread crosses
	// threshold: BUY leg0 @ 10.1 vs SELL leg1 @ 11.0.
	e.HandleTopOfBook(info0, event.TopOfBook{Exchange: "X0", Symbol: "A", Layer: event.Layer{BidPrice: 9.9, BidQuantity: 5, AskPrice: 10.1, AskQuantity: 5}})

	summary := e.Recorder().Summarize()
	if summary.TradeCount != 2 {
		t.Fatalf("expected 2 recorded fills (one per leg), got %d: %+v", summary.TradeCount, summary.Lines)
	}
	for _, idx := range []int{0, 1} {
		if e.Strategy().Leg(idx).OrderState != arbitrage.OrderStateIdle {
			t.Fatalf("expected leg %d back to IDLE after full fill, got %v", idx, e.Strategy().Leg(idx).OrderState)
		}
	}
}
