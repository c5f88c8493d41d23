// Package event defines the wire data model shared by the matcher and
// the arbitrage strategy: the MessageInfo header, market-data events,
// order lifecycle requests/acks, and strategy lifecycle notifications.
//
// C++: roq/api.hpp + roq/algo/matcher.hpp + roq/algo/strategy.hpp
package event

import (
	"math"
	"time"
)

// MessageInfo is the header attached to every event. ReceiveTime is a
// monotonic clock reading (nanoseconds since an arbitrary epoch);
// ReceiveTimeUTC is the matching wall-clock timestamp. Source is a
// small integer identifying the upstream feed/gateway.
//
// C++: roq::MessageInfo
type MessageInfo struct {
	ReceiveTime    int64     // monotonic, ns
	ReceiveTimeUTC time.Time // wall clock
	Source         uint8
	StreamID       uint32
}

// Side is the direction of an order.
type Side int8

const (
	SideUndefined Side = iota
	SideBuy
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return "UNDEFINED"
	}
}

// Precision describes how many decimals the exchange reports for
// prices and quantities. Zero value means "unknown".
type Precision int8

const (
	PrecisionUnknown Precision = iota
	Precision0
	Precision1
	Precision2
	Precision3
	Precision4
	Precision5
	Precision6
	Precision7
	Precision8
)

// Decimals returns the number of fractional digits this precision
// represents, or -1 when unknown.
func (p Precision) Decimals() int {
	if p == PrecisionUnknown {
		return -1
	}
	return int(p - Precision0)
}

// NaN is the "unknown" sentinel for prices and quantities, matching
// the exchange wire convention (spec §3, DESIGN NOTES).
var NaN = math.NaN()

// IsKnown reports whether x is a known (non-NaN) value.
func IsKnown(x float64) bool {
	return !math.IsNaN(x)
}

// Layer is a single best-bid/best-ask snapshot.
type Layer struct {
	BidPrice    float64
	BidQuantity float64
	AskPrice    float64
	AskQuantity float64
}

// TradingStatus mirrors an exchange-reported trading session state.
type TradingStatus int8

const (
	TradingStatusUndefined TradingStatus = iota
	TradingStatusClosed
	TradingStatusOpen
	TradingStatusHalted
)

// MarketDataSource selects which feed shape a MarketData aggregator
// (or matcher) consumes for its best-layer derivation.
//
// C++: roq::algo::MarketDataSource
type MarketDataSource int8

const (
	MarketDataSourceTopOfBook MarketDataSource = iota
	MarketDataSourceMarketByPrice
	MarketDataSourceMarketByOrder
)

func (s MarketDataSource) String() string {
	switch s {
	case MarketDataSourceTopOfBook:
		return "TOP_OF_BOOK"
	case MarketDataSourceMarketByPrice:
		return "MARKET_BY_PRICE"
	case MarketDataSourceMarketByOrder:
		return "MARKET_BY_ORDER"
	default:
		return "UNKNOWN"
	}
}

// ParseMarketDataSource parses the config string form.
func ParseMarketDataSource(s string) (MarketDataSource, bool) {
	switch s {
	case "TOP_OF_BOOK":
		return MarketDataSourceTopOfBook, true
	case "MARKET_BY_PRICE":
		return MarketDataSourceMarketByPrice, true
	case "MARKET_BY_ORDER":
		return MarketDataSourceMarketByOrder, true
	default:
		return 0, false
	}
}

// ReferenceData carries the static per-instrument facts needed for
// tick snapping and lot validation.
type ReferenceData struct {
	Exchange    string
	Symbol      string
	TickSize    float64
	Precision   Precision
	Multiplier  float64
	MinTradeVol float64
}

// MarketStatus carries the exchange's trading session state.
type MarketStatus struct {
	Exchange       string
	Symbol         string
	TradingStatus  TradingStatus
	ExchangeTimeUTC time.Duration // duration since the Unix epoch, ns precision
}

// TopOfBook is a direct best-bid/best-ask snapshot (floating point).
type TopOfBook struct {
	Exchange string
	Symbol   string
	Layer    Layer
}

// PriceLevel is one depth level of a market-by-price update.
type PriceLevel struct {
	Price    float64
	Quantity float64
}

// MarketByPriceUpdate carries incremental/snapshot depth by price
// level, one PriceLevel per entry in Bids/Asks.
type MarketByPriceUpdate struct {
	Exchange string
	Symbol   string
	Bids     []PriceLevel
	Asks     []PriceLevel
	// Snapshot == true means this is a full snapshot; false means an
	// incremental delta (levels present replace, others unaffected).
	Snapshot bool
}

// OrderBookEntry is one resting order in a market-by-order update.
type OrderBookEntry struct {
	OrderID  uint64
	Side     Side
	Price    float64
	Quantity float64
	// Remove, when true, means this order_id should be removed from
	// the cached book instead of upserted.
	Remove bool
}

// MarketByOrderUpdate carries incremental per-order depth.
type MarketByOrderUpdate struct {
	Exchange string
	Symbol   string
	Orders   []OrderBookEntry
	Snapshot bool
}

// TradePrint is a single public trade print inside a TradeSummary.
type TradePrint struct {
	Price    float64
	Quantity float64
	Side     Side // aggressor side, when known; SideUndefined otherwise
}

// TradeSummary carries one or more public trade prints since the last
// update (used by the queue-position matcher to drain queue-ahead).
type TradeSummary struct {
	Exchange string
	Symbol   string
	Trades   []TradePrint
}

// StatisticsUpdate is forwarded verbatim; the core never interprets it.
type StatisticsUpdate struct {
	Exchange string
	Symbol   string
	Type     string
	Value    float64
}
