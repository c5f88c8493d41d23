// Package marketdata absorbs reference data, market status, and one of
// {top-of-book, market-by-price, market-by-order} updates into a single
// derived best bid/ask layer plus a trading-status snapshot, per spec
// §2/§4.1 "MarketData aggregator".
//
// C++: roq::algo::tools::MarketData (original_source/include/roq/algo/
// tools/market_data.hpp)
package marketdata

import (
	"time"

	"github.com/quantlink/algo/pkg/event"
	"github.com/quantlink/algo/pkg/tick"
)

// MarketData is the per-(exchange,symbol) aggregator. Zero value is
// usable but has_tick_size() is false until a ReferenceData event is
// absorbed.
type MarketData struct {
	source event.MarketDataSource

	tickSize    float64
	precision   event.Precision
	multiplier  float64
	minTradeVol float64

	tradingStatus   event.TradingStatus
	exchangeTimeUTC time.Duration
	lastReceiveUTC  time.Time

	best event.Layer

	// market-by-price cache: price -> quantity, kept only while
	// source == MarketDataSourceMarketByPrice.
	bidLevels map[float64]float64
	askLevels map[float64]float64

	// market-by-order cache: order_id -> entry, kept only while
	// source == MarketDataSourceMarketByOrder.
	orders map[uint64]event.OrderBookEntry
}

// New creates an aggregator configured for the given feed shape.
func New(source event.MarketDataSource) *MarketData {
	m := &MarketData{
		source:      source,
		tickSize:    event.NaN,
		multiplier:  event.NaN,
		minTradeVol: event.NaN,
		best: event.Layer{
			BidPrice:    event.NaN,
			BidQuantity: event.NaN,
			AskPrice:    event.NaN,
			AskQuantity: event.NaN,
		},
	}
	switch source {
	case event.MarketDataSourceMarketByPrice:
		m.bidLevels = make(map[float64]float64)
		m.askLevels = make(map[float64]float64)
	case event.MarketDataSourceMarketByOrder:
		m.orders = make(map[uint64]event.OrderBookEntry)
	}
	return m
}

// HasTickSize reports whether reference data has been received.
func (m *MarketData) HasTickSize() bool {
	return event.IsKnown(m.tickSize) && m.precision != event.PrecisionUnknown
}

// TickSize returns the last known tick size (NaN if unknown).
func (m *MarketData) TickSize() float64 { return m.tickSize }

// Precision returns the last known price precision.
func (m *MarketData) Precision() event.Precision { return m.precision }

// MinTradeVol returns the last known minimum tradable lot size (NaN if
// unknown).
func (m *MarketData) MinTradeVol() float64 { return m.minTradeVol }

// Multiplier returns the last known contract multiplier (NaN if
// unknown).
func (m *MarketData) Multiplier() float64 { return m.multiplier }

// TopOfBook returns the derived best layer.
func (m *MarketData) TopOfBook() event.Layer { return m.best }

// ExchangeTimeUTC returns the last exchange-reported time, as a
// duration since the Unix epoch.
func (m *MarketData) ExchangeTimeUTC() time.Duration { return m.exchangeTimeUTC }

// PriceToTicks snaps price to ticks using the currently known tick
// size/precision, per spec §4.1.
func (m *MarketData) PriceToTicks(price float64) (ticks int64, exact bool) {
	return tick.ToTicks(price, m.tickSize, m.precision.Decimals())
}

// IsMarketActive reports whether the market should be considered open,
// per spec §4.1: true when trading status is explicitly OPEN, or, when
// the exchange publishes no trading status at all, when the most recent
// exchange_time_utc is within maxAge of the message's receive time.
func (m *MarketData) IsMarketActive(info event.MessageInfo, maxAge time.Duration) bool {
	if m.tradingStatus == event.TradingStatusOpen {
		return true
	}
	if m.tradingStatus != event.TradingStatusUndefined {
		return false
	}
	if m.exchangeTimeUTC == 0 {
		return false
	}
	age := info.ReceiveTimeUTC.Sub(time.Unix(0, 0).Add(m.exchangeTimeUTC))
	if age < 0 {
		age = -age
	}
	return age <= maxAge
}

// OnReferenceData absorbs static per-instrument facts.
func (m *MarketData) OnReferenceData(ref event.ReferenceData) {
	m.tickSize = ref.TickSize
	m.precision = ref.Precision
	m.multiplier = ref.Multiplier
	m.minTradeVol = ref.MinTradeVol
}

// OnMarketStatus absorbs a trading-status snapshot.
func (m *MarketData) OnMarketStatus(status event.MarketStatus) {
	m.tradingStatus = status.TradingStatus
	m.exchangeTimeUTC = status.ExchangeTimeUTC
}

// OnTopOfBook absorbs a direct best-layer update. Returns true iff the
// published best layer changed. Only takes effect when configured for
// MarketDataSourceTopOfBook.
func (m *MarketData) OnTopOfBook(tob event.TopOfBook) bool {
	if m.source != event.MarketDataSourceTopOfBook {
		return false
	}
	return m.publish(tob.Layer)
}

// OnMarketByPriceUpdate absorbs an incremental/snapshot depth update
// and re-derives the best layer. Only takes effect when configured for
// MarketDataSourceMarketByPrice.
func (m *MarketData) OnMarketByPriceUpdate(mbp event.MarketByPriceUpdate) bool {
	if m.source != event.MarketDataSourceMarketByPrice {
		return false
	}
	if mbp.Snapshot {
		m.bidLevels = make(map[float64]float64)
		m.askLevels = make(map[float64]float64)
	}
	for _, lvl := range mbp.Bids {
		if lvl.Quantity <= 0 {
			delete(m.bidLevels, lvl.Price)
		} else {
			m.bidLevels[lvl.Price] = lvl.Quantity
		}
	}
	for _, lvl := range mbp.Asks {
		if lvl.Quantity <= 0 {
			delete(m.askLevels, lvl.Price)
		} else {
			m.askLevels[lvl.Price] = lvl.Quantity
		}
	}
	return m.publish(bestFromLevels(m.bidLevels, m.askLevels))
}

// OnMarketByOrderUpdate absorbs a per-order depth update and re-derives
// the best layer. Only takes effect when configured for
// MarketDataSourceMarketByOrder.
func (m *MarketData) OnMarketByOrderUpdate(mbo event.MarketByOrderUpdate) bool {
	if m.source != event.MarketDataSourceMarketByOrder {
		return false
	}
	if mbo.Snapshot {
		m.orders = make(map[uint64]event.OrderBookEntry)
	}
	for _, o := range mbo.Orders {
		if o.Remove || o.Quantity <= 0 {
			delete(m.orders, o.OrderID)
		} else {
			m.orders[o.OrderID] = o
		}
	}
	bidLevels := make(map[float64]float64)
	askLevels := make(map[float64]float64)
	for _, o := range m.orders {
		switch o.Side {
		case event.SideBuy:
			bidLevels[o.Price] += o.Quantity
		case event.SideSell:
			askLevels[o.Price] += o.Quantity
		}
	}
	return m.publish(bestFromLevels(bidLevels, askLevels))
}

// OnTradeSummary absorbs nothing and does not alter the derived best
// layer; trade prints only matter to the queue-position matcher, which
// reads them directly from the event.
func (m *MarketData) OnTradeSummary(event.TradeSummary) {}

// OnStatisticsUpdate is forwarded unmodified by callers; nothing to
// absorb here.
func (m *MarketData) OnStatisticsUpdate(event.StatisticsUpdate) {}

// publish updates the best layer if it changed and reference data has
// already been received (spec §4.1 invariant: "the best layer is only
// published downstream after reference data has been received").
func (m *MarketData) publish(layer event.Layer) bool {
	changed := layer != m.best
	m.best = layer
	return changed && m.HasTickSize()
}

func bestFromLevels(bids, asks map[float64]float64) event.Layer {
	layer := event.Layer{
		BidPrice:    event.NaN,
		BidQuantity: event.NaN,
		AskPrice:    event.NaN,
		AskQuantity: event.NaN,
	}
	bestBid := event.NaN
	for price, qty := range bids {
		if qty <= 0 {
			continue
		}
		if !event.IsKnown(bestBid) || price > bestBid {
			bestBid = price
			layer.BidPrice = price
			layer.BidQuantity = qty
		}
	}
	bestAsk := event.NaN
	for price, qty := range asks {
		if qty <= 0 {
			continue
		}
		if !event.IsKnown(bestAsk) || price < bestAsk {
			bestAsk = price
			layer.AskPrice = price
			layer.AskQuantity = qty
		}
	}
	return layer
}

// LevelVolume returns the currently displayed quantity at price on
// side, used by the queue-position matcher to seed/clamp `ahead`
// (spec §4.3). Works for all three feed shapes: TOP_OF_BOOK only knows
// the best level, MBP/MBO know the full cached depth.
func (m *MarketData) LevelVolume(side event.Side, price float64) float64 {
	switch m.source {
	case event.MarketDataSourceMarketByPrice:
		if side == event.SideBuy {
			return m.bidLevels[price]
		}
		return m.askLevels[price]
	case event.MarketDataSourceMarketByOrder:
		var total float64
		for _, o := range m.orders {
			if o.Side == side && o.Price == price {
				total += o.Quantity
			}
		}
		return total
	default: // TOP_OF_BOOK
		if side == event.SideBuy && m.best.BidPrice == price {
			return m.best.BidQuantity
		}
		if side == event.SideSell && m.best.AskPrice == price {
			return m.best.AskQuantity
		}
		return 0
	}
}
