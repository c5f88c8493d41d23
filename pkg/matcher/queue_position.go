package matcher

import (
	"math"

	"github.com/quantlink/algo/pkg/event"
	"github.com/quantlink/algo/pkg/ordercache"
)

// QueuePositionSimple adds a per-order queue-ahead estimate to Simple,
// updated from public trade summaries and clamped down by market-by-
// price volume drops, per spec §4.3.
//
// C++: original_source/src/roq/algo/matcher/queue_position_simple.hpp
type QueuePositionSimple struct {
	*Simple
}

// NewQueuePositionSimple constructs a queue-position matcher over
// cache, emitting through dispatcher.
func NewQueuePositionSimple(cfg Config, cache ordercache.Cache, dispatcher Dispatcher) *QueuePositionSimple {
	s := NewSimple(cfg, cache, dispatcher)
	q := &QueuePositionSimple{Simple: s}
	s.onRestingInsert = q.seedAhead
	return q
}

// seedAhead sets a freshly-rested order's initial ahead to the
// currently displayed volume at its price level (spec §4.3: "or 0 if
// it is now the best" falls out naturally — an untouched price level
// reports zero displayed volume).
func (q *QueuePositionSimple) seedAhead(o *ordercache.Order) {
	o.Ahead = q.md.LevelVolume(o.Side, o.Price)
}

// HandleTradeSummary additionally drains queue-ahead for every resting
// order at a traded price level, filling any order whose ahead has
// reached zero for the trade's residual quantity (spec §4.3, second
// bullet).
//
// The source text scopes this to prints that "touch a price level
// holding our resting orders" without pinning down whether that means
// only the aggressor's opposite side; a trade print's price can only
// coincide with resting orders on one of our two sides in practice, so
// this checks both sides at the print's price rather than branching on
// TradePrint.Side.
func (q *QueuePositionSimple) HandleTradeSummary(info event.MessageInfo, ts event.TradeSummary) {
	q.Simple.HandleTradeSummary(info, ts)
	for _, tp := range ts.Trades {
		q.drainQueueAt(info, q.buys, tp.Price, tp.Quantity)
		q.drainQueueAt(info, q.sells, tp.Price, tp.Quantity)
	}
}

func (q *QueuePositionSimple) drainQueueAt(info event.MessageInfo, idx *restingIndex, price, tradedQty float64) {
	residual := tradedQty
	for _, o := range idx.AtPrice(price) {
		if residual <= 0 {
			break
		}
		if o.Ahead > 0 {
			consumed := math.Min(o.Ahead, residual)
			o.Ahead -= consumed
			residual -= consumed
		}
		if o.Ahead <= 0 && residual > 0 {
			fillQty := math.Min(o.RemainingQuantity, residual)
			q.fillPartial(info, o, o.Price, fillQty)
			residual -= fillQty
			if o.IsTerminal() {
				idx.Remove(o.OrderID)
			}
		}
	}
}

// HandleMarketByPriceUpdate additionally clamps ahead down to the
// newly displayed volume at every touched level (spec §4.3, third
// bullet): a quote cancellation ahead of us reduces our estimate, but
// a quote arriving never raises it back up.
func (q *QueuePositionSimple) HandleMarketByPriceUpdate(info event.MessageInfo, mbp event.MarketByPriceUpdate) {
	q.Simple.HandleMarketByPriceUpdate(info, mbp)
	for _, lvl := range mbp.Bids {
		q.clampAhead(q.buys, lvl.Price, lvl.Quantity)
	}
	for _, lvl := range mbp.Asks {
		q.clampAhead(q.sells, lvl.Price, lvl.Quantity)
	}
}

func (q *QueuePositionSimple) clampAhead(idx *restingIndex, price, displayedVolume float64) {
	for _, o := range idx.AtPrice(price) {
		if displayedVolume < o.Ahead {
			o.Ahead = displayedVolume
		}
	}
}
