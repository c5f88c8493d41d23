package matcher

import (
	"testing"

	"github.com/quantlink/algo/pkg/event"
	"github.com/quantlink/algo/pkg/ordercache"
)

func newTestQueuePosition() (*QueuePositionSimple, *recordingDispatcher) {
	cache := ordercache.NewMemoryCache()
	disp := &recordingDispatcher{}
	cfg := Config{Source: 1, Exchange: "XSIM", Symbol: "TEST", MarketDataSource: event.MarketDataSourceMarketByPrice, Variant: VariantQueuePositionSimple}
	q := NewQueuePositionSimple(cfg, cache, disp)
	info := event.MessageInfo{Source: 1}
	q.HandleReferenceData(info, event.ReferenceData{Exchange: "XSIM", Symbol: "TEST", TickSize: 1, Precision: event.Precision0, MinTradeVol: 1})
	return q, disp
}

func TestQueuePositionSeedsAheadFromDisplayedVolume(t *testing.T) {
	q, _ := newTestQueuePosition()
	info := event.MessageInfo{Source: 1}
	q.HandleMarketByPriceUpdate(info, event.MarketByPriceUpdate{
		Bids:     []event.PriceLevel{{Price: 100, Quantity: 5}, {Price: 99, Quantity: 5}},
		Asks:     []event.PriceLevel{{Price: 101, Quantity: 5}},
		Snapshot: true,
	})
	q.HandleCreateOrder(info, event.CreateOrder{OrderID: 1, Side: event.SideBuy, Price: 99, Quantity: 3})

	var o *ordercache.Order
	q.cache.GetOrder(1, func(order *ordercache.Order) { o = order })
	if o.Ahead != 5 {
		t.Fatalf("expected seeded ahead=5 (displayed volume), got %v", o.Ahead)
	}
}

func TestQueuePositionDrainsAheadThenFills(t *testing.T) {
	q, disp := newTestQueuePosition()
	info := event.MessageInfo{Source: 1}
	q.HandleMarketByPriceUpdate(info, event.MarketByPriceUpdate{
		Bids:     []event.PriceLevel{{Price: 99, Quantity: 5}},
		Asks:     []event.PriceLevel{{Price: 101, Quantity: 5}},
		Snapshot: true,
	})
	q.HandleCreateOrder(info, event.CreateOrder{OrderID: 1, Side: event.SideBuy, Price: 99, Quantity: 3})

	q.HandleTradeSummary(info, event.TradeSummary{Trades: []event.TradePrint{{Price: 99, Quantity: 4, Side: event.SideSell}}})
	var o *ordercache.Order
	q.cache.GetOrder(1, func(order *ordercache.Order) { o = order })
	if o.Ahead != 1 {
		t.Fatalf("expected ahead drained to 1 (5 - 4), got %v", o.Ahead)
	}
	if len(disp.tradesFor(1)) != 0 {
		t.Fatalf("expected no fill while ahead > 0")
	}

	q.HandleTradeSummary(info, event.TradeSummary{Trades: []event.TradePrint{{Price: 99, Quantity: 2, Side: event.SideSell}}})
	q.cache.GetOrder(1, func(order *ordercache.Order) { o = order })
	if o.Ahead != 0 {
		t.Fatalf("expected ahead fully drained, got %v", o.Ahead)
	}
	trades := disp.tradesFor(1)
	if len(trades) != 1 || trades[0].Fill.Quantity != 1 {
		t.Fatalf("expected one partial fill of qty=1 (2 - 1 spent draining ahead), got %+v", trades)
	}
	if o.RemainingQuantity != 2 || o.Status != event.OrderStatusWorking {
		t.Fatalf("expected order still WORKING with remaining=2, got status=%v remaining=%v", o.Status, o.RemainingQuantity)
	}
}

func TestQueuePositionClampsAheadOnDisplayedVolumeDrop(t *testing.T) {
	q, _ := newTestQueuePosition()
	info := event.MessageInfo{Source: 1}
	q.HandleMarketByPriceUpdate(info, event.MarketByPriceUpdate{
		Bids:     []event.PriceLevel{{Price: 98, Quantity: 5}},
		Asks:     []event.PriceLevel{{Price: 101, Quantity: 5}},
		Snapshot: true,
	})
	q.HandleCreateOrder(info, event.CreateOrder{OrderID: 1, Side: event.SideBuy, Price: 98, Quantity: 1})

	q.HandleMarketByPriceUpdate(info, event.MarketByPriceUpdate{
		Bids: []event.PriceLevel{{Price: 98, Quantity: 2}},
	})

	var o *ordercache.Order
	q.cache.GetOrder(1, func(order *ordercache.Order) { o = order })
	if o.Ahead != 2 {
		t.Fatalf("expected ahead clamped down to new displayed volume 2, got %v", o.Ahead)
	}

	q.HandleMarketByPriceUpdate(info, event.MarketByPriceUpdate{
		Bids: []event.PriceLevel{{Price: 98, Quantity: 10}},
	})
	q.cache.GetOrder(1, func(order *ordercache.Order) { o = order })
	if o.Ahead != 2 {
		t.Fatalf("expected ahead unchanged by a volume increase, got %v", o.Ahead)
	}
}
