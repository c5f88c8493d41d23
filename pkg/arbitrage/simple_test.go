package arbitrage

import (
	"testing"

	"github.com/quantlink/algo/pkg/event"
)

type recordingRouter struct {
	creates []event.CreateOrder
	cancels []event.CancelOrder
}

func (r *recordingRouter) SendCreateOrder(req event.CreateOrder, source uint8, isLast bool) {
	r.creates = append(r.creates, req)
}
func (r *recordingRouter) SendModifyOrder(event.ModifyOrder, uint8, bool) {}
func (r *recordingRouter) SendCancelOrder(req event.CancelOrder, source uint8, isLast bool) {
	r.cancels = append(r.cancels, req)
}
func (r *recordingRouter) SendCancelAllOrders(event.CancelAllOrders, uint8) {}

func newTestSimple(t *testing.T) (*Simple, *recordingRouter) {
	t.Helper()
	legs := []Leg{
		{Source: 1, Account: "acc", Exchange: "X0", Symbol: "A"},
		{Source: 1, Account: "acc", Exchange: "X1", Symbol: "B"},
	}
	params := Parameters{
		MarketDataSource: event.MarketDataSourceTopOfBook,
		Threshold:        0.5,
		Quantity0:        1,
		MinPosition0:     -10,
		MaxPosition0:     10,
	}
	router := &recordingRouter{}
	s := NewSimple(legs, params, router)

	info := event.MessageInfo{Source: 1}
	s.HandleDownloadEnd(info, event.DownloadEnd{Source: 1})
	s.HandleReady(info, event.Ready{Source: 1})
	s.HandleGatewayStatus(info, event.GatewayStatus{Source: 1, Connected: true})
	s.HandleStreamStatus(info, event.StreamStatus{Source: 1, Supported: true})

	s.HandleReferenceData(info, event.ReferenceData{Exchange: "X0", Symbol: "A", TickSize: 0.1, Precision: event.Precision1})
	s.HandleReferenceData(info, event.ReferenceData{Exchange: "X1", Symbol: "B", TickSize: 0.1, Precision: event.Precision1})
	s.HandleMarketStatus(info, event.MarketStatus{Exchange: "X0", Symbol: "A", TradingStatus: event.TradingStatusOpen})
	s.HandleMarketStatus(info, event.MarketStatus{Exchange: "X1", Symbol: "B", TradingStatus: event.TradingStatusOpen})
	return s, router
}

// S6 — Arbitrage entry.
func TestS6ArbitrageEntry(t *testing.T) {
	s, router := newTestSimple(t)
	info := event.MessageInfo{Source: 1}

	s.HandleTopOfBook(info, event.TopOfBook{Exchange: "X0", Symbol: "A", Layer: event.Layer{BidPrice: 10, BidQuantity: 5, AskPrice: 10.1, AskQuantity: 5}})
	s.HandleTopOfBook(info, event.TopOfBook{Exchange: "X1", Symbol: "B", Layer: event.Layer{BidPrice: 11, BidQuantity: 5, AskPrice: 11.1, AskQuantity: 5}})

	if len(router.creates) != 2 {
		t.Fatalf("expected two orders armed, got %d: %+v", len(router.creates), router.creates)
	}
	leg0Req, leg1Req := router.creates[0], router.creates[1]
	if leg0Req.Side != event.SideBuy || leg0Req.Price != 10.1 || leg0Req.Quantity != 1 {
		t.Fatalf("expected BUY 1 @ 10.1 on leg0, got %+v", leg0Req)
	}
	if leg1Req.Side != event.SideSell || leg1Req.Price != 11 || leg1Req.Quantity != 1 {
		t.Fatalf("expected SELL 1 @ 11 on leg1, got %+v", leg1Req)
	}

	s.HandleOrderAck(info, event.OrderAck{OrderID: leg0Req.OrderID, RequestStatus: event.RequestStatusAccepted, Status: event.OrderStatusWorking})
	s.HandleOrderAck(info, event.OrderAck{OrderID: leg1Req.OrderID, RequestStatus: event.RequestStatusAccepted, Status: event.OrderStatusWorking})

	if s.Leg(0).OrderState != OrderStateWorking || s.Leg(1).OrderState != OrderStateWorking {
		t.Fatalf("expected both legs WORKING after acceptance, got %v / %v", s.Leg(0).OrderState, s.Leg(1).OrderState)
	}
}

func TestArmingSkippedWhenLegNotIdle(t *testing.T) {
	s, router := newTestSimple(t)
	info := event.MessageInfo{Source: 1}
	s.Leg(1).OrderState = OrderStateWorking

	s.HandleTopOfBook(info, event.TopOfBook{Exchange: "X0", Symbol: "A", Layer: event.Layer{BidPrice: 10, BidQuantity: 5, AskPrice: 10.1, AskQuantity: 5}})
	s.HandleTopOfBook(info, event.TopOfBook{Exchange: "X1", Symbol: "B", Layer: event.Layer{BidPrice: 11, BidQuantity: 5, AskPrice: 11.1, AskQuantity: 5}})

	if len(router.creates) != 0 {
		t.Fatalf("expected no orders armed while leg1 is not idle, got %+v", router.creates)
	}
}

func TestRejectAbandonsAttemptAndCancelsSibling(t *testing.T) {
	s, router := newTestSimple(t)
	info := event.MessageInfo{Source: 1}

	s.HandleTopOfBook(info, event.TopOfBook{Exchange: "X0", Symbol: "A", Layer: event.Layer{BidPrice: 10, BidQuantity: 5, AskPrice: 10.1, AskQuantity: 5}})
	s.HandleTopOfBook(info, event.TopOfBook{Exchange: "X1", Symbol: "B", Layer: event.Layer{BidPrice: 11, BidQuantity: 5, AskPrice: 11.1, AskQuantity: 5}})
	leg0Req, leg1Req := router.creates[0], router.creates[1]

	s.HandleOrderAck(info, event.OrderAck{OrderID: leg1Req.OrderID, RequestStatus: event.RequestStatusAccepted, Status: event.OrderStatusWorking})
	s.HandleOrderAck(info, event.OrderAck{OrderID: leg0Req.OrderID, RequestStatus: event.RequestStatusRejected, Error: event.ErrorInvalidPrice, Status: event.OrderStatusRejected})

	if s.Leg(0).OrderState != OrderStateIdle {
		t.Fatalf("expected rejected leg0 to return to IDLE, got %v", s.Leg(0).OrderState)
	}
	if len(router.cancels) != 1 || router.cancels[0].OrderID != leg1Req.OrderID {
		t.Fatalf("expected accepted sibling leg1 to be cancelled, got %+v", router.cancels)
	}
	if s.Leg(1).OrderState != OrderStateCancel {
		t.Fatalf("expected leg1 in CANCEL state, got %v", s.Leg(1).OrderState)
	}
}
