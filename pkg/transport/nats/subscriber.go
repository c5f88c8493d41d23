package nats

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"

	"github.com/quantlink/algo/pkg/event"
	"github.com/quantlink/algo/pkg/replay"
)

// MarketDataSink is the inbound side consuming a matcher's published
// market-data stream; matcher.Handler and arbitrage.Simple both
// satisfy it (same interface as replay.MarketDataSink).
type MarketDataSink = replay.MarketDataSink

// SubscribeMarketData subscribes sink to exchange/symbol's market-data
// subject, dispatching each decoded message in-line on the NATS
// client's delivery goroutine.
//
// C++: none; mirrors golang/pkg/strategy/engine.go's
// SubscribeMarketData subscribe-and-dispatch shape.
func SubscribeMarketData(conn *Conn, exchange, symbol string, sink MarketDataSink) (*nats.Subscription, error) {
	subject := marketDataSubject(exchange, symbol)
	sub, err := conn.nc.Subscribe(subject, func(msg *nats.Msg) {
		var env envelope
		if err := json.Unmarshal(msg.Data, &env); err != nil {
			log.Printf("[transport/nats] malformed envelope on %s: %v", subject, err)
			return
		}
		rec := replay.Record{Info: env.Info.toEventInfo(), Kind: replay.Kind(env.Kind), Payload: env.Payload}
		if err := replay.Dispatch(rec, sink); err != nil {
			log.Printf("[transport/nats] dispatch failed on %s: %v", subject, err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("nats: subscribe %s: %w", subject, err)
	}
	log.Printf("[transport/nats] subscribed: %s", subject)
	return sub, nil
}

// OrderSink is every inbound entry point a subscribed order stream can
// drive; matcher.Handler's order-lifecycle subset satisfies it.
type OrderSink interface {
	HandleCreateOrder(info event.MessageInfo, req event.CreateOrder)
	HandleModifyOrder(info event.MessageInfo, req event.ModifyOrder)
	HandleCancelOrder(info event.MessageInfo, req event.CancelOrder)
	HandleCancelAllOrders(info event.MessageInfo, req event.CancelAllOrders)
}

// SubscribeOrders subscribes sink to account/exchange/symbol's order
// subject, matching golang/pkg/strategy/engine.go's
// subscribeOrderUpdates wildcard-subject shape (here scoped to one
// leg rather than "order.>").
func SubscribeOrders(conn *Conn, account, exchange, symbol string, sink OrderSink) (*nats.Subscription, error) {
	subject := orderSubject(account, exchange, symbol)
	sub, err := conn.nc.Subscribe(subject, func(msg *nats.Msg) {
		var env envelope
		if err := json.Unmarshal(msg.Data, &env); err != nil {
			log.Printf("[transport/nats] malformed envelope on %s: %v", subject, err)
			return
		}
		if err := dispatchOrder(env, sink); err != nil {
			log.Printf("[transport/nats] dispatch failed on %s: %v", subject, err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("nats: subscribe %s: %w", subject, err)
	}
	log.Printf("[transport/nats] subscribed: %s", subject)
	return sub, nil
}

func dispatchOrder(env envelope, sink OrderSink) error {
	info := env.Info.toEventInfo()
	switch env.Kind {
	case "create_order":
		var v event.CreateOrder
		if err := json.Unmarshal(env.Payload, &v); err != nil {
			return err
		}
		sink.HandleCreateOrder(info, v)
	case "modify_order":
		var v event.ModifyOrder
		if err := json.Unmarshal(env.Payload, &v); err != nil {
			return err
		}
		sink.HandleModifyOrder(info, v)
	case "cancel_order":
		var v event.CancelOrder
		if err := json.Unmarshal(env.Payload, &v); err != nil {
			return err
		}
		sink.HandleCancelOrder(info, v)
	case "cancel_all_orders":
		var v event.CancelAllOrders
		if err := json.Unmarshal(env.Payload, &v); err != nil {
			return err
		}
		sink.HandleCancelAllOrders(info, v)
	default:
		return fmt.Errorf("unrecognized order envelope kind %q", env.Kind)
	}
	return nil
}
