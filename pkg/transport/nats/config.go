package nats

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/quantlink/algo/pkg/arbitrage"
	"github.com/quantlink/algo/pkg/event"
)

// wireParameters mirrors arbitrage.Parameters for the wire, carrying
// MaxAge as a durationpb.Duration rather than time.Duration's integer
// nanoseconds so a non-Go operator tool publishing a reconfiguration
// can set it unambiguously.
type wireParameters struct {
	MarketDataSource uint8                `json:"market_data_source"`
	MaxAge           *durationpb.Duration `json:"max_age"`
	Threshold        float64              `json:"threshold"`
	Quantity0        float64              `json:"quantity_0"`
	MinPosition0     float64              `json:"min_position_0"`
	MaxPosition0     float64              `json:"max_position_0"`
	PublishSource    uint8                `json:"publish_source"`
	StrategyID       string               `json:"strategy_id"`
}

func toWireParameters(p arbitrage.Parameters) wireParameters {
	return wireParameters{
		MarketDataSource: uint8(p.MarketDataSource),
		MaxAge:           durationpb.New(p.MaxAge),
		Threshold:        p.Threshold,
		Quantity0:        p.Quantity0,
		MinPosition0:     p.MinPosition0,
		MaxPosition0:     p.MaxPosition0,
		PublishSource:    p.PublishSource,
		StrategyID:       p.StrategyID,
	}
}

func (w wireParameters) toParameters() arbitrage.Parameters {
	p := arbitrage.Parameters{
		MarketDataSource: event.MarketDataSource(w.MarketDataSource),
		Threshold:        w.Threshold,
		Quantity0:        w.Quantity0,
		MinPosition0:     w.MinPosition0,
		MaxPosition0:     w.MaxPosition0,
		PublishSource:    w.PublishSource,
		StrategyID:       w.StrategyID,
	}
	if w.MaxAge != nil {
		p.MaxAge = w.MaxAge.AsDuration()
	}
	return p
}

func configSubject(strategyID string) string {
	return fmt.Sprintf("config.%s", strategyID)
}

// PublishParameters pushes a live reconfiguration of strategy's
// threshold/sizing/position-limit knobs to every subscriber.
func (c *Conn) PublishParameters(strategyID string, p arbitrage.Parameters) error {
	data, err := json.Marshal(toWireParameters(p))
	if err != nil {
		return fmt.Errorf("nats: marshal parameters: %w", err)
	}
	subject := configSubject(strategyID)
	if err := c.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("nats: publish %s: %w", subject, err)
	}
	return nil
}

// SubscribeParameters applies every published reconfiguration directly
// to strategy via arbitrage.Simple.SetParameters.
func SubscribeParameters(conn *Conn, strategyID string, strategy *arbitrage.Simple) (*nats.Subscription, error) {
	subject := configSubject(strategyID)
	sub, err := conn.nc.Subscribe(subject, func(msg *nats.Msg) {
		var w wireParameters
		if err := json.Unmarshal(msg.Data, &w); err != nil {
			log.Printf("[transport/nats] malformed parameters on %s: %v", subject, err)
			return
		}
		strategy.SetParameters(w.toParameters())
		log.Printf("[transport/nats] applied reconfiguration on %s", subject)
	})
	if err != nil {
		return nil, fmt.Errorf("nats: subscribe %s: %w", subject, err)
	}
	log.Printf("[transport/nats] subscribed: %s", subject)
	return sub, nil
}
