// Package nats carries matcher/arbitrage events over a NATS subject
// tree (spec §12 "transport"), JSON-encoded, one subject per
// (exchange, symbol): "md.<exchange>.<symbol>" for market data and
// "order.<account>.<exchange>.<symbol>" for orders. Connect/Subscribe
// usage and the md./order. subject prefixes are grounded on
// golang/pkg/strategy/engine.go's StrategyEngine.
package nats

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/quantlink/algo/pkg/event"
)

// envelope mirrors replay.Record's (Info, Kind, Payload) shape so the
// same Dispatch switch can decode subjects received over the wire;
// kept local to avoid a transport -> replay import for one struct.
// ReceiveTimeUTC crosses the wire as a timestamppb.Timestamp rather
// than time.Time's RFC3339 text, matching the teacher's direct
// protobuf dependency (golang/go.mod) rather than reinventing a clock
// wire format.
type envelope struct {
	Info    wireMessageInfo `json:"info"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

type wireMessageInfo struct {
	Source         uint8                  `json:"source"`
	StreamID       uint32                 `json:"stream_id"`
	ReceiveTimeUTC *timestamppb.Timestamp `json:"receive_time_utc"`
}

func toWireInfo(info event.MessageInfo) wireMessageInfo {
	return wireMessageInfo{Source: info.Source, StreamID: info.StreamID, ReceiveTimeUTC: timestamppb.New(info.ReceiveTimeUTC)}
}

func (w wireMessageInfo) toEventInfo() event.MessageInfo {
	info := event.MessageInfo{Source: w.Source, StreamID: w.StreamID}
	if w.ReceiveTimeUTC != nil {
		info.ReceiveTimeUTC = w.ReceiveTimeUTC.AsTime()
	}
	return info
}

func marketDataSubject(exchange, symbol string) string {
	return fmt.Sprintf("md.%s.%s", exchange, symbol)
}

func orderSubject(account, exchange, symbol string) string {
	return fmt.Sprintf("order.%s.%s.%s", account, exchange, symbol)
}

// Conn wraps a *nats.Conn with the publish/subscribe helpers this
// package's Dispatcher and Router are built from.
type Conn struct {
	nc *nats.Conn
}

// Connect dials url, matching golang/pkg/strategy/engine.go's
// Initialize step (nats.Connect + a "[Component] Connected" log line).
func Connect(url string) (*Conn, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats: connect %s: %w", url, err)
	}
	log.Printf("[transport/nats] connected: %s", url)
	return &Conn{nc: nc}, nil
}

// Close closes the underlying connection without draining it.
func (c *Conn) Close() {
	c.nc.Close()
}

func (c *Conn) publish(subject string, info event.MessageInfo, kind string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("nats: marshal %s: %w", kind, err)
	}
	env := envelope{Info: toWireInfo(info), Kind: kind, Payload: data}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("nats: marshal envelope %s: %w", kind, err)
	}
	if err := c.nc.Publish(subject, raw); err != nil {
		return fmt.Errorf("nats: publish %s: %w", subject, err)
	}
	return nil
}
