// Package replay reads and writes recorded market-data streams for
// offline backtesting (spec §12 "replay"). Records are newline-delimited
// JSON envelopes, optionally gzip- or zstd-compressed; compression
// selection by file extension is grounded on
// NimbleMarkets-dbn-go/compressed_io.go's MakeCompressedReader/Writer.
package replay

import (
	"encoding/json"
	"fmt"

	"github.com/quantlink/algo/pkg/event"
)

// Kind tags which event type a Record's Payload holds.
type Kind string

const (
	KindReferenceData       Kind = "reference_data"
	KindMarketStatus        Kind = "market_status"
	KindTopOfBook           Kind = "top_of_book"
	KindMarketByPriceUpdate Kind = "market_by_price_update"
	KindMarketByOrderUpdate Kind = "market_by_order_update"
	KindTradeSummary        Kind = "trade_summary"
	KindStatisticsUpdate    Kind = "statistics_update"
	KindConnected           Kind = "connected"
	KindDisconnected        Kind = "disconnected"
	KindDownloadEnd         Kind = "download_end"
	KindReady               Kind = "ready"
	KindGatewayStatus       Kind = "gateway_status"
	KindStreamStatus        Kind = "stream_status"
	KindPositionUpdate      Kind = "position_update"
)

// Record is one envelope in a recorded stream: a MessageInfo plus a
// typed, JSON-encoded payload.
type Record struct {
	Info    event.MessageInfo `json:"info"`
	Kind    Kind              `json:"kind"`
	Payload json.RawMessage   `json:"payload"`
}

// NewRecord marshals a typed event payload into a Record.
func NewRecord(info event.MessageInfo, kind Kind, payload interface{}) (Record, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Record{}, fmt.Errorf("replay: marshal %s payload: %w", kind, err)
	}
	return Record{Info: info, Kind: kind, Payload: data}, nil
}

// MarketDataSink is every market-data entry point a replayed stream can
// drive; matcher.Handler and arbitrage.Simple both satisfy it.
type MarketDataSink interface {
	HandleReferenceData(info event.MessageInfo, ref event.ReferenceData)
	HandleMarketStatus(info event.MessageInfo, status event.MarketStatus)
	HandleTopOfBook(info event.MessageInfo, tob event.TopOfBook)
	HandleMarketByPriceUpdate(info event.MessageInfo, mbp event.MarketByPriceUpdate)
	HandleMarketByOrderUpdate(info event.MessageInfo, mbo event.MarketByOrderUpdate)
	HandleTradeSummary(info event.MessageInfo, ts event.TradeSummary)
	HandleStatisticsUpdate(info event.MessageInfo, su event.StatisticsUpdate)
}

// LifecycleSink is every connection/readiness entry point a replayed
// stream can drive; arbitrage.Simple and backtest.Engine satisfy it,
// while matchers do not, since they have no notion of gateway/stream
// lifecycle.
type LifecycleSink interface {
	HandleConnected(info event.MessageInfo, c event.Connected)
	HandleDisconnected(info event.MessageInfo, d event.Disconnected)
	HandleDownloadEnd(info event.MessageInfo, d event.DownloadEnd)
	HandleReady(info event.MessageInfo, r event.Ready)
	HandleGatewayStatus(info event.MessageInfo, g event.GatewayStatus)
	HandleStreamStatus(info event.MessageInfo, st event.StreamStatus)
	HandlePositionUpdate(info event.MessageInfo, pu event.PositionUpdate)
}

// Dispatch decodes the Record's payload by its Kind and invokes the
// matching method on sink (and, when r is a lifecycle record and sink
// also implements LifecycleSink, on that interface too). Unrecognized
// kinds are returned as an error rather than silently dropped, so a
// stream recorded against a newer event vocabulary fails loudly
// instead of silently under-replaying.
func Dispatch(r Record, sink MarketDataSink) error {
	switch r.Kind {
	case KindReferenceData:
		var v event.ReferenceData
		if err := json.Unmarshal(r.Payload, &v); err != nil {
			return fmt.Errorf("replay: decode %s: %w", r.Kind, err)
		}
		sink.HandleReferenceData(r.Info, v)
	case KindMarketStatus:
		var v event.MarketStatus
		if err := json.Unmarshal(r.Payload, &v); err != nil {
			return fmt.Errorf("replay: decode %s: %w", r.Kind, err)
		}
		sink.HandleMarketStatus(r.Info, v)
	case KindTopOfBook:
		var v event.TopOfBook
		if err := json.Unmarshal(r.Payload, &v); err != nil {
			return fmt.Errorf("replay: decode %s: %w", r.Kind, err)
		}
		sink.HandleTopOfBook(r.Info, v)
	case KindMarketByPriceUpdate:
		var v event.MarketByPriceUpdate
		if err := json.Unmarshal(r.Payload, &v); err != nil {
			return fmt.Errorf("replay: decode %s: %w", r.Kind, err)
		}
		sink.HandleMarketByPriceUpdate(r.Info, v)
	case KindMarketByOrderUpdate:
		var v event.MarketByOrderUpdate
		if err := json.Unmarshal(r.Payload, &v); err != nil {
			return fmt.Errorf("replay: decode %s: %w", r.Kind, err)
		}
		sink.HandleMarketByOrderUpdate(r.Info, v)
	case KindTradeSummary:
		var v event.TradeSummary
		if err := json.Unmarshal(r.Payload, &v); err != nil {
			return fmt.Errorf("replay: decode %s: %w", r.Kind, err)
		}
		sink.HandleTradeSummary(r.Info, v)
	case KindStatisticsUpdate:
		var v event.StatisticsUpdate
		if err := json.Unmarshal(r.Payload, &v); err != nil {
			return fmt.Errorf("replay: decode %s: %w", r.Kind, err)
		}
		sink.HandleStatisticsUpdate(r.Info, v)
	default:
		if err := dispatchLifecycle(r, sink); err != nil {
			return err
		}
	}
	return nil
}

func dispatchLifecycle(r Record, sink MarketDataSink) error {
	lifecycle, ok := sink.(LifecycleSink)
	if !ok {
		return fmt.Errorf("replay: record kind %q requires a LifecycleSink", r.Kind)
	}
	switch r.Kind {
	case KindConnected:
		var v event.Connected
		if err := json.Unmarshal(r.Payload, &v); err != nil {
			return fmt.Errorf("replay: decode %s: %w", r.Kind, err)
		}
		lifecycle.HandleConnected(r.Info, v)
	case KindDisconnected:
		var v event.Disconnected
		if err := json.Unmarshal(r.Payload, &v); err != nil {
			return fmt.Errorf("replay: decode %s: %w", r.Kind, err)
		}
		lifecycle.HandleDisconnected(r.Info, v)
	case KindDownloadEnd:
		var v event.DownloadEnd
		if err := json.Unmarshal(r.Payload, &v); err != nil {
			return fmt.Errorf("replay: decode %s: %w", r.Kind, err)
		}
		lifecycle.HandleDownloadEnd(r.Info, v)
	case KindReady:
		var v event.Ready
		if err := json.Unmarshal(r.Payload, &v); err != nil {
			return fmt.Errorf("replay: decode %s: %w", r.Kind, err)
		}
		lifecycle.HandleReady(r.Info, v)
	case KindGatewayStatus:
		var v event.GatewayStatus
		if err := json.Unmarshal(r.Payload, &v); err != nil {
			return fmt.Errorf("replay: decode %s: %w", r.Kind, err)
		}
		lifecycle.HandleGatewayStatus(r.Info, v)
	case KindStreamStatus:
		var v event.StreamStatus
		if err := json.Unmarshal(r.Payload, &v); err != nil {
			return fmt.Errorf("replay: decode %s: %w", r.Kind, err)
		}
		lifecycle.HandleStreamStatus(r.Info, v)
	case KindPositionUpdate:
		var v event.PositionUpdate
		if err := json.Unmarshal(r.Payload, &v); err != nil {
			return fmt.Errorf("replay: decode %s: %w", r.Kind, err)
		}
		lifecycle.HandlePositionUpdate(r.Info, v)
	default:
		return fmt.Errorf("replay: unrecognized record kind %q", r.Kind)
	}
	return nil
}
