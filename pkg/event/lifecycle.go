package event

import "time"

// Connected/Disconnected/DownloadEnd/Ready mirror the gateway session
// lifecycle a strategy reacts to (spec §4.4 "Lifecycle events").
//
// C++: roq::Connected, roq::Disconnected, roq::DownloadEnd, roq::Ready
type Connected struct {
	Source uint8
}

type Disconnected struct {
	Source uint8
}

type DownloadEnd struct {
	Source  uint8
	Account string
}

type Ready struct {
	Source uint8
}

// StreamStatus reports the health of a single upstream stream.
type StreamStatus struct {
	Source  uint8
	StreamID uint32
	Supported bool
}

// GatewayStatus reports the connectivity of the live gateway
// (readiness gating consumes this, spec §4.4).
type GatewayStatus struct {
	Source    uint8
	Connected bool
}

// ExternalLatency is a round-trip latency sample. The arbitrage Simple
// strategy has no handler for it and keeps no per-source latency
// samples.
type ExternalLatency struct {
	Source  uint8
	Latency time.Duration
}

// PositionUpdate carries an authoritative position snapshot from the
// gateway/exchange.
type PositionUpdate struct {
	Account  string
	Exchange string
	Symbol   string
	Position float64
}

// FundsUpdate and PortfolioUpdate are not handled by the arbitrage
// Simple strategy; declared for interface completeness
// (original_source/include/roq/algo/strategy.hpp).
type FundsUpdate struct {
	Account string
}

type PortfolioUpdate struct {
	Account string
}

// Timer fires periodically. The arbitrage Simple strategy has no
// handler for it.
type Timer struct {
	Now time.Time
}
