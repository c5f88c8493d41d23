package matcher

import "github.com/quantlink/algo/pkg/event"

// Variant selects which matching algorithm a matcher runs, per spec
// §6 "Matcher configuration".
type Variant int8

const (
	VariantSimple Variant = iota
	VariantQueuePositionSimple
)

func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "SIMPLE":
		return VariantSimple, true
	case "QUEUE_POSITION_SIMPLE":
		return VariantQueuePositionSimple, true
	default:
		return 0, false
	}
}

// Config is the matcher's `{source, exchange, symbol,
// market_data_source}` configuration tuple (spec §6).
type Config struct {
	Source          uint8
	Exchange        string
	Symbol          string
	MarketDataSource event.MarketDataSource
	Variant         Variant
}
