package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quantlink/algo/pkg/arbitrage"
	"github.com/quantlink/algo/pkg/event"
)

// ParseParameters decodes a `key1=value1;key2=value2` string into
// arbitrage.Parameters, per spec §6. No library targets this exact
// delimited-pair shape, so this is a small hand-rolled splitter,
// grounded on tbsrc-golang/pkg/config's key/value control-file parsers
// (SPEC_FULL.md §10.1).
func ParseParameters(s string) (arbitrage.Parameters, error) {
	var p arbitrage.Parameters
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return p, fmt.Errorf("config: malformed parameter %q", pair)
		}
		key, value := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		if err := setParameter(&p, key, value); err != nil {
			return p, err
		}
	}
	return p, nil
}

func setParameter(p *arbitrage.Parameters, key, value string) error {
	switch key {
	case "market_data_source":
		src, ok := event.ParseMarketDataSource(value)
		if !ok {
			return fmt.Errorf("config: unknown market_data_source %q", value)
		}
		p.MarketDataSource = src
	case "max_age":
		ns, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("config: max_age: %w", err)
		}
		p.MaxAge = time.Duration(ns)
	case "threshold":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: threshold: %w", err)
		}
		p.Threshold = v
	case "quantity_0":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: quantity_0: %w", err)
		}
		p.Quantity0 = v
	case "min_position_0":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: min_position_0: %w", err)
		}
		p.MinPosition0 = v
	case "max_position_0":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: max_position_0: %w", err)
		}
		p.MaxPosition0 = v
	case "publish_source":
		v, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return fmt.Errorf("config: publish_source: %w", err)
		}
		p.PublishSource = uint8(v)
	default:
		return fmt.Errorf("config: unrecognized parameter key %q", key)
	}
	return nil
}
