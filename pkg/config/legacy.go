package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/quantlink/algo/pkg/arbitrage"
)

// TraderConfig is the legacy YAML shape this package's strategy
// runtime was migrated from. Only the subset relevant to a
// pairwise_arb strategy is kept here; the rest of the original
// schema (session windows, risk limits, portfolio allocation, the
// HTTP API, file-rotated logging) belongs to a process that this
// package's scope does not cover.
//
// C++: none (legacy Go-era shape); grounded on
// golang/pkg/config/trader_config.go, golang/pkg/config/legacy_converter.go
type TraderConfig struct {
	System   LegacySystem   `yaml:"system"`
	Strategy LegacyStrategy `yaml:"strategy"`
}

type LegacySystem struct {
	StrategyID string `yaml:"strategy_id"`
	Mode       string `yaml:"mode"`
}

type LegacyStrategy struct {
	Type       string                 `yaml:"type"`
	Symbols    []string               `yaml:"symbols"`
	Exchanges  []string               `yaml:"exchanges"`
	Parameters map[string]interface{} `yaml:"parameters"`
}

// LoadTraderConfig reads and decodes the legacy YAML shape.
func LoadTraderConfig(path string) (*TraderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read trader config %s: %w", path, err)
	}
	var cfg TraderConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse trader config %s: %w", path, err)
	}
	if cfg.Strategy.Type != "pairwise_arb" {
		return nil, fmt.Errorf("config: trader config %s: strategy.type %q is not pairwise_arb", path, cfg.Strategy.Type)
	}
	if len(cfg.Strategy.Symbols) < 2 || len(cfg.Strategy.Exchanges) < 2 {
		return nil, fmt.Errorf("config: trader config %s: pairwise_arb needs >=2 symbols and exchanges", path)
	}
	return &cfg, nil
}

// Legs bridges the legacy symbols/exchanges pairing onto the new leg
// table shape: one leg per (exchange, symbol) index pair, source and
// account left at their zero values since the legacy shape never
// carried a per-leg account or source.
func (c *TraderConfig) Legs() []arbitrage.Leg {
	out := make([]arbitrage.Leg, len(c.Strategy.Symbols))
	for i, symbol := range c.Strategy.Symbols {
		exchange := c.Strategy.Exchanges[0]
		if i < len(c.Strategy.Exchanges) {
			exchange = c.Strategy.Exchanges[i]
		}
		out[i] = arbitrage.Leg{Exchange: exchange, Symbol: symbol}
	}
	return out
}

// Parameters bridges the legacy freeform parameters map onto
// arbitrage.Parameters, reusing the same key names the delimited
// parameter-string form uses so both configuration paths accept the
// same vocabulary.
func (c *TraderConfig) Parameters() (arbitrage.Parameters, error) {
	var p arbitrage.Parameters
	p.StrategyID = c.System.StrategyID
	raw := c.Strategy.Parameters
	keys := []string{
		"market_data_source", "max_age", "threshold",
		"quantity_0", "min_position_0", "max_position_0",
		"publish_source",
	}
	for _, key := range keys {
		v, present := raw[key]
		if !present {
			continue
		}
		if err := setParameter(&p, key, legacyValueString(v)); err != nil {
			return p, err
		}
	}
	return p, nil
}

// legacyValueString renders a YAML-decoded scalar (float64, int,
// string, bool) back to the textual form setParameter expects, so the
// two configuration entry points share one parsing routine.
func legacyValueString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
