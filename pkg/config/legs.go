// Package config loads the strategy's two input shapes (spec §6
// "Configuration (strategy)"): a TOML leg table, and a
// `key1=value1;key2=value2` parameter string. It also bridges the
// teacher's existing YAML TraderConfig shape onto the same
// []arbitrage.Leg/arbitrage.Parameters pair, per SPEC_FULL.md §10.1.
//
// C++: original_source/src/roq/algo/arbitrage/config.hpp (leg table);
// golang/pkg/config/trader_config.go (legacy YAML shape)
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/quantlink/algo/pkg/arbitrage"
)

// LegTable is the TOML-decoded `[[legs]]` array plus top-level
// `strategy_id`, per spec §6.
type LegTable struct {
	StrategyID string    `toml:"strategy_id"`
	Rows       []LegSpec `toml:"legs"`
}

// LegSpec is one `[[legs]]` entry.
type LegSpec struct {
	Source         uint8   `toml:"source"`
	Account        string  `toml:"account"`
	Exchange       string  `toml:"exchange"`
	Symbol         string  `toml:"symbol"`
	PositionEffect string  `toml:"position_effect"`
	MarginMode     string  `toml:"margin_mode"`
	TimeInForce    string  `toml:"time_in_force"`
	Multiplier     float64 `toml:"multiplier"`
}

// LoadLegTable reads and decodes a leg table from path.
func LoadLegTable(path string) (*LegTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read leg table %s: %w", path, err)
	}
	var table LegTable
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("config: parse leg table %s: %w", path, err)
	}
	if len(table.Rows) < 2 {
		return nil, fmt.Errorf("config: leg table %s: need at least 2 legs, got %d", path, len(table.Rows))
	}
	return &table, nil
}

// Legs converts the decoded TOML rows into arbitrage.Leg values.
func (t *LegTable) Legs() []arbitrage.Leg {
	out := make([]arbitrage.Leg, len(t.Rows))
	for i, l := range t.Rows {
		out[i] = arbitrage.Leg{
			Source:         l.Source,
			Account:        l.Account,
			Exchange:       l.Exchange,
			Symbol:         l.Symbol,
			PositionEffect: l.PositionEffect,
			MarginMode:     l.MarginMode,
			TimeInForce:    l.TimeInForce,
			Multiplier:     l.Multiplier,
		}
	}
	return out
}
