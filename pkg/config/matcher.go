package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/quantlink/algo/pkg/event"
	"github.com/quantlink/algo/pkg/matcher"
)

// MatcherSpec is the TOML-decoded `{source, exchange, symbol,
// market_data_source, variant}` tuple of spec §6 "Matcher
// configuration".
type MatcherSpec struct {
	Source           uint8  `toml:"source"`
	Exchange         string `toml:"exchange"`
	Symbol           string `toml:"symbol"`
	MarketDataSource string `toml:"market_data_source"`
	Variant          string `toml:"variant"`
}

// LoadMatcherConfig reads a MatcherSpec from path and resolves its
// string fields into a matcher.Config.
func LoadMatcherConfig(path string) (matcher.Config, error) {
	var cfg matcher.Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read matcher config %s: %w", path, err)
	}
	var spec MatcherSpec
	if err := toml.Unmarshal(data, &spec); err != nil {
		return cfg, fmt.Errorf("config: parse matcher config %s: %w", path, err)
	}
	return spec.Resolve()
}

// Resolve validates and converts the decoded string fields.
func (s MatcherSpec) Resolve() (matcher.Config, error) {
	var cfg matcher.Config
	mds, ok := event.ParseMarketDataSource(s.MarketDataSource)
	if !ok {
		return cfg, fmt.Errorf("config: unknown market_data_source %q", s.MarketDataSource)
	}
	variant, ok := matcher.ParseVariant(s.Variant)
	if !ok {
		return cfg, fmt.Errorf("config: unknown matcher variant %q", s.Variant)
	}
	cfg.Source = s.Source
	cfg.Exchange = s.Exchange
	cfg.Symbol = s.Symbol
	cfg.MarketDataSource = mds
	cfg.Variant = variant
	return cfg, nil
}
