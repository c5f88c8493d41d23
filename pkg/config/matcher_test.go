package config

import (
	"testing"

	"github.com/quantlink/algo/pkg/event"
	"github.com/quantlink/algo/pkg/matcher"
)

func TestLoadMatcherConfig(t *testing.T) {
	path := writeTemp(t, "matcher.toml", `
source = 1
exchange = "deribit"
symbol = "BTC-PERP"
market_data_source = "MARKET_BY_PRICE"
variant = "QUEUE_POSITION_SIMPLE"
`)
	cfg, err := LoadMatcherConfig(path)
	if err != nil {
		t.Fatalf("LoadMatcherConfig: %v", err)
	}
	if cfg.Source != 1 || cfg.Exchange != "deribit" || cfg.Symbol != "BTC-PERP" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.MarketDataSource != event.MarketDataSourceMarketByPrice {
		t.Fatalf("market data source = %v", cfg.MarketDataSource)
	}
	if cfg.Variant != matcher.VariantQueuePositionSimple {
		t.Fatalf("variant = %v", cfg.Variant)
	}
}

func TestLoadMatcherConfigRejectsUnknownVariant(t *testing.T) {
	path := writeTemp(t, "matcher.toml", `
source = 1
exchange = "deribit"
symbol = "BTC-PERP"
market_data_source = "TOP_OF_BOOK"
variant = "BOGUS"
`)
	if _, err := LoadMatcherConfig(path); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}
