package config

import "testing"

func TestLoadTraderConfigBridgesLegacyYAML(t *testing.T) {
	path := writeTemp(t, "trader.yaml", `
system:
  strategy_id: "92201"
  mode: backtest
strategy:
  type: pairwise_arb
  symbols: ["BTC-PERP", "BTC-USD-SWAP"]
  exchanges: ["deribit", "okx"]
  parameters:
    market_data_source: TOP_OF_BOOK
    threshold: 0.0015
    quantity_0: 5
    publish_source: 1
`)
	cfg, err := LoadTraderConfig(path)
	if err != nil {
		t.Fatalf("LoadTraderConfig: %v", err)
	}
	legs := cfg.Legs()
	if len(legs) != 2 || legs[0].Exchange != "deribit" || legs[1].Exchange != "okx" {
		t.Fatalf("legs = %+v", legs)
	}
	params, err := cfg.Parameters()
	if err != nil {
		t.Fatalf("Parameters: %v", err)
	}
	if params.StrategyID != "92201" {
		t.Fatalf("strategy id = %q", params.StrategyID)
	}
	if params.Threshold != 0.0015 || params.Quantity0 != 5 || params.PublishSource != 1 {
		t.Fatalf("params = %+v", params)
	}
}

func TestLoadTraderConfigRejectsNonArbStrategy(t *testing.T) {
	path := writeTemp(t, "trader.yaml", `
system:
  strategy_id: "1"
strategy:
  type: passive
  symbols: ["BTC-PERP"]
  exchanges: ["deribit"]
`)
	if _, err := LoadTraderConfig(path); err == nil {
		t.Fatal("expected error for non-arb strategy type")
	}
}
