package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadLegTable(t *testing.T) {
	path := writeTemp(t, "legs.toml", `
strategy_id = "arb-1"

[[legs]]
source = 1
account = "acct-a"
exchange = "deribit"
symbol = "BTC-PERP"
position_effect = "OPEN"
margin_mode = "CROSS"
time_in_force = "IOC"

[[legs]]
source = 2
account = "acct-b"
exchange = "okx"
symbol = "BTC-USD-SWAP"
position_effect = "OPEN"
margin_mode = "CROSS"
time_in_force = "IOC"
multiplier = 0.1
`)
	table, err := LoadLegTable(path)
	if err != nil {
		t.Fatalf("LoadLegTable: %v", err)
	}
	if table.StrategyID != "arb-1" {
		t.Fatalf("strategy id = %q", table.StrategyID)
	}
	legs := table.Legs()
	if len(legs) != 2 {
		t.Fatalf("want 2 legs, got %d", len(legs))
	}
	if legs[0].Exchange != "deribit" || legs[0].Symbol != "BTC-PERP" {
		t.Fatalf("leg 0 = %+v", legs[0])
	}
	if legs[1].Multiplier != 0.1 {
		t.Fatalf("leg 1 multiplier = %v", legs[1].Multiplier)
	}
}

func TestLoadLegTableRejectsFewerThanTwoLegs(t *testing.T) {
	path := writeTemp(t, "legs.toml", `
strategy_id = "arb-1"

[[legs]]
source = 1
exchange = "deribit"
symbol = "BTC-PERP"
`)
	if _, err := LoadLegTable(path); err == nil {
		t.Fatal("expected error for single-leg table")
	}
}
