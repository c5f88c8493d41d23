package config

import (
	"testing"
	"time"

	"github.com/quantlink/algo/pkg/event"
)

func TestParseParameters(t *testing.T) {
	p, err := ParseParameters("market_data_source=MARKET_BY_PRICE;max_age=500000000;threshold=0.002;quantity_0=10;min_position_0=-50;max_position_0=50;publish_source=3")
	if err != nil {
		t.Fatalf("ParseParameters: %v", err)
	}
	if p.MarketDataSource != event.MarketDataSourceMarketByPrice {
		t.Fatalf("market_data_source = %v", p.MarketDataSource)
	}
	if p.MaxAge != 500*time.Millisecond {
		t.Fatalf("max_age = %v", p.MaxAge)
	}
	if p.Threshold != 0.002 {
		t.Fatalf("threshold = %v", p.Threshold)
	}
	if p.Quantity0 != 10 || p.MinPosition0 != -50 || p.MaxPosition0 != 50 {
		t.Fatalf("quantities: %+v", p)
	}
	if p.PublishSource != 3 {
		t.Fatalf("publish_source = %v", p.PublishSource)
	}
}

func TestParseParametersRejectsUnknownKey(t *testing.T) {
	if _, err := ParseParameters("bogus=1"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestParseParametersSkipsBlankPairs(t *testing.T) {
	p, err := ParseParameters("threshold=0.01;;quantity_0=5;")
	if err != nil {
		t.Fatalf("ParseParameters: %v", err)
	}
	if p.Threshold != 0.01 || p.Quantity0 != 5 {
		t.Fatalf("got %+v", p)
	}
}
