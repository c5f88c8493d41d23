package reporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/quantlink/algo/pkg/event"
)

func TestSummarizeAggregatesPerInstrument(t *testing.T) {
	r := New()
	r.Record("deribit", "BTC-PERP", event.SideBuy, 100, 2, 1)
	r.Record("deribit", "BTC-PERP", event.SideSell, 101, 2, 2)
	r.Record("okx", "BTC-USD-SWAP", event.SideSell, 50, 1, 3)

	s := r.Summarize()
	if s.TradeCount != 3 {
		t.Fatalf("trade count = %d", s.TradeCount)
	}
	if len(s.Lines) != 2 {
		t.Fatalf("want 2 lines, got %d", len(s.Lines))
	}
	// sorted by exchange: deribit before okx
	if s.Lines[0].Exchange != "deribit" || s.Lines[1].Exchange != "okx" {
		t.Fatalf("unexpected order: %+v", s.Lines)
	}
	deribit := s.Lines[0]
	if !deribit.NetQuantity.IsZero() {
		t.Fatalf("net quantity should net to zero, got %s", deribit.NetQuantity)
	}
	if deribit.RealizedCashFlow.String() != "2" {
		t.Fatalf("cash flow = %s, want 2 (sold 2@101 - bought 2@100)", deribit.RealizedCashFlow)
	}
}

func TestWriteCSVRoundTripsHeader(t *testing.T) {
	r := New()
	r.Record("deribit", "BTC-PERP", event.SideBuy, 100, 1, 1)
	var buf bytes.Buffer
	if err := r.Summarize().WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "exchange,symbol,trade_count") {
		t.Fatalf("missing header: %s", buf.String())
	}
}

func TestWriteJSONValid(t *testing.T) {
	r := New()
	r.Record("deribit", "BTC-PERP", event.SideBuy, 100, 1, 1)
	var buf bytes.Buffer
	if err := r.Summarize().WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), "\"exchange\": \"deribit\"") {
		t.Fatalf("json missing expected field: %s", buf.String())
	}
}
