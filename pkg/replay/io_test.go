package replay

import (
	"bytes"
	"io"
	"testing"

	"github.com/quantlink/algo/pkg/event"
)

type fakeSink struct {
	tobs []event.TopOfBook
	refs []event.ReferenceData
}

func (f *fakeSink) HandleReferenceData(_ event.MessageInfo, ref event.ReferenceData) {
	f.refs = append(f.refs, ref)
}
func (f *fakeSink) HandleMarketStatus(event.MessageInfo, event.MarketStatus) {}
func (f *fakeSink) HandleTopOfBook(_ event.MessageInfo, tob event.TopOfBook) {
	f.tobs = append(f.tobs, tob)
}
func (f *fakeSink) HandleMarketByPriceUpdate(event.MessageInfo, event.MarketByPriceUpdate) {}
func (f *fakeSink) HandleMarketByOrderUpdate(event.MessageInfo, event.MarketByOrderUpdate) {}
func (f *fakeSink) HandleTradeSummary(event.MessageInfo, event.TradeSummary)               {}
func (f *fakeSink) HandleStatisticsUpdate(event.MessageInfo, event.StatisticsUpdate)       {}

func TestWriterReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	ref, err := NewRecord(event.MessageInfo{Source: 1}, KindReferenceData, event.ReferenceData{TickSize: 0.5})
	if err != nil {
		t.Fatalf("NewRecord ref: %v", err)
	}
	tob, err := NewRecord(event.MessageInfo{Source: 1}, KindTopOfBook, event.TopOfBook{
		Layer: event.Layer{BidPrice: 100, BidQuantity: 1, AskPrice: 101, AskQuantity: 1},
	})
	if err != nil {
		t.Fatalf("NewRecord tob: %v", err)
	}
	if err := w.Write(ref); err != nil {
		t.Fatalf("write ref: %v", err)
	}
	if err := w.Write(tob); err != nil {
		t.Fatalf("write tob: %v", err)
	}

	sink := &fakeSink{}
	r := NewReader(&buf)
	count, err := r.All(sink)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if len(sink.refs) != 1 || sink.refs[0].TickSize != 0.5 {
		t.Fatalf("refs = %+v", sink.refs)
	}
	if len(sink.tobs) != 1 || sink.tobs[0].Layer.BidPrice != 100 {
		t.Fatalf("tobs = %+v", sink.tobs)
	}
}

func TestReaderNextReturnsEOF(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestDispatchUnknownKindWithoutLifecycleSinkErrors(t *testing.T) {
	rec := Record{Kind: KindConnected}
	if err := Dispatch(rec, &fakeSink{}); err == nil {
		t.Fatal("expected error dispatching lifecycle kind to non-lifecycle sink")
	}
}
