// Package reporter accumulates fills into an end-of-run execution
// summary (spec §12 "observability"), emitted as text, JSON, or CSV.
// Money and quantity arithmetic use shopspring/decimal rather than the
// core's float64 sentinels: once a run is over there is no longer a
// "price not yet known" state to represent, and summation of many
// small fills is exactly the place float64 rounding accumulates,
// grounded on mkhoshkam-orderbook/engine/types.go's decimal-typed
// Trade/OrderFill.
package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quantlink/algo/pkg/event"
)

// Record is one completed fill, attributed to a leg identity.
type Record struct {
	Exchange string
	Symbol   string
	Side     event.Side
	Price    decimal.Decimal
	Quantity decimal.Decimal
	TradeID  uint64
}

// Recorder accumulates Records over the life of a run.
type Recorder struct {
	records []Record
}

// New creates an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

// Record appends a fill. price/quantity arrive as float64 from the
// core event types and are converted once, at the boundary, via
// decimal.NewFromFloat.
func (r *Recorder) Record(exchange, symbol string, side event.Side, price, quantity float64, tradeID uint64) {
	r.records = append(r.records, Record{
		Exchange: exchange,
		Symbol:   symbol,
		Side:     side,
		Price:    decimal.NewFromFloat(price),
		Quantity: decimal.NewFromFloat(quantity),
		TradeID:  tradeID,
	})
}

// legKey identifies one (exchange, symbol) instrument.
type legKey struct{ exchange, symbol string }

// Line is one instrument's summarized activity.
type Line struct {
	Exchange    string          `json:"exchange"`
	Symbol      string          `json:"symbol"`
	TradeCount  int             `json:"trade_count"`
	BuyVolume   decimal.Decimal `json:"buy_volume"`
	SellVolume  decimal.Decimal `json:"sell_volume"`
	BuyNotional decimal.Decimal `json:"buy_notional"`
	SellNotional decimal.Decimal `json:"sell_notional"`
	NetQuantity decimal.Decimal `json:"net_quantity"`
	// RealizedCashFlow is signed cash received (sells) minus paid
	// (buys); it is not a mark-to-market P&L since the run may end
	// with an open position.
	RealizedCashFlow decimal.Decimal `json:"realized_cash_flow"`
}

// Summary is the full end-of-run report.
type Summary struct {
	Lines      []Line `json:"lines"`
	TradeCount int    `json:"trade_count"`
}

// Summarize aggregates all recorded fills per instrument, in a stable
// exchange-then-symbol order so repeated runs diff cleanly.
func (r *Recorder) Summarize() Summary {
	agg := make(map[legKey]*Line)
	var order []legKey
	for _, rec := range r.records {
		key := legKey{rec.Exchange, rec.Symbol}
		line, ok := agg[key]
		if !ok {
			line = &Line{
				Exchange: rec.Exchange, Symbol: rec.Symbol,
				BuyVolume: decimal.Zero, SellVolume: decimal.Zero,
				BuyNotional: decimal.Zero, SellNotional: decimal.Zero,
				NetQuantity: decimal.Zero, RealizedCashFlow: decimal.Zero,
			}
			agg[key] = line
			order = append(order, key)
		}
		notional := rec.Price.Mul(rec.Quantity)
		line.TradeCount++
		switch rec.Side {
		case event.SideBuy:
			line.BuyVolume = line.BuyVolume.Add(rec.Quantity)
			line.BuyNotional = line.BuyNotional.Add(notional)
			line.NetQuantity = line.NetQuantity.Add(rec.Quantity)
			line.RealizedCashFlow = line.RealizedCashFlow.Sub(notional)
		case event.SideSell:
			line.SellVolume = line.SellVolume.Add(rec.Quantity)
			line.SellNotional = line.SellNotional.Add(notional)
			line.NetQuantity = line.NetQuantity.Sub(rec.Quantity)
			line.RealizedCashFlow = line.RealizedCashFlow.Add(notional)
		}
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].exchange != order[j].exchange {
			return order[i].exchange < order[j].exchange
		}
		return order[i].symbol < order[j].symbol
	})
	summary := Summary{TradeCount: len(r.records)}
	for _, key := range order {
		summary.Lines = append(summary.Lines, *agg[key])
	}
	return summary
}

// WriteText renders a human-readable table.
func (s Summary) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %-14s %6s %12s %12s %14s\n", "EXCHANGE", "SYMBOL", "TRADES", "NET_QTY", "BUY_VOL", "CASH_FLOW")
	for _, l := range s.Lines {
		fmt.Fprintf(&b, "%-10s %-14s %6d %12s %12s %14s\n",
			l.Exchange, l.Symbol, l.TradeCount, l.NetQuantity.String(), l.BuyVolume.String(), l.RealizedCashFlow.String())
	}
	fmt.Fprintf(&b, "total trades: %d\n", s.TradeCount)
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON renders the summary as indented JSON.
func (s Summary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteCSV renders one row per instrument line.
func (s Summary) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"exchange", "symbol", "trade_count", "buy_volume", "sell_volume", "buy_notional", "sell_notional", "net_quantity", "realized_cash_flow"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, l := range s.Lines {
		row := []string{
			l.Exchange, l.Symbol, fmt.Sprintf("%d", l.TradeCount),
			l.BuyVolume.String(), l.SellVolume.String(),
			l.BuyNotional.String(), l.SellNotional.String(),
			l.NetQuantity.String(), l.RealizedCashFlow.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
