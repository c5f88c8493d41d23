// Package tick snaps floating-point prices to integer tick units and
// reports precision loss, per spec §2 "TickPricer" / §4.1
// price_to_ticks.
//
// C++: roq::algo::tools::MarketData::price_to_ticks (grounded on
// original_source/include/roq/algo/tools/market_data.hpp)
package tick

import "math"

// epsilonForPrecision returns the tolerance used to decide whether a
// price/tick_size ratio is "close enough" to an integer to call the
// snap exact, scaled to the number of decimals the exchange reports.
func epsilonForPrecision(decimals int) float64 {
	if decimals < 0 {
		decimals = 8
	}
	return 0.5 / math.Pow10(decimals+2)
}

// ToTicks snaps price to the nearest multiple of tickSize and reports
// whether the snap was exact, i.e. price was already (within epsilon)
// an integer multiple of tickSize.
//
// decimals is the number of fractional digits the exchange reports for
// prices (spec §3 Precision); pass -1 when unknown, which applies the
// tolerance for 8 decimals.
func ToTicks(price, tickSize float64, decimals int) (ticks int64, exact bool) {
	if tickSize <= 0 || math.IsNaN(price) || math.IsNaN(tickSize) {
		return 0, false
	}
	ratio := price / tickSize
	rounded := math.Round(ratio)
	exact = math.Abs(ratio-rounded) <= epsilonForPrecision(decimals)
	return int64(rounded), exact
}

// ToPrice converts integer tick units back to a floating-point price.
func ToPrice(ticks int64, tickSize float64) float64 {
	return float64(ticks) * tickSize
}
