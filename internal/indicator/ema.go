package indicator

import "market-analytics/internal/model"

// EMA computes the exponential moving average of the close series: the
// first `period` closes are averaged into an SMA seed, then each later
// close is folded in with multiplier 2/(period+1). The returned value is
// rounded to 5 decimals. ok is false when fewer than `period` candles
// are available.
func EMA(candles []model.Candle, period int) (float64, bool) {
	v, ok := emaLast(closeSeries(candles), period)
	if !ok {
		return 0, false
	}
	return round5(v), true
}

// emaLast runs the SMA-seeded EMA recurrence over values and returns the
// final (unrounded) value. Shared by EMA and the MACD reconstruction,
// which must fold rounding in only at the very end.
func emaLast(values []float64, period int) (float64, bool) {
	if len(values) < period {
		return 0, false
	}

	multiplier := 2.0 / float64(period+1)

	sum := 0.0
	for _, v := range values[:period] {
		sum += v
	}
	ema := sum / float64(period)

	for _, v := range values[period:] {
		ema = (v-ema)*multiplier + ema
	}
	return ema, true
}
