package indicator

import (
	"math"

	"market-analytics/internal/model"
)

// ATR computes Wilder's Average True Range. True range per bar is
// max(high-low, |high-prevClose|, |low-prevClose|); the first `period`
// true ranges seed the ATR as a simple mean and later bars Wilder-smooth
// it. Always >= 0. Rounded to 5 decimals. ok is false when fewer than
// period+1 candles are available.
func ATR(candles []model.Candle, period int) (float64, bool) {
	if len(candles) < period+1 {
		return 0, false
	}

	trueRanges := make([]float64, 0, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		high := candles[i].High
		low := candles[i].Low
		prevClose := candles[i-1].Close

		tr := math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
		trueRanges = append(trueRanges, tr)
	}

	atr := 0.0
	for _, tr := range trueRanges[:period] {
		atr += tr
	}
	atr /= float64(period)

	p := float64(period)
	for _, tr := range trueRanges[period:] {
		atr = (atr*(p-1) + tr) / p
	}

	return round5(atr), true
}
