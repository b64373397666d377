package indicator

import (
	"math"

	"market-analytics/internal/model"
)

// RSI computes Wilder's Relative Strength Index over close-to-close
// deltas. The first `period` deltas seed the average gain/loss as plain
// means; later deltas apply Wilder smoothing
// avg = (avg*(period-1) + new) / period on BOTH averages every step (the
// side without movement decays toward zero). avgLoss == 0 yields 100.
// Result is in [0,100], rounded to 2 decimals. ok is false when fewer
// than period+1 candles are available.
func RSI(candles []model.Candle, period int) (float64, bool) {
	if len(candles) < period+1 {
		return 0, false
	}

	cs := closeSeries(candles)
	changes := make([]float64, 0, len(cs)-1)
	for i := 1; i < len(cs); i++ {
		changes = append(changes, cs[i]-cs[i-1])
	}

	var avgGain, avgLoss float64
	for _, ch := range changes[:period] {
		if ch > 0 {
			avgGain += ch
		} else {
			avgLoss += math.Abs(ch)
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	p := float64(period)
	for _, ch := range changes[period:] {
		if ch > 0 {
			avgGain = (avgGain*(p-1) + ch) / p
			avgLoss = (avgLoss * (p - 1)) / p
		} else {
			avgGain = (avgGain * (p - 1)) / p
			avgLoss = (avgLoss*(p-1) + math.Abs(ch)) / p
		}
	}

	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return round2(100 - (100 / (1 + rs))), true
}
