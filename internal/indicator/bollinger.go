package indicator

import (
	"math"

	"market-analytics/internal/model"
)

// Bollinger computes Bollinger Bands over the last `period` closes: the
// middle band is their SMA, the envelope is k population standard
// deviations (divide by period, not period-1) either side. Bands are
// rounded to 5 decimals. ok is false when fewer than `period` candles
// are available.
func Bollinger(candles []model.Candle, period int, k float64) (model.BollingerBands, bool) {
	if len(candles) < period {
		return model.BollingerBands{}, false
	}

	window := closeSeries(candles[len(candles)-period:])

	sum := 0.0
	for _, v := range window {
		sum += v
	}
	sma := sum / float64(period)

	variance := 0.0
	for _, v := range window {
		d := v - sma
		variance += d * d
	}
	variance /= float64(period)
	sd := math.Sqrt(variance)

	return model.BollingerBands{
		Upper:  round5(sma + k*sd),
		Middle: round5(sma),
		Lower:  round5(sma - k*sd),
	}, true
}
