package indicator

import (
	"math"

	"market-analytics/internal/model"
)

// round2 rounds to 2 decimals: price-scale levels and RSI.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round5 rounds to 5 decimals: EMA, MACD, ATR and Bollinger values.
func round5(v float64) float64 {
	return math.Round(v*100000) / 100000
}

// closeSeries extracts the close series from a candle slice.
func closeSeries(candles []model.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
