package indicator

import "market-analytics/internal/model"

// MACD computes the moving average convergence divergence: the MACD line
// is EMA(12) minus EMA(26) over the full close series, the signal line is
// the 9-period EMA of the MACD series, and the histogram is their
// difference. All three are rounded to 5 decimals. ok is false when fewer
// than 26 candles are available.
//
// The MACD series feeding the signal line is rebuilt by recomputing
// EMA12/EMA26 from the full prefix at every index from 26 onward. That is
// deliberately NOT an incremental smoother: the prefix reconstruction is
// what the portal's reference values were produced with, and an O(n)
// streaming update rounds differently in edge cases. Keep it.
func MACD(candles []model.Candle) (model.MACDValue, bool) {
	if len(candles) < 26 {
		return model.MACDValue{}, false
	}

	cs := closeSeries(candles)

	ema12, ok12 := emaLast(cs, 12)
	ema26, ok26 := emaLast(cs, 26)
	if !ok12 || !ok26 {
		return model.MACDValue{}, false
	}
	macdLine := ema12 - ema26

	macdSeries := make([]float64, 0, len(cs)-26)
	for i := 26; i < len(cs); i++ {
		e12, ok1 := emaLast(cs[:i+1], 12)
		e26, ok2 := emaLast(cs[:i+1], 26)
		if ok1 && ok2 {
			macdSeries = append(macdSeries, e12-e26)
		}
	}

	signalLine, ok := emaLast(macdSeries, 9)
	if !ok {
		signalLine = 0
	}
	histogram := macdLine - signalLine

	return model.MACDValue{
		MACD:      round5(macdLine),
		Signal:    round5(signalLine),
		Histogram: round5(histogram),
	}, true
}
