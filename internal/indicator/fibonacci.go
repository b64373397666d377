package indicator

import "market-analytics/internal/model"

// Fibonacci computes retracement levels from the high/low extremes of
// the last `lookback` candles, rounded to 2 decimals. ok is false when
// fewer than `lookback` candles are available.
func Fibonacci(candles []model.Candle, lookback int) (model.FibonacciLevels, bool) {
	if len(candles) < lookback {
		return model.FibonacciLevels{}, false
	}

	recent := candles[len(candles)-lookback:]
	high := recent[0].High
	low := recent[0].Low
	for _, c := range recent[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	rng := high - low

	return model.FibonacciLevels{
		High:   round2(high),
		Fib786: round2(high - rng*0.786),
		Fib618: round2(high - rng*0.618),
		Fib50:  round2(high - rng*0.5),
		Fib382: round2(high - rng*0.382),
		Fib236: round2(high - rng*0.236),
		Low:    round2(low),
	}, true
}
