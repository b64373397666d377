// Package levels reduces the Indicator Engine's candidate price levels
// (pivots, swing levels, Fibonacci retracements) to the few nearest the
// current price.
//
// The resulting LevelSummary is the single source of truth for "what are
// the real support/resistance numbers": the portal's assistant is required
// to cite its values verbatim, which is what keeps generated prose from
// inventing price levels. Like the indicator package, everything here is
// a pure function of its inputs.
package levels

import (
	"errors"
	"sort"

	"market-analytics/internal/model"
)

// ErrNoCandles rejects summarization of an empty series: there is no
// current price to rank against.
var ErrNoCandles = errors.New("levels: series has no candles")

// Config parameterizes level selection. The cap of 3 per side is the
// reference heuristic; it is configurable but the default should not be
// changed without evidence it was wrong.
type Config struct {
	MaxPerSide int
}

// DefaultConfig returns the reference selection parameters.
func DefaultConfig() Config {
	return Config{MaxPerSide: 3}
}

// Summarize ranks every candidate level from the indicator set against
// the latest close and returns the shortlist of nearest levels.
//
// Support candidates are values strictly below the current price drawn
// from pivot s1/s2/s3, swing support and the five Fibonacci retracements;
// resistance candidates are the symmetric values strictly above. Support
// is sorted descending and resistance ascending so index 0 is nearest to
// price, then each side is capped at MaxPerSide. Absent indicator groups
// contribute nothing; if all three are absent both sides come back as
// empty slices, which is a valid result, not an error.
func Summarize(series model.CandleSeries, ind model.IndicatorSet, cfg Config) (model.LevelSummary, error) {
	latest, ok := series.Latest()
	if !ok {
		return model.LevelSummary{}, ErrNoCandles
	}
	currentPrice := latest.Close

	var supports, resistances []float64

	if pp := ind.PivotPoints; pp != nil {
		for _, s := range []float64{pp.S1, pp.S2, pp.S3} {
			if s < currentPrice {
				supports = append(supports, s)
			}
		}
		for _, r := range []float64{pp.R1, pp.R2, pp.R3} {
			if r > currentPrice {
				resistances = append(resistances, r)
			}
		}
	}

	if sr := ind.SupportResistance; sr != nil {
		for _, s := range sr.Support {
			if s < currentPrice {
				supports = append(supports, s)
			}
		}
		for _, r := range sr.Resistance {
			if r > currentPrice {
				resistances = append(resistances, r)
			}
		}
	}

	if fib := ind.Fibonacci; fib != nil {
		for _, f := range []float64{fib.Fib236, fib.Fib382, fib.Fib50, fib.Fib618, fib.Fib786} {
			if f < currentPrice {
				supports = append(supports, f)
			} else if f > currentPrice {
				resistances = append(resistances, f)
			}
		}
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(supports))) // nearest-below first
	sort.Float64s(resistances)                           // nearest-above first

	return model.LevelSummary{
		Symbol:       series.Symbol,
		Timeframe:    series.Timeframe,
		CurrentPrice: round2(currentPrice),
		PivotPoints:  ind.PivotPoints,
		SwingLevels:  ind.SupportResistance,
		Fibonacci:    ind.Fibonacci,
		Selected: model.SelectedLevels{
			Support:    capRound(supports, cfg.MaxPerSide),
			Resistance: capRound(resistances, cfg.MaxPerSide),
		},
		Source: series.Source,
	}, nil
}

// capRound truncates to n entries and rounds to 2 decimals. Always
// returns a non-nil slice so empty sides serialize as [].
func capRound(vs []float64, n int) []float64 {
	if len(vs) > n {
		vs = vs[:n]
	}
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		out = append(out, round2(v))
	}
	return out
}
