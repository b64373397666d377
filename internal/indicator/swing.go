package indicator

import (
	"math"
	"sort"

	"market-analytics/internal/model"
)

// SwingConfig parameterizes swing support/resistance detection. The
// defaults reproduce the portal's reference behavior; the clustering
// tolerance and truncation cap are heuristics without a documented
// derivation, so they are configurable rather than baked in.
type SwingConfig struct {
	// Lookback is the detection window in candles. The length gate is
	// Lookback+4 so the window edges have their two neighbors.
	Lookback int
	// ClusterTolerance is the max relative difference for two levels to
	// merge into one cluster (0.001 == 0.1%).
	ClusterTolerance float64
	// MaxLevels caps each side's list.
	MaxLevels int
}

// DefaultSwingConfig returns the reference parameters: 20-candle window,
// 0.1% clustering, last 3 levels per side.
func DefaultSwingConfig() SwingConfig {
	return SwingConfig{Lookback: 20, ClusterTolerance: 0.001, MaxLevels: 3}
}

// SwingSR finds swing highs/lows inside the lookback window, clusters
// near-identical levels and returns up to MaxLevels per side, rounded to
// 2 decimals. A bar is a swing high when its high strictly exceeds the
// highs of the 2 bars either side; swing lows are symmetric. Resistance
// is the last MaxLevels clusters in descending order, support the last
// MaxLevels in ascending order. ok is false when fewer than Lookback+4
// candles are available.
func SwingSR(candles []model.Candle, cfg SwingConfig) (model.SwingLevels, bool) {
	if len(candles) < cfg.Lookback+4 {
		return model.SwingLevels{}, false
	}

	recent := candles[len(candles)-cfg.Lookback:]

	var swingHighs, swingLows []float64
	for i := 2; i < len(recent)-2; i++ {
		curr := recent[i]

		if curr.High > recent[i-1].High && curr.High > recent[i-2].High &&
			curr.High > recent[i+1].High && curr.High > recent[i+2].High {
			swingHighs = append(swingHighs, curr.High)
		}

		if curr.Low < recent[i-1].Low && curr.Low < recent[i-2].Low &&
			curr.Low < recent[i+1].Low && curr.Low < recent[i+2].Low {
			swingLows = append(swingLows, curr.Low)
		}
	}

	// Non-nil even when empty so the JSON contract stays [] rather than null.
	resistance := lastN(clusterLevels(swingHighs, cfg.ClusterTolerance), cfg.MaxLevels)
	reverse(resistance)
	support := lastN(clusterLevels(swingLows, cfg.ClusterTolerance), cfg.MaxLevels)

	for i, r := range resistance {
		resistance[i] = round2(r)
	}
	for i, s := range support {
		support[i] = round2(s)
	}

	return model.SwingLevels{Resistance: resistance, Support: support}, true
}

// clusterLevels sorts levels ascending and merges runs whose relative
// distance from the run's first member is below tol, replacing each run
// with its mean.
func clusterLevels(levels []float64, tol float64) []float64 {
	if len(levels) == 0 {
		return nil
	}

	sorted := append([]float64(nil), levels...)
	sort.Float64s(sorted)

	var clusters []float64
	current := []float64{sorted[0]}

	for _, v := range sorted[1:] {
		pctDiff := math.Abs(v-current[0]) / current[0]
		if pctDiff < tol {
			current = append(current, v)
		} else {
			clusters = append(clusters, mean(current))
			current = []float64{v}
		}
	}
	clusters = append(clusters, mean(current))
	return clusters
}

func mean(vs []float64) float64 {
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func lastN(vs []float64, n int) []float64 {
	if len(vs) > n {
		vs = vs[len(vs)-n:]
	}
	return append([]float64{}, vs...)
}

func reverse(vs []float64) {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}
