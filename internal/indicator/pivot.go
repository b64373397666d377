package indicator

import "market-analytics/internal/model"

// Pivots computes classic floor-trader pivot points from the single
// latest candle. All levels are rounded to 2 decimals. ok is false for
// an empty slice.
//
// P = (H+L+C)/3, then the reflection pairs
// r1 = 2P-L, s1 = 2P-H (so r1-P == P-s1), r2/s2 one full range out,
// r3/s3 two pivot-distances beyond the extremes.
func Pivots(candles []model.Candle) (model.PivotPoints, bool) {
	if len(candles) < 1 {
		return model.PivotPoints{}, false
	}

	latest := candles[len(candles)-1]
	pivot := (latest.High + latest.Low + latest.Close) / 3

	return model.PivotPoints{
		Pivot: round2(pivot),
		R1:    round2(2*pivot - latest.Low),
		R2:    round2(pivot + (latest.High - latest.Low)),
		R3:    round2(latest.High + 2*(pivot-latest.Low)),
		S1:    round2(2*pivot - latest.High),
		S2:    round2(pivot - (latest.High - latest.Low)),
		S3:    round2(latest.Low - 2*(latest.High-pivot)),
	}, true
}
