package indicator

import (
	"math"
	"testing"

	"market-analytics/internal/model"
)

// ────────────────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────────────────

// bar builds a candle with half-point wicks around the close.
func bar(i int, close float64) model.Candle {
	return model.Candle{
		Time: int64(1700000000 + i*3600),
		Open: close, High: close + 0.5, Low: close - 0.5, Close: close,
		Volume: 1000,
	}
}

// flatBar builds a wickless candle (high == low == close).
func flatBar(i int, close float64) model.Candle {
	return model.Candle{
		Time: int64(1700000000 + i*3600),
		Open: close, High: close, Low: close, Close: close,
		Volume: 1000,
	}
}

// ramp returns n candles with closes start, start+1, ... start+n-1.
func ramp(start float64, n int) []model.Candle {
	out := make([]model.Candle, n)
	for i := range out {
		out[i] = bar(i, start+float64(i))
	}
	return out
}

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f, diff=%.6f)", label, got, want, tol, math.Abs(got-want))
	}
}

// ────────────────────────────────────────────────────────────
// EMA Correctness
// ────────────────────────────────────────────────────────────

func TestEMA_Correctness_ArithmeticRamp(t *testing.T) {
	// Closes 100..159 (step 1). For an arithmetic ramp the EMA gap is
	// exactly stationary: seed = avg of first p closes, and each update
	// moves the EMA by exactly the step, leaving it (p+1)/2 - 1 below
	// the latest close.
	//
	// EMA(20): seed = avg(100..119) = 109.5; multiplier = 2/21.
	//   First update (close 120): gap 10.5, 10.5 * 2/21 = 1.0 exactly,
	//   so EMA = 110.5 and the post-update gap is 9.5 forever.
	//   Final: 159 - 9.5 = 149.5.
	// EMA(50): seed = avg(100..149) = 124.5; final gap 24.5 → 134.5.
	candles := ramp(100, 60)

	ema20, ok := EMA(candles, 20)
	if !ok {
		t.Fatal("EMA(20) not computable from 60 candles")
	}
	assertClose(t, "EMA(20)", ema20, 149.5, 0.00001)

	ema50, ok := EMA(candles, 50)
	if !ok {
		t.Fatal("EMA(50) not computable from 60 candles")
	}
	assertClose(t, "EMA(50)", ema50, 134.5, 0.00001)

	// EMA(200) needs 200 candles: absent, not an error.
	if _, ok := EMA(candles, 200); ok {
		t.Error("EMA(200) should not be computable from 60 candles")
	}
}

func TestEMA_Correctness_Period3(t *testing.T) {
	// EMA(3): multiplier = 2/4 = 0.5
	// Closes: 100, 102, 104, 103, 105
	//   Seed after candle 3: (100+102+104)/3 = 102.0
	//   Candle 4: (103-102.0)*0.5 + 102.0 = 102.5
	//   Candle 5: (105-102.5)*0.5 + 102.5 = 103.75
	candles := []model.Candle{bar(0, 100), bar(1, 102), bar(2, 104), bar(3, 103), bar(4, 105)}

	got, ok := EMA(candles, 3)
	if !ok {
		t.Fatal("EMA(3) not computable")
	}
	assertClose(t, "EMA(3)", got, 103.75, 0.00001)
}

func TestEMA_InsideSeedWindowBounds(t *testing.T) {
	// With exactly `period` candles the EMA equals the seed SMA, which
	// must lie within [min close, max close].
	candles := ramp(100, 20)
	got, ok := EMA(candles, 20)
	if !ok {
		t.Fatal("EMA(20) not computable from exactly 20 candles")
	}
	if got < 100 || got > 119 {
		t.Errorf("EMA(20) seed %.5f outside close range [100,119]", got)
	}
	assertClose(t, "EMA(20) seed", got, 109.5, 0.00001)
}

// ────────────────────────────────────────────────────────────
// RSI Correctness (Wilder's Method)
// ────────────────────────────────────────────────────────────

func TestRSI_Correctness_Period5(t *testing.T) {
	// Closes: 44.00, 44.34, 44.09, 43.61, 44.33, 44.83, 45.10
	// Deltas: +0.34, -0.25, -0.48, +0.72, +0.50, +0.27
	//
	// Seed over first 5 deltas:
	//   avgGain = (0.34+0.72+0.50)/5 = 0.312
	//   avgLoss = (0.25+0.48)/5      = 0.146
	// Smooth delta 6 (+0.27):
	//   avgGain = (0.312*4 + 0.27)/5 = 0.3036
	//   avgLoss = (0.146*4 + 0)/5    = 0.1168
	//   RS = 2.5993..., RSI = 100 - 100/(1+RS) = 72.22 (2dp)
	closes := []float64{44.00, 44.34, 44.09, 43.61, 44.33, 44.83, 45.10}
	candles := make([]model.Candle, len(closes))
	for i, c := range closes {
		candles[i] = bar(i, c)
	}

	got, ok := RSI(candles, 5)
	if !ok {
		t.Fatal("RSI(5) not computable")
	}
	assertClose(t, "RSI(5)", got, 72.22, 0.005)
}

func TestRSI_MonotonicUp_Is100(t *testing.T) {
	// All gains, zero losses: avgLoss stays 0 → RSI pegs at 100.
	got, ok := RSI(ramp(100, 60), 14)
	if !ok {
		t.Fatal("RSI not computable")
	}
	assertClose(t, "RSI uptrend", got, 100, 0.00001)
}

func TestRSI_MonotonicDown_Is0(t *testing.T) {
	candles := make([]model.Candle, 60)
	for i := range candles {
		candles[i] = bar(i, 200-float64(i))
	}
	got, ok := RSI(candles, 14)
	if !ok {
		t.Fatal("RSI not computable")
	}
	assertClose(t, "RSI downtrend", got, 0, 0.00001)
}

func TestRSI_AlwaysInRange(t *testing.T) {
	// Alternating series: RSI must stay inside [0,100].
	candles := make([]model.Candle, 60)
	for i := range candles {
		c := 100.0
		if i%2 == 0 {
			c = 103.0
		}
		candles[i] = bar(i, c)
	}
	got, ok := RSI(candles, 14)
	if !ok {
		t.Fatal("RSI not computable")
	}
	if got < 0 || got > 100 {
		t.Errorf("RSI %.4f outside [0,100]", got)
	}
}

// ────────────────────────────────────────────────────────────
// MACD Correctness
// ────────────────────────────────────────────────────────────

func TestMACD_Correctness_ArithmeticRamp(t *testing.T) {
	// Closes 100..159. On an arithmetic ramp the stationary-gap argument
	// gives EMA12 = close - 5.5 and EMA26 = close - 12.5 for every
	// prefix longer than the period, so:
	//   macd line            = 153.5 - 146.5 = 7.0
	//   every rebuilt value  = 7.0 → signal = EMA9 of a constant = 7.0
	//   histogram            = 0.0
	got, ok := MACD(ramp(100, 60))
	if !ok {
		t.Fatal("MACD not computable from 60 candles")
	}
	assertClose(t, "MACD line", got.MACD, 7.0, 0.00001)
	assertClose(t, "MACD signal", got.Signal, 7.0, 0.00001)
	assertClose(t, "MACD histogram", got.Histogram, 0.0, 0.00001)
}

func TestMACD_RequiresTwentySix(t *testing.T) {
	if _, ok := MACD(ramp(100, 25)); ok {
		t.Error("MACD should not be computable from 25 candles")
	}
	if _, ok := MACD(ramp(100, 26)); !ok {
		t.Error("MACD should be computable from exactly 26 candles")
	}
}

// ────────────────────────────────────────────────────────────
// ATR Correctness
// ────────────────────────────────────────────────────────────

func TestATR_Correctness_ConstantTrueRange(t *testing.T) {
	// Ramp candles with ±0.5 wicks and step 1:
	//   high-low        = 1.0
	//   |high-prevClose| = 1.5   ← max
	//   |low-prevClose|  = 0.5
	// Every true range is 1.5, so seed and all smoothed values are 1.5.
	got, ok := ATR(ramp(100, 60), 14)
	if !ok {
		t.Fatal("ATR not computable")
	}
	assertClose(t, "ATR", got, 1.5, 0.00001)
}

func TestATR_NonNegative(t *testing.T) {
	// True range is a max of non-negative magnitudes: ATR can't go
	// below zero even on a crash.
	candles := make([]model.Candle, 60)
	for i := range candles {
		candles[i] = bar(i, 500-float64(i)*5)
	}
	got, ok := ATR(candles, 14)
	if !ok {
		t.Fatal("ATR not computable")
	}
	if got < 0 {
		t.Errorf("ATR %.5f < 0", got)
	}
}

// ────────────────────────────────────────────────────────────
// Bollinger Bands Correctness
// ────────────────────────────────────────────────────────────

func TestBollinger_Correctness_ArithmeticRamp(t *testing.T) {
	// Last 20 closes are 140..159:
	//   middle = 149.5
	//   population variance of 20 consecutive integers = (20²-1)/12 = 33.25
	//   sd = √33.25 ≈ 5.76628
	//   upper ≈ 161.03256, lower ≈ 137.96744
	got, ok := Bollinger(ramp(100, 60), 20, 2)
	if !ok {
		t.Fatal("Bollinger not computable")
	}
	assertClose(t, "BB middle", got.Middle, 149.5, 0.00001)
	assertClose(t, "BB upper", got.Upper, 161.03256, 0.0001)
	assertClose(t, "BB lower", got.Lower, 137.96744, 0.0001)
}

func TestBollinger_Ordering(t *testing.T) {
	candles := make([]model.Candle, 60)
	for i := range candles {
		c := 100.0 + float64(i%7)
		candles[i] = bar(i, c)
	}
	got, ok := Bollinger(candles, 20, 2)
	if !ok {
		t.Fatal("Bollinger not computable")
	}
	if !(got.Upper >= got.Middle && got.Middle >= got.Lower) {
		t.Errorf("band ordering violated: upper=%.5f middle=%.5f lower=%.5f", got.Upper, got.Middle, got.Lower)
	}
}

// ────────────────────────────────────────────────────────────
// Pivot Points Correctness
// ────────────────────────────────────────────────────────────

func TestPivots_Correctness(t *testing.T) {
	// Latest candle H=159.5, L=158.5, C=159:
	//   pivot = 477/3 = 159.0
	//   r1 = 2*159 - 158.5 = 159.5    s1 = 2*159 - 159.5 = 158.5
	//   r2 = 159 + 1       = 160.0    s2 = 159 - 1        = 158.0
	//   r3 = 159.5 + 2*0.5 = 160.5    s3 = 158.5 - 2*0.5  = 157.5
	got, ok := Pivots(ramp(100, 60))
	if !ok {
		t.Fatal("Pivots not computable")
	}
	assertClose(t, "pivot", got.Pivot, 159.0, 0.00001)
	assertClose(t, "r1", got.R1, 159.5, 0.00001)
	assertClose(t, "r2", got.R2, 160.0, 0.00001)
	assertClose(t, "r3", got.R3, 160.5, 0.00001)
	assertClose(t, "s1", got.S1, 158.5, 0.00001)
	assertClose(t, "s2", got.S2, 158.0, 0.00001)
	assertClose(t, "s3", got.S3, 157.5, 0.00001)
}

func TestPivots_ReflectionSymmetry(t *testing.T) {
	// r1 = 2P-L is the low reflected across the pivot, s1 = 2P-H the
	// high: r1-P == P-L and P-s1 == H-P for any candle. When the close
	// sits at the range midpoint the two collapse into r1-P == P-s1.
	candles := []model.Candle{{
		Time: 1700000000, Open: 101, High: 104.2, Low: 99.1, Close: 102.7, Volume: 10,
	}}
	got, ok := Pivots(candles)
	if !ok {
		t.Fatal("Pivots not computable")
	}
	// 2dp rounding slack on both comparisons.
	assertClose(t, "r1 reflects low", got.R1-got.Pivot, got.Pivot-99.1, 0.011)
	assertClose(t, "s1 reflects high", got.Pivot-got.S1, 104.2-got.Pivot, 0.011)

	// Centered close: H by +0.5, L by -0.5 around C → P == C and the
	// literal r1-P == P-s1 identity holds.
	centered, _ := Pivots([]model.Candle{bar(0, 150)})
	assertClose(t, "centered reflection", centered.R1-centered.Pivot, centered.Pivot-centered.S1, 0.011)
}

// ────────────────────────────────────────────────────────────
// Swing Support/Resistance Correctness
// ────────────────────────────────────────────────────────────

// swingFixture builds 24 flat candles (close 100, ±0.5 wicks), then
// patches highs/lows at window positions. The detection window is the
// last 20 candles; window index w maps to slice index 4+w.
func swingFixture(patch func(candles []model.Candle)) []model.Candle {
	candles := make([]model.Candle, 24)
	for i := range candles {
		candles[i] = bar(i, 100)
	}
	patch(candles)
	return candles
}

func TestSwingSR_DetectsIsolatedExtrema(t *testing.T) {
	candles := swingFixture(func(cs []model.Candle) {
		cs[4+10].High = 110 // swing high at window index 10
		cs[4+6].Low = 90    // swing low at window index 6
	})

	got, ok := SwingSR(candles, DefaultSwingConfig())
	if !ok {
		t.Fatal("SwingSR not computable from 24 candles")
	}
	if len(got.Resistance) != 1 || got.Resistance[0] != 110 {
		t.Errorf("resistance = %v, want [110]", got.Resistance)
	}
	if len(got.Support) != 1 || got.Support[0] != 90 {
		t.Errorf("support = %v, want [90]", got.Support)
	}
}

func TestSwingSR_FlatSeriesHasNoSwings(t *testing.T) {
	// Equal highs never STRICTLY exceed their neighbors.
	got, ok := SwingSR(swingFixture(func([]model.Candle) {}), DefaultSwingConfig())
	if !ok {
		t.Fatal("SwingSR not computable")
	}
	if len(got.Resistance) != 0 || len(got.Support) != 0 {
		t.Errorf("flat series produced swings: %+v", got)
	}
	if got.Resistance == nil || got.Support == nil {
		t.Error("empty sides must be non-nil slices for the [] wire contract")
	}
}

func TestSwingSR_ClustersNearbyLevels(t *testing.T) {
	// Two swing highs 110.00 and 110.05 differ by 0.045% < 0.1%:
	// they merge into one cluster averaging 110.025 → 110.03 at 2dp.
	candles := swingFixture(func(cs []model.Candle) {
		cs[4+5].High = 110
		cs[4+10].High = 110.05
	})

	got, ok := SwingSR(candles, DefaultSwingConfig())
	if !ok {
		t.Fatal("SwingSR not computable")
	}
	if len(got.Resistance) != 1 {
		t.Fatalf("resistance = %v, want one clustered level", got.Resistance)
	}
	assertClose(t, "clustered level", got.Resistance[0], 110.03, 0.00001)
}

func TestSwingSR_CapsAtThreeMostRecent(t *testing.T) {
	// Four well-separated swing highs; only the top 3 clusters survive,
	// reversed to descending.
	candles := swingFixture(func(cs []model.Candle) {
		cs[4+2].High = 105
		cs[4+6].High = 107
		cs[4+10].High = 109
		cs[4+14].High = 111
	})

	got, ok := SwingSR(candles, DefaultSwingConfig())
	if !ok {
		t.Fatal("SwingSR not computable")
	}
	want := []float64{111, 109, 107}
	if len(got.Resistance) != len(want) {
		t.Fatalf("resistance = %v, want %v", got.Resistance, want)
	}
	for i := range want {
		assertClose(t, "resistance level", got.Resistance[i], want[i], 0.00001)
	}
}

func TestSwingSR_LengthGate(t *testing.T) {
	cfg := DefaultSwingConfig()
	if _, ok := SwingSR(ramp(100, cfg.Lookback+3), cfg); ok {
		t.Error("SwingSR should require lookback+4 candles")
	}
	if _, ok := SwingSR(ramp(100, cfg.Lookback+4), cfg); !ok {
		t.Error("SwingSR should be computable at exactly lookback+4 candles")
	}
}

// ────────────────────────────────────────────────────────────
// Fibonacci Correctness
// ────────────────────────────────────────────────────────────

func TestFibonacci_Correctness_ArithmeticRamp(t *testing.T) {
	// Last 50 ramp candles: window high = 159.5, low = 109.5, range 50.
	//   fib_236 = 159.5 - 11.8 = 147.7
	//   fib_382 = 159.5 - 19.1 = 140.4
	//   fib_50  = 159.5 - 25.0 = 134.5
	//   fib_618 = 159.5 - 30.9 = 128.6
	//   fib_786 = 159.5 - 39.3 = 120.2
	got, ok := Fibonacci(ramp(100, 60), 50)
	if !ok {
		t.Fatal("Fibonacci not computable")
	}
	assertClose(t, "fib high", got.High, 159.5, 0.00001)
	assertClose(t, "fib low", got.Low, 109.5, 0.00001)
	assertClose(t, "fib 236", got.Fib236, 147.7, 0.00001)
	assertClose(t, "fib 382", got.Fib382, 140.4, 0.00001)
	assertClose(t, "fib 50", got.Fib50, 134.5, 0.00001)
	assertClose(t, "fib 618", got.Fib618, 128.6, 0.00001)
	assertClose(t, "fib 786", got.Fib786, 120.2, 0.00001)
}

func TestFibonacci_LevelsInsideRange(t *testing.T) {
	got, ok := Fibonacci(ramp(100, 60), 50)
	if !ok {
		t.Fatal("Fibonacci not computable")
	}
	for label, v := range map[string]float64{
		"fib_236": got.Fib236, "fib_382": got.Fib382, "fib_50": got.Fib50,
		"fib_618": got.Fib618, "fib_786": got.Fib786,
	} {
		if v <= got.Low || v >= got.High {
			t.Errorf("%s = %.2f outside (low=%.2f, high=%.2f)", label, v, got.Low, got.High)
		}
	}
}
