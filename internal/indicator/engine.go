package indicator

import (
	"errors"
	"fmt"

	"market-analytics/internal/model"
)

// MinCandles is the floor below which no indicator bundle is considered
// accurate enough to serve. Callers must reject shorter sequences before
// attempting partial computation.
const MinCandles = 50

var (
	// ErrInsufficientCandles rejects a whole request whose candle count
	// is below MinCandles. Per-indicator shortfalls above the floor are
	// not errors: those indicators are just omitted.
	ErrInsufficientCandles = errors.New("indicator: at least 50 candles required for accurate indicators")

	// ErrMalformedCandle rejects a sequence containing non-finite fields.
	ErrMalformedCandle = errors.New("indicator: candle has non-finite field")
)

// Config carries the tunable indicator parameters. Fixed-period
// indicators (EMA 20/50/200, RSI 14, MACD 12/26/9, ATR 14, BB 20/2) are
// part of the wire contract and are not configurable.
type Config struct {
	Swing       SwingConfig
	FibLookback int
}

// DefaultConfig returns the reference parameters.
func DefaultConfig() Config {
	return Config{Swing: DefaultSwingConfig(), FibLookback: 50}
}

// Engine computes requested indicator bundles over candle sequences.
// It is stateless; a single Engine is safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given parameters.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Compute returns an IndicatorSet holding every requested indicator that
// is computable from the candle sequence. Indicators whose own period
// needs more candles than provided are omitted, not errored. The whole
// call fails only for sequences below MinCandles or containing
// non-finite fields.
//
// Compute is a pure function of its inputs: identical input yields
// identical output, and nothing is cached between calls.
func (e *Engine) Compute(candles []model.Candle, kinds []Kind) (model.IndicatorSet, error) {
	if len(candles) < MinCandles {
		return model.IndicatorSet{}, fmt.Errorf("%w (got %d)", ErrInsufficientCandles, len(candles))
	}
	for i, c := range candles {
		if !c.Valid() {
			return model.IndicatorSet{}, fmt.Errorf("%w (index %d)", ErrMalformedCandle, i)
		}
	}

	var set model.IndicatorSet
	for _, k := range kinds {
		switch k {
		case KindEMA20:
			if v, ok := EMA(candles, 20); ok {
				set.EMA20 = &v
			}
		case KindEMA50:
			if v, ok := EMA(candles, 50); ok {
				set.EMA50 = &v
			}
		case KindEMA200:
			if v, ok := EMA(candles, 200); ok {
				set.EMA200 = &v
			}
		case KindRSI14:
			if v, ok := RSI(candles, 14); ok {
				set.RSI = &v
			}
		case KindMACD:
			if v, ok := MACD(candles); ok {
				set.MACD = &v
			}
		case KindATR:
			if v, ok := ATR(candles, 14); ok {
				set.ATR = &v
			}
		case KindBB:
			if v, ok := Bollinger(candles, 20, 2); ok {
				set.BollingerBands = &v
			}
		case KindPivot:
			if v, ok := Pivots(candles); ok {
				set.PivotPoints = &v
			}
		case KindSR:
			if v, ok := SwingSR(candles, e.cfg.Swing); ok {
				set.SupportResistance = &v
			}
		case KindFib:
			if v, ok := Fibonacci(candles, e.cfg.FibLookback); ok {
				set.Fibonacci = &v
			}
		}
	}
	return set, nil
}
