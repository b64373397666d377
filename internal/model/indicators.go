package model

// MACDValue holds the MACD line, its signal line and the histogram
// (line minus signal), all rounded to 5 decimals.
type MACDValue struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// BollingerBands holds the 20-period SMA envelope, rounded to 5 decimals.
// Invariant: Upper >= Middle >= Lower.
type BollingerBands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// PivotPoints are classic floor-trader pivots derived from the single
// latest candle's high/low/close, rounded to 2 decimals.
type PivotPoints struct {
	Pivot float64 `json:"pivot"`
	R1    float64 `json:"r1"`
	R2    float64 `json:"r2"`
	R3    float64 `json:"r3"`
	S1    float64 `json:"s1"`
	S2    float64 `json:"s2"`
	S3    float64 `json:"s3"`
}

// SwingLevels are clustered swing-high/swing-low price levels from the
// lookback window, each list capped at 3 entries, rounded to 2 decimals.
type SwingLevels struct {
	Resistance []float64 `json:"resistance"`
	Support    []float64 `json:"support"`
}

// FibonacciLevels are retracements of the lookback window's high-low
// range, measured down from the high, rounded to 2 decimals.
type FibonacciLevels struct {
	High   float64 `json:"high"`
	Fib786 float64 `json:"fib_786"`
	Fib618 float64 `json:"fib_618"`
	Fib50  float64 `json:"fib_50"`
	Fib382 float64 `json:"fib_382"`
	Fib236 float64 `json:"fib_236"`
	Low    float64 `json:"low"`
}

// IndicatorSet is the Indicator Engine's output: one optional entry per
// requested indicator. A nil field means the indicator was either not
// requested or not computable from the given candle count: callers must
// treat absence as "no data", never as zero.
type IndicatorSet struct {
	EMA20             *float64         `json:"ema20,omitempty"`
	EMA50             *float64         `json:"ema50,omitempty"`
	EMA200            *float64         `json:"ema200,omitempty"`
	RSI               *float64         `json:"rsi,omitempty"`
	MACD              *MACDValue       `json:"macd,omitempty"`
	ATR               *float64         `json:"atr,omitempty"`
	BollingerBands    *BollingerBands  `json:"bollingerBands,omitempty"`
	PivotPoints       *PivotPoints     `json:"pivotPoints,omitempty"`
	SupportResistance *SwingLevels     `json:"supportResistance,omitempty"`
	Fibonacci         *FibonacciLevels `json:"fibonacci,omitempty"`
}
