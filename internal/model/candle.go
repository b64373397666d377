package model

import "math"

// Source tags candle provenance so downstream consumers can disclose
// whether levels were computed from live or demonstration data.
type Source string

const (
	SourceLive Source = "live"
	SourceDemo Source = "demo"
)

// Candle represents one OHLCV bar. Prices are float64 because portal
// symbols (FX pairs, metals) quote at fractional pips; rounding happens
// at the indicator boundary, never on raw candles.
type Candle struct {
	Time   int64   `json:"time"` // unix seconds, bucket start
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Valid reports whether all numeric fields are finite.
func (c Candle) Valid() bool {
	for _, v := range []float64{c.Open, c.High, c.Low, c.Close, c.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// CandleSeries is an ordered (oldest-to-newest) candle sequence for one
// symbol and timeframe, plus its provenance. The last element is "latest".
type CandleSeries struct {
	Symbol    string   `json:"symbol"`
	Timeframe string   `json:"timeframe"`
	Candles   []Candle `json:"candles"`
	Source    Source   `json:"source"`
}

// Latest returns the most recent candle. ok is false for an empty series.
func (s CandleSeries) Latest() (Candle, bool) {
	if len(s.Candles) == 0 {
		return Candle{}, false
	}
	return s.Candles[len(s.Candles)-1], true
}

// Key returns a unique key for this series: "symbol:timeframe".
func (s CandleSeries) Key() string {
	return s.Symbol + ":" + s.Timeframe
}
