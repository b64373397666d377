package model

import "encoding/json"

// SelectedLevels is the shortlist of nearest levels around the current
// price. Support is sorted descending (nearest first) and strictly below
// price; Resistance ascending and strictly above. Max 3 entries per side;
// empty slices are a valid "no qualifying levels" state.
type SelectedLevels struct {
	Support    []float64 `json:"support"`
	Resistance []float64 `json:"resistance"`
}

// LevelSummary is the single source of truth for "what are the real
// support/resistance numbers" for one symbol+timeframe. It is produced
// once per request and handed downstream verbatim; consumers cite its
// numbers literally and must not substitute their own.
//
// Nil indicator groups serialize as JSON null, matching the wire contract
// the portal's grounding block expects.
type LevelSummary struct {
	Symbol       string           `json:"symbol"`
	Timeframe    string           `json:"timeframe"`
	CurrentPrice float64          `json:"currentPrice"`
	PivotPoints  *PivotPoints     `json:"pivotPoints"`
	SwingLevels  *SwingLevels     `json:"swingLevels"`
	Fibonacci    *FibonacciLevels `json:"fibonacci"`
	Selected     SelectedLevels   `json:"selected"`
	Source       Source           `json:"source"`
}

// JSON returns the JSON-encoded summary (ignoring errors for hot-path usage).
func (s *LevelSummary) JSON() []byte {
	b, _ := json.Marshal(s)
	return b
}
