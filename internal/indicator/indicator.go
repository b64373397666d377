// Package indicator computes technical indicators over OHLCV candle
// sequences.
//
// Every computation is a pure function of its input slice: no caching, no
// cross-call state, safe for concurrent use. Indicators degrade
// per-indicator: one that lacks enough candles for its own period is
// omitted from the result, it never fails the whole call. Numeric output
// is rounded at the indicator boundary (2 decimals for price-scale levels
// and RSI, 5 for EMA/MACD/ATR/Bollinger) so downstream consumers can
// compare serialized values exactly.
package indicator

// Kind identifies one computable indicator. Requests arrive as wire names
// ("EMA20", "RSI14", ...) and are parsed into this closed enumeration so
// dispatch can't fall through on a typo.
type Kind uint8

const (
	KindEMA20 Kind = iota
	KindEMA50
	KindEMA200
	KindRSI14
	KindMACD
	KindATR
	KindBB
	KindPivot
	KindSR
	KindFib
)

var kindNames = map[Kind]string{
	KindEMA20:  "EMA20",
	KindEMA50:  "EMA50",
	KindEMA200: "EMA200",
	KindRSI14:  "RSI14",
	KindMACD:   "MACD",
	KindATR:    "ATR",
	KindBB:     "BB",
	KindPivot:  "PIVOT",
	KindSR:     "SR",
	KindFib:    "FIB",
}

func (k Kind) String() string { return kindNames[k] }

// ParseKind maps a wire name to its Kind. ok is false for unknown names.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// ParseKinds maps wire names to Kinds, silently dropping unknown names:
// a request for an unrecognized indicator simply yields no entry for it.
func ParseKinds(names []string) []Kind {
	kinds := make([]Kind, 0, len(names))
	for _, n := range names {
		if k, ok := ParseKind(n); ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// AllKinds returns every indicator kind in wire order.
func AllKinds() []Kind {
	return []Kind{
		KindEMA20, KindEMA50, KindEMA200, KindRSI14, KindMACD,
		KindATR, KindBB, KindPivot, KindSR, KindFib,
	}
}
