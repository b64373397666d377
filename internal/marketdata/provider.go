// Package marketdata supplies OHLCV candle series to the analytics
// pipeline: REST providers, a demo-data fallback and a TTL cache keyed
// by symbol with per-asset-class policies. The indicator engine treats
// whatever this package returns as read-only input; stale-but-valid
// arrays from the cache are acceptable.
package marketdata

import (
	"context"
	"errors"

	"market-analytics/internal/model"
)

// ErrNoData signals that a provider had no candles for the request.
// The fetcher treats it as "try the next provider", not as fatal.
var ErrNoData = errors.New("marketdata: no candle data available")

// Provider fetches candles for one symbol/timeframe. Implementations
// must return candles ordered oldest-to-newest.
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Candles returns up to limit bars. ErrNoData when the provider has
	// nothing for the symbol; other errors indicate transport failures.
	Candles(ctx context.Context, symbol, timeframe string, limit int) ([]model.Candle, error)
}

// timeframeSeconds maps portal timeframe codes to bucket widths.
var timeframeSeconds = map[string]int64{
	"M5":  300,
	"M15": 900,
	"H1":  3600,
	"H4":  14400,
	"D1":  86400,
	"W1":  604800,
}

// TimeframeSeconds returns the bucket width for a timeframe code,
// defaulting to H1 for unknown codes.
func TimeframeSeconds(timeframe string) int64 {
	if s, ok := timeframeSeconds[timeframe]; ok {
		return s
	}
	return 3600
}
