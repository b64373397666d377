package marketdata

import (
	"context"
	"errors"
	"log/slog"

	"market-analytics/internal/metrics"
	"market-analytics/internal/model"
)

// Fetcher resolves candle series through cache → live providers → demo
// fallback. The cache holds only live data; demo candles are synthetic
// and cheap, caching them would just pin stale randomness.
type Fetcher struct {
	providers []Provider // tried in order
	demo      *Demo
	cache     Cache
	ttl       TTLPolicy
	prom      *metrics.Metrics
	log       *slog.Logger
}

// NewFetcher wires a fetcher. cache must not be nil; pass a MemoryCache
// for single-node setups.
func NewFetcher(providers []Provider, demo *Demo, cache Cache, ttl TTLPolicy, prom *metrics.Metrics, log *slog.Logger) *Fetcher {
	return &Fetcher{
		providers: providers,
		demo:      demo,
		cache:     cache,
		ttl:       ttl,
		prom:      prom,
		log:       log,
	}
}

// Fetch returns a candle series for symbol+timeframe. Source is "live"
// when any real provider served it (possibly from cache), "demo" when
// every provider failed and the synthetic generator stepped in.
// A stale-but-unexpired cache entry is a valid answer.
func (f *Fetcher) Fetch(ctx context.Context, symbol, timeframe string, limit int) (model.CandleSeries, error) {
	series := model.CandleSeries{Symbol: symbol, Timeframe: timeframe, Source: model.SourceLive}
	key := series.Key()

	if candles, ok := f.cache.Get(ctx, key); ok && len(candles) > 0 {
		f.prom.CacheHits.Inc()
		series.Candles = candles
		return series, nil
	}
	f.prom.CacheMisses.Inc()

	for _, p := range f.providers {
		candles, err := p.Candles(ctx, symbol, timeframe, limit)
		if err != nil {
			if ctx.Err() != nil {
				return model.CandleSeries{}, ctx.Err()
			}
			f.prom.ProviderFailures.WithLabelValues(p.Name()).Inc()
			if !errors.Is(err, ErrNoData) {
				f.log.Warn("provider failed",
					slog.String("provider", p.Name()),
					slog.String("symbol", symbol),
					slog.Any("err", err))
			}
			continue
		}
		if len(candles) == 0 {
			continue
		}

		f.cache.Set(ctx, key, candles, f.ttl.For(symbol))
		series.Candles = candles
		return series, nil
	}

	// Every live source failed. Serve demonstration data rather than
	// nothing, tagged so downstream consumers disclose it.
	f.log.Info("all live providers failed, using demo data",
		slog.String("symbol", symbol), slog.String("timeframe", timeframe))
	candles, err := f.demo.Candles(ctx, symbol, timeframe, limit)
	if err != nil {
		return model.CandleSeries{}, err
	}
	series.Candles = candles
	series.Source = model.SourceDemo
	return series, nil
}
