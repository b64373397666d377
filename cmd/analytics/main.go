package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"market-analytics/config"
	"market-analytics/internal/analytics"
	"market-analytics/internal/indicator"
	"market-analytics/internal/levels"
	"market-analytics/internal/logger"
	"market-analytics/internal/marketdata"
	"market-analytics/internal/metrics"
	"market-analytics/internal/store/sqlite"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	cfg := config.Load()
	slogger := logger.Init("analytics", logger.ParseLevel(cfg.LogLevel))
	prom := metrics.New()

	var cache marketdata.Cache
	if cfg.RedisAddr != "" {
		rc, err := marketdata.NewRedisCache(marketdata.RedisCacheConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}, slogger)
		if err != nil {
			log.Fatalf("[analytics] redis cache init failed: %v", err)
		}
		defer rc.Close()
		cache = rc
	} else {
		cache = marketdata.NewMemoryCache()
	}

	var providers []marketdata.Provider
	if cfg.FinnhubAPIKey != "" {
		providers = append(providers, marketdata.NewFinnhub(marketdata.FinnhubConfig{
			BaseURL: cfg.FinnhubBaseURL,
			APIKey:  cfg.FinnhubAPIKey,
		}))
	} else {
		log.Printf("[analytics] no FINNHUB_API_KEY set, running demo-only")
	}

	ttl := marketdata.TTLPolicy{
		Default:     cfg.CacheTTLDefault,
		Metals:      cfg.CacheTTLMetals,
		Commodities: cfg.CacheTTLCommodity,
	}
	fetcher := marketdata.NewFetcher(providers, marketdata.NewDemo(), cache, ttl, prom, slogger)

	recorder, err := sqlite.New(sqlite.RecorderConfig{DBPath: cfg.SQLitePath}, slogger)
	if err != nil {
		log.Fatalf("[analytics] summary store init failed: %v", err)
	}
	defer recorder.Close()

	svc := analytics.New(cfg, fetcher,
		indicator.NewEngine(indicator.DefaultConfig()),
		levels.DefaultConfig(), recorder, prom, slogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := svc.Run(ctx); err != nil {
		log.Fatalf("[analytics] fatal: %v", err)
	}
}
