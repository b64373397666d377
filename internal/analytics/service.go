// Package analytics wires candle fetching, the indicator engine and the
// level summarizer into the pipeline the HTTP surface exposes.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"market-analytics/config"
	"market-analytics/internal/api"
	"market-analytics/internal/indicator"
	"market-analytics/internal/levels"
	"market-analytics/internal/logger"
	"market-analytics/internal/marketdata"
	"market-analytics/internal/metrics"
	"market-analytics/internal/model"
	"market-analytics/internal/store/sqlite"
)

const recorderQueueSize = 256

// Service runs the fetch → compute → summarize pipeline.
type Service struct {
	cfg       *config.Config
	fetcher   *marketdata.Fetcher
	engine    *indicator.Engine
	levelsCfg levels.Config
	recorder  *sqlite.Recorder
	summaryCh chan model.LevelSummary
	prom      *metrics.Metrics
	log       *slog.Logger
}

// New assembles the pipeline. recorder may be nil, in which case
// summaries are not persisted and History returns an error.
func New(cfg *config.Config, fetcher *marketdata.Fetcher, engine *indicator.Engine,
	levelsCfg levels.Config, recorder *sqlite.Recorder, prom *metrics.Metrics, log *slog.Logger) *Service {
	return &Service{
		cfg:       cfg,
		fetcher:   fetcher,
		engine:    engine,
		levelsCfg: levelsCfg,
		recorder:  recorder,
		summaryCh: make(chan model.LevelSummary, recorderQueueSize),
		prom:      prom,
		log:       log,
	}
}

// Analyze fetches candles for symbol+timeframe, computes the full
// indicator bundle and summarizes the nearest support and resistance
// levels around the current price.
func (s *Service) Analyze(ctx context.Context, symbol, timeframe string) (model.LevelSummary, error) {
	s.prom.LevelRequests.Inc()

	series, err := s.fetcher.Fetch(ctx, symbol, timeframe, s.cfg.CandleLimit)
	if err != nil {
		s.prom.LevelErrors.Inc()
		return model.LevelSummary{}, fmt.Errorf("fetch candles: %w", err)
	}
	if series.Source == model.SourceDemo {
		s.prom.DemoFallbacks.Inc()
	}

	ind, err := s.engine.Compute(series.Candles, indicator.AllKinds())
	if err != nil {
		s.prom.LevelErrors.Inc()
		return model.LevelSummary{}, fmt.Errorf("compute indicators: %w", err)
	}

	summary, err := levels.Summarize(series, ind, s.levelsCfg)
	if err != nil {
		s.prom.LevelErrors.Inc()
		return model.LevelSummary{}, fmt.Errorf("summarize levels: %w", err)
	}

	s.record(summary)

	s.log.Info("level summary produced", append(logger.LogWithTrace(ctx),
		slog.String("symbol", symbol),
		slog.String("timeframe", timeframe),
		slog.String("source", string(summary.Source)),
		slog.Float64("price", summary.CurrentPrice),
		slog.Int("supports", len(summary.Selected.Support)),
		slog.Int("resistances", len(summary.Selected.Resistance)))...)
	return summary, nil
}

// ComputeIndicators computes the named indicators over caller-supplied
// candles. A nil names list means the full bundle; a non-nil list
// computes exactly what it names, so an empty or all-unknown list
// yields an empty set.
func (s *Service) ComputeIndicators(candles []model.Candle, names []string) (model.IndicatorSet, error) {
	s.prom.IndicatorRequests.Inc()

	kinds := indicator.AllKinds()
	if names != nil {
		kinds = indicator.ParseKinds(names)
	}

	start := time.Now()
	set, err := s.engine.Compute(candles, kinds)
	s.prom.ComputeDur.Observe(time.Since(start).Seconds())
	if err != nil {
		s.prom.IndicatorErrors.Inc()
		return model.IndicatorSet{}, err
	}
	return set, nil
}

// ErrNoStore is returned by History when no recorder is configured.
var ErrNoStore = errors.New("summary store not configured")

// History returns recently recorded summaries, newest first.
func (s *Service) History(ctx context.Context, symbol, timeframe string, n int) ([]model.LevelSummary, error) {
	if s.recorder == nil {
		return nil, ErrNoStore
	}
	return s.recorder.Recent(ctx, symbol, timeframe, n)
}

// Ready pings the summary store. A store-less service is always ready.
func (s *Service) Ready(ctx context.Context) error {
	if s.recorder == nil {
		return nil
	}
	if err := s.recorder.DB().PingContext(ctx); err != nil {
		return fmt.Errorf("summary store: %w", err)
	}
	return nil
}

// record enqueues a summary for the recorder without blocking the
// request path. A full queue drops the summary and counts the drop.
func (s *Service) record(summary model.LevelSummary) {
	if s.recorder == nil {
		return
	}
	select {
	case s.summaryCh <- summary:
		s.prom.SummariesRecorded.Inc()
	default:
		s.prom.RecorderDrops.Inc()
	}
}

// Run starts the recorder loop and HTTP server, blocking until ctx is
// cancelled, then shuts the server down gracefully.
func (s *Service) Run(ctx context.Context) error {
	if s.recorder != nil {
		go s.recorder.Run(ctx, s.summaryCh)
	}

	server := api.NewServer(s, s.prom, s.log, s.cfg.StreamInterval)
	httpSrv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", slog.String("addr", s.cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		s.log.Warn("http shutdown", slog.Any("err", err))
	}
	return nil
}

// compile-time interface check
var _ api.Service = (*Service)(nil)
