// Package sqlite persists produced level summaries, the audit trail
// behind the portal's "Data used" transparency block. Writes are batched
// in transactions with a single-writer connection.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"market-analytics/internal/model"
)

const (
	defaultBatchSize  = 50
	defaultFlushDelay = 500 * time.Millisecond
)

// RecorderConfig configures the summary recorder.
type RecorderConfig struct {
	DBPath string // path to SQLite database file, e.g. "data/summaries.db"
}

// Recorder is a single-goroutine SQLite writer with transaction batching.
type Recorder struct {
	db  *sql.DB
	log *slog.Logger
}

// DB returns the underlying sql.DB for health checks.
func (r *Recorder) DB() *sql.DB { return r.db }

// New creates a Recorder, initializing the database with WAL mode and schema.
func New(cfg RecorderConfig, log *slog.Logger) (*Recorder, error) {
	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// Single-writer discipline
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	log.Info("summary store opened", slog.String("path", cfg.DBPath))
	return &Recorder{db: db, log: log}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS level_summaries (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol        TEXT    NOT NULL,
			timeframe     TEXT    NOT NULL,
			current_price REAL    NOT NULL,
			source        TEXT    NOT NULL,
			summary       TEXT    NOT NULL,
			created_at    INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_summaries_symbol
			ON level_summaries (symbol, timeframe, created_at);
	`)
	return err
}

// Run reads summaries from summaryCh and inserts them in batched
// transactions. Flushes every defaultBatchSize summaries OR every
// defaultFlushDelay, whichever first. Blocks until ctx is cancelled or
// summaryCh is closed.
func (r *Recorder) Run(ctx context.Context, summaryCh <-chan model.LevelSummary) {
	batch := make([]model.LevelSummary, 0, defaultBatchSize)
	timer := time.NewTimer(defaultFlushDelay)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.insertBatch(batch); err != nil {
			r.log.Error("summary batch insert failed", slog.Any("err", err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return

		case sum, ok := <-summaryCh:
			if !ok {
				flush()
				return
			}
			batch = append(batch, sum)
			if len(batch) >= defaultBatchSize {
				flush()
				timer.Reset(defaultFlushDelay)
			}

		case <-timer.C:
			flush()
			timer.Reset(defaultFlushDelay)
		}
	}
}

// insertBatch inserts a batch of summaries in a single transaction.
func (r *Recorder) insertBatch(summaries []model.LevelSummary) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO level_summaries (symbol, timeframe, current_price, source, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for i := range summaries {
		s := &summaries[i]
		if _, err := stmt.Exec(s.Symbol, s.Timeframe, s.CurrentPrice, string(s.Source), string(s.JSON()), now); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// Recent returns the most recent n summaries for a symbol+timeframe,
// newest first.
func (r *Recorder) Recent(ctx context.Context, symbol, timeframe string, n int) ([]model.LevelSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT summary FROM level_summaries
		WHERE symbol = ? AND timeframe = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, symbol, timeframe, n)
	if err != nil {
		return nil, fmt.Errorf("sqlite query: %w", err)
	}
	defer rows.Close()

	var out []model.LevelSummary
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var sum model.LevelSummary
		if err := json.Unmarshal([]byte(raw), &sum); err != nil {
			return nil, fmt.Errorf("sqlite decode summary: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Close flushes WAL state and closes the database.
func (r *Recorder) Close() error { return r.db.Close() }
