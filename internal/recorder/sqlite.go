package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"CarrySentinel/internal/model"
	"CarrySentinel/internal/strategy"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while the bot writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id             TEXT PRIMARY KEY,
			timestamp      INTEGER NOT NULL,
			regime         TEXT NOT NULL,
			vix            REAL,
			broad_current  REAL,
			broad_ma       REAL,
			broad_above_ma INTEGER,
			currencies     INTEGER,
			watchlist_size INTEGER,
			signal_count   INTEGER,
			high_count     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON analysis_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS watchlist_entries (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT NOT NULL REFERENCES analysis_runs(id),
			category   TEXT NOT NULL,
			pair       TEXT NOT NULL,
			diff       REAL,
			trend      TEXT,
			direction  TEXT,
			rule       TEXT,
			confidence TEXT,
			rationale  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_run ON watchlist_entries(run_id)`,

		`CREATE TABLE IF NOT EXISTS signals (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT NOT NULL REFERENCES analysis_runs(id),
			pair       TEXT NOT NULL,
			direction  TEXT,
			category   TEXT,
			diff       REAL,
			trend      TEXT,
			confidence TEXT,
			entry      TEXT,
			stop       TEXT,
			target     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_run ON signals(run_id)`,

		`CREATE TABLE IF NOT EXISTS rate_tables (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			source    TEXT,
			currency  TEXT NOT NULL,
			rate      REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rates_ts ON rate_tables(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordAnalysis writes the run, its watchlist and its signals in one transaction.
func (r *SQLiteRecorder) RecordAnalysis(a *strategy.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var vix, broadCur, broadMA, aboveMA any
	if a.Snapshot.VIX != nil {
		vix = *a.Snapshot.VIX
	}
	if b := a.Snapshot.Broad; b != nil {
		broadCur, broadMA = b.Current, b.MovingAverage
		aboveMA = 0
		if b.AboveMA {
			aboveMA = 1
		}
	}

	_, err = tx.Exec(`INSERT INTO analysis_runs
		(id, timestamp, regime, vix, broad_current, broad_ma, broad_above_ma,
		 currencies, watchlist_size, signal_count, high_count)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		a.ID, a.CreatedAt.Unix(), string(a.Regime), vix, broadCur, broadMA, aboveMA,
		len(a.Rates), a.Watchlist.Len(), len(a.Signals),
		strategy.CountConfidence(a.Signals, model.ConfidenceHigh),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, c := range a.Watchlist.Categories() {
		for _, e := range a.Watchlist.Entries(c) {
			_, err := tx.Exec(`INSERT INTO watchlist_entries
				(run_id, category, pair, diff, trend, direction, rule, confidence, rationale)
				VALUES (?,?,?,?,?,?,?,?,?)`,
				a.ID, string(c), e.Pair.String(), e.Diff, string(e.Trend),
				string(e.Direction), string(e.Rule), e.Confidence.String(), e.Rationale,
			)
			if err != nil {
				return fmt.Errorf("insert watchlist entry: %w", err)
			}
		}
	}

	for _, s := range a.Signals {
		_, err := tx.Exec(`INSERT INTO signals
			(run_id, pair, direction, category, diff, trend, confidence, entry, stop, target)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			a.ID, s.Pair.String(), string(s.Direction), string(s.Category), s.Diff,
			string(s.Trend), s.Confidence.String(), s.Entry, s.Stop, s.Target,
		)
		if err != nil {
			return fmt.Errorf("insert signal: %w", err)
		}
	}

	return tx.Commit()
}

// RecordRates stores a submitted rate table.
func (r *SQLiteRecorder) RecordRates(rates model.RateMap, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, c := range rates.Sorted() {
		if _, err := tx.Exec(`INSERT INTO rate_tables (timestamp, source, currency, rate) VALUES (?,?,?,?)`,
			now, source, string(c), rates[c]); err != nil {
			return fmt.Errorf("insert rate: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
