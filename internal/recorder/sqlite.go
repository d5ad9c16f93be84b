package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/phuslu/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder writes the journal to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

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
		`CREATE TABLE IF NOT EXISTS interactions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			request_id  TEXT,
			channel     TEXT,
			rule        TEXT,
			duration_ms REAL,
			chart       INTEGER,
			failed      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_ts ON interactions(timestamp)`,

		`CREATE TABLE IF NOT EXISTS analyses (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			kind           TEXT,
			symbol         TEXT,
			exchange       TEXT,
			price          REAL,
			period_change  REAL,
			trend          TEXT,
			recommendation TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ts ON analyses(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_symbol ON analyses(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func unix(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now()
	}
	return t.Unix()
}

func (r *SQLiteRecorder) RecordInteraction(evt *Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO interactions
		(timestamp, request_id, channel, rule, duration_ms, chart, failed)
		VALUES (?,?,?,?,?,?,?)`,
		unix(evt.At), evt.RequestID, string(evt.Channel), evt.Rule,
		float64(evt.Duration.Microseconds())/1000, evt.Chart, evt.Failed,
	)
	return err
}

func (r *SQLiteRecorder) RecordAnalysis(evt *AnalysisEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO analyses
		(timestamp, kind, symbol, exchange, price, period_change, trend, recommendation)
		VALUES (?,?,?,?,?,?,?,?)`,
		unix(evt.At), string(evt.Kind), evt.Symbol, evt.Exchange,
		evt.Price, evt.PeriodChange, string(evt.Trend), evt.Recommendation,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
