package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strconv"
	"time"

	"campusevents/internal/adapters/http/perf"
)

// SQLDB is the database handle the stores are built on.
// Both *sql.DB and *TimedDB satisfy it.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

var _ SQLDB = (*sql.DB)(nil)
var _ SQLDB = (*TimedDB)(nil)

// DefaultSlowQueryMs is the threshold above which queries log at WARN.
const DefaultSlowQueryMs = 50

func slowQueryThreshold() time.Duration {
	ms := DefaultSlowQueryMs
	if v := os.Getenv("CAMPUS_SLOW_QUERY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ms = n
		}
	}
	return time.Duration(ms) * time.Millisecond
}

// TimedDB wraps a *sql.DB so every store call is timed: slow queries
// are logged and, when a collector is given, all calls feed the admin
// performance report.
type TimedDB struct {
	db        *sql.DB
	collector *perf.Collector
	threshold time.Duration
}

// NewTimedDB wraps db with timing instrumentation. The slow-query
// threshold comes from CAMPUS_SLOW_QUERY_MS, read once here.
func NewTimedDB(db *sql.DB, collector *perf.Collector) *TimedDB {
	return &TimedDB{db: db, collector: collector, threshold: slowQueryThreshold()}
}

func (t *TimedDB) observe(ctx context.Context, op string, start time.Time) {
	elapsed := time.Since(start)

	if elapsed >= t.threshold {
		slog.WarnContext(ctx, "slow_query", "op", op,
			"duration_ms", float64(elapsed.Microseconds())/1000.0)
	}

	if t.collector != nil {
		t.collector.Add(perf.Sample{
			Kind:     perf.KindStore,
			Op:       op,
			Duration: elapsed,
			At:       start,
		})
	}
}

func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	defer t.observe(ctx, "db.Exec", start)
	return t.db.ExecContext(ctx, query, args...)
}

func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	defer t.observe(ctx, "db.Query", start)
	return t.db.QueryContext(ctx, query, args...)
}

func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	defer t.observe(ctx, "db.QueryRow", start)
	return t.db.QueryRowContext(ctx, query, args...)
}

func (t *TimedDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	start := time.Now()
	defer t.observe(ctx, "db.Begin", start)
	return t.db.BeginTx(ctx, opts)
}
