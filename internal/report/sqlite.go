package report

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	job         TEXT NOT NULL,
	method      TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	status      TEXT NOT NULL,
	reason      TEXT NOT NULL,
	iterations  INTEGER NOT NULL,
	has_root    INTEGER NOT NULL,
	root        REAL,
	residual    REAL,
	error       TEXT NOT NULL,
	timestamp   INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trace (
	run_id   TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	idx      INTEGER NOT NULL,
	estimate REAL,
	metric   REAL,
	PRIMARY KEY (run_id, idx)
);

CREATE INDEX IF NOT EXISTS idx_runs_job ON runs(job);
CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
`

// SQLiteWriter stores entries in a SQLite database: one row per run in
// runs, one row per record in trace. Reopening an existing file appends.
type SQLiteWriter struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteWriter{db: db}, nil
}

// Write stores e and its trace in one transaction.
func (sw *SQLiteWriter) Write(e Entry) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	tx, err := sw.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(run_id, job, method, outcome, status, reason, iterations, has_root, root, residual, error, timestamp, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID.String(), e.Job, e.Method, e.Outcome, e.Status, e.Reason, e.Iterations,
		e.HasRoot, nullable(e.Root), nullable(e.Residual), e.Error, e.Timestamp.UnixNano(), int64(e.Duration),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO trace (run_id, idx, estimate, metric) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, p := range e.Trace {
		var metric sql.NullFloat64
		if p.Metric != nil {
			metric = nullable(*p.Metric)
		}
		if _, err := stmt.Exec(e.RunID.String(), p.Index, nullable(p.Estimate), metric); err != nil {
			return fmt.Errorf("failed to insert trace record %d: %w", p.Index, err)
		}
	}

	return tx.Commit()
}

// Entries reads back every stored run, oldest first, traces included.
// An empty job returns all jobs.
func (sw *SQLiteWriter) Entries(ctx context.Context, job string) ([]Entry, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	rows, err := sw.db.QueryContext(ctx, `SELECT run_id, job, method, outcome, status, reason, iterations,
		has_root, root, residual, error, timestamp, duration_ns
		FROM runs WHERE ? = '' OR job = ? ORDER BY timestamp, rowid`, job, job)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e              Entry
			id             string
			root, residual sql.NullFloat64
			stamp, dur     int64
		)
		if err := rows.Scan(&id, &e.Job, &e.Method, &e.Outcome, &e.Status, &e.Reason, &e.Iterations,
			&e.HasRoot, &root, &residual, &e.Error, &stamp, &dur); err != nil {
			return nil, err
		}
		if e.RunID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("corrupt run id %q: %w", id, err)
		}
		e.Root, e.Residual = fromNullable(root), fromNullable(residual)
		e.Timestamp = time.Unix(0, stamp).UTC()
		e.Duration = time.Duration(dur)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].Trace, err = sw.trace(ctx, entries[i].RunID); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

func (sw *SQLiteWriter) trace(ctx context.Context, id uuid.UUID) ([]Point, error) {
	rows, err := sw.db.QueryContext(ctx,
		`SELECT idx, estimate, metric FROM trace WHERE run_id = ? ORDER BY idx`, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query trace: %w", err)
	}
	defer rows.Close()

	points := []Point{}
	for rows.Next() {
		var (
			p                Point
			estimate, metric sql.NullFloat64
		)
		if err := rows.Scan(&p.Index, &estimate, &metric); err != nil {
			return nil, err
		}
		p.Estimate = fromNullable(estimate)
		if metric.Valid {
			m := Number(metric.Float64)
			p.Metric = &m
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

// Close closes the database.
func (sw *SQLiteWriter) Close() error {
	return sw.db.Close()
}

// nullable maps NaN to SQL NULL.
func nullable(n Number) sql.NullFloat64 {
	v := float64(n)
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}

	return sql.NullFloat64{Float64: v, Valid: true}
}

func fromNullable(v sql.NullFloat64) Number {
	if !v.Valid {
		return Number(math.NaN())
	}

	return Number(v.Float64)
}
