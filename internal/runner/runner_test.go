package runner_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvroot/internal/config"
	"github.com/katalvlaran/lvroot/internal/expression"
	"github.com/katalvlaran/lvroot/internal/logger"
	"github.com/katalvlaran/lvroot/internal/report"
	"github.com/katalvlaran/lvroot/internal/runner"
	"github.com/katalvlaran/lvroot/rootfind"
)

// quiet routes the shared logger into a buffer for the duration of the test.
func quiet(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger.Logger
	logger.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { logger.SetLogger(prev) })

	return &buf
}

func TestPrepare(t *testing.T) {
	cfg := config.DefaultConfig()
	job := config.Job{Method: "newton", F: "x**2 - 2", DF: "2*x", X0: config.Float(1)}.Resolved(cfg)

	task, err := runner.Prepare(job)
	require.NoError(t, err)
	assert.Equal(t, rootfind.MethodNewton, task.Problem.Method)
	assert.Equal(t, 1.0, task.Problem.X0)
	require.NotNil(t, task.Problem.DF)

	e := task.Execute()
	assert.Equal(t, "converged", e.Outcome)
	assert.InDelta(t, math.Sqrt2, float64(e.Root), 1e-9)
	assert.InDelta(t, 0, float64(e.Residual), 1e-9)
	assert.Positive(t, int64(e.Duration))
}

func TestPrepare_FixedPointResidual(t *testing.T) {
	job := config.DefaultConfig().Jobs[2]
	require.Equal(t, "fixed-point", job.Method)

	task, err := runner.Prepare(job.Resolved(config.DefaultConfig()))
	require.NoError(t, err)
	assert.Nil(t, task.Problem.F)

	e := task.Execute()
	assert.True(t, e.HasRoot)
	assert.InDelta(t, 1.5213797, float64(e.Root), 1e-6)
	assert.InDelta(t, 0, float64(e.Residual), 1e-5)
}

func TestPrepare_Errors(t *testing.T) {
	_, err := runner.Prepare(config.Job{Method: "brent", F: "x"})
	assert.ErrorIs(t, err, rootfind.ErrUnsupportedMethod)

	_, err = runner.Prepare(config.Job{Method: "secant", F: "x +"})
	assert.ErrorIs(t, err, expression.ErrInvalidExpression)
	assert.True(t, strings.HasPrefix(err.Error(), "f: "))

	_, err = runner.Prepare(config.Job{Method: "newton", F: "x", DF: "unknown(x)"})
	assert.ErrorIs(t, err, expression.ErrInvalidExpression)
}

type memorySink struct {
	mu      sync.Mutex
	entries []report.Entry
	closed  bool
}

func (m *memorySink) Write(e report.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)

	return nil
}

func (m *memorySink) Close() error {
	m.closed = true
	return nil
}

func TestRun_DefaultJobs(t *testing.T) {
	logs := quiet(t)
	cfg := config.DefaultConfig()
	cfg.Workers = 3
	cfg.Jobs = append(cfg.Jobs,
		config.Job{Name: "broken", Method: "newton", F: "exp(x"},
		config.Job{Name: "no-bracket", Method: "bisection", F: "x*x + 1", A: config.Float(-1), B: config.Float(1)},
	)

	sink := &memorySink{}
	entries, err := runner.Run(context.Background(), cfg, sink)
	require.NoError(t, err)
	require.Len(t, entries, 7)
	assert.Len(t, sink.entries, 7)

	for i, m := range rootfind.Methods() {
		e := entries[i]
		assert.Equal(t, m.String(), e.Job, "job order is preserved")
		assert.Equal(t, "converged", e.Outcome, e.Job)
		assert.InDelta(t, 0, float64(e.Residual), 1e-4, e.Job)
	}
	assert.InDelta(t, 0.6052671, float64(entries[0].Root), 1e-5)

	assert.Equal(t, "invalid-input", entries[5].Outcome)
	assert.Contains(t, entries[5].Error, "invalid expression")
	assert.Equal(t, "invalid-input", entries[6].Outcome)
	assert.Equal(t, "no sign change", entries[6].Reason)

	assert.Contains(t, logs.String(), "Job rejected")
	assert.Contains(t, logs.String(), "Job failed")
}

func TestRun_CancelledContext(t *testing.T) {
	quiet(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.DefaultConfig()
	cfg.Workers = 1
	entries, err := runner.Run(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, len(entries), len(cfg.Jobs))
}

func TestBatch_WritesFiles(t *testing.T) {
	quiet(t)
	cfg := config.DefaultConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")

	entries, err := runner.Batch(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	csvData, err := os.ReadFile(filepath.Join(cfg.OutputDir, runner.CSVFile))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(csvData)), "\n"), 6)

	jsonData, err := os.ReadFile(filepath.Join(cfg.OutputDir, runner.JSONLFile))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(jsonData)), "\n"), 5)
}

func TestBatch_SQLite(t *testing.T) {
	quiet(t)
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.Formats = []string{config.FormatSQLite}

	_, err := runner.Batch(context.Background(), cfg)
	require.NoError(t, err)

	db, err := report.OpenSQLite(filepath.Join(cfg.OutputDir, runner.SQLiteFile))
	require.NoError(t, err)
	defer db.Close()
	stored, err := db.Entries(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, stored, 5)
	for _, e := range stored {
		assert.Equal(t, "converged", e.Outcome, e.Job)
		assert.NotEmpty(t, e.Trace, e.Job)
	}
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, runner.CSVFile))
}
