// Package runner executes configured root-finding jobs, concurrently when
// asked to, and streams every finished run to report sinks.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/katalvlaran/lvroot/internal/config"
	"github.com/katalvlaran/lvroot/internal/expression"
	"github.com/katalvlaran/lvroot/internal/logger"
	"github.com/katalvlaran/lvroot/internal/report"
	"github.com/katalvlaran/lvroot/rootfind"
)

// Output file names written by Batch.
const (
	CSVFile    = "results.csv"
	JSONLFile  = "results.jsonl"
	SQLiteFile = "results.db"
)

// Task is a job compiled into a rootfind problem.
type Task struct {
	Job     config.Job
	Problem rootfind.Problem
	Options []rootfind.Option

	// Residual is evaluated at the returned root: f when the job has one,
	// otherwise g(x) - x.
	Residual rootfind.Func
}

// Prepare compiles the expressions of a resolved job.
func Prepare(job config.Job) (Task, error) {
	m, err := rootfind.ParseMethod(job.Method)
	if err != nil {
		return Task{}, err
	}
	s := job.Seeds()
	t := Task{
		Job:     job,
		Problem: rootfind.Problem{Method: m, A: s.A, B: s.B, X0: s.X0, X1: s.X1},
		Options: []rootfind.Option{
			rootfind.WithTolerance(job.Tolerance),
			rootfind.WithMaxIterations(job.MaxIterations),
		},
	}

	if job.F != "" {
		f, err := expression.Compile(job.F)
		if err != nil {
			return Task{}, fmt.Errorf("f: %w", err)
		}
		t.Problem.F, t.Residual = f, f
	}
	if job.G != "" {
		g, err := expression.Compile(job.G)
		if err != nil {
			return Task{}, fmt.Errorf("g: %w", err)
		}
		t.Problem.G = g
		if t.Residual == nil {
			t.Residual = rootfind.FuncOf(func(x float64) (float64, error) {
				gx, err := g.Eval(x)
				return gx - x, err
			})
		}
	}
	if job.DF != "" {
		df, err := expression.Compile(job.DF)
		if err != nil {
			return Task{}, fmt.Errorf("df: %w", err)
		}
		t.Problem.DF = df
	}

	return t, nil
}

// Execute solves t and records the outcome.
func (t Task) Execute() report.Entry {
	start := time.Now()
	res, err := rootfind.Solve(t.Problem, t.Options...)
	e := report.NewEntry(t.Job.Name, res, err)
	e.Duration = time.Since(start)
	if res.HasRoot && t.Residual != nil {
		if r, rerr := t.Residual.Eval(res.Root); rerr == nil {
			e.Residual = report.Number(r)
		}
	}

	return e
}

// rejected records a job that could not be compiled.
func rejected(job config.Job, err error) report.Entry {
	m, _ := rootfind.ParseMethod(job.Method)
	res := rootfind.Result{
		Method: m,
		Status: rootfind.Status{Outcome: rootfind.InvalidInput, Reason: err.Error()},
	}

	return report.NewEntry(job.Name, res, err)
}

// runJob prepares and executes one resolved job and logs the result.
func runJob(job config.Job) report.Entry {
	log := logger.Logger.With("job", job.Name, "method", job.Method)

	task, err := Prepare(job)
	if err != nil {
		log.Error("Job rejected", "error", err)
		return rejected(job, err)
	}

	log.Debug("Solving")
	e := task.Execute()
	switch {
	case e.HasRoot:
		log.Info("Job finished",
			"outcome", e.Outcome,
			"root", float64(e.Root),
			"iterations", e.Iterations,
			"duration", e.Duration,
		)
	default:
		log.Warn("Job failed", "outcome", e.Outcome, "reason", e.Reason)
	}

	return e
}

// Run solves every job of cfg on a pool of cfg.Workers goroutines (NumCPU
// when zero) and writes each entry to all sinks as it finishes. A failing
// job or sink never stops the batch. Cancelling ctx stops scheduling; the
// entries finished so far are returned in job order together with ctx.Err().
func Run(ctx context.Context, cfg *config.Config, sinks ...report.Sink) ([]report.Entry, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(cfg.Jobs) {
		workers = len(cfg.Jobs)
	}

	var (
		entries = make([]report.Entry, len(cfg.Jobs))
		done    = make([]bool, len(cfg.Jobs))
		queue   = make(chan int)
		wg      sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				e := runJob(cfg.Jobs[i].Resolved(cfg))
				for _, s := range sinks {
					if err := s.Write(e); err != nil {
						logger.Logger.Error("Failed to write result", "job", e.Job, "error", err)
					}
				}
				entries[i], done[i] = e, true
			}
		}()
	}

schedule:
	for i := range cfg.Jobs {
		select {
		case <-ctx.Done():
			break schedule
		case queue <- i:
		}
	}
	close(queue)
	wg.Wait()

	out := make([]report.Entry, 0, len(entries))
	for i, e := range entries {
		if done[i] {
			out = append(out, e)
		}
	}

	return out, ctx.Err()
}

// Batch runs cfg and writes the configured formats into cfg.OutputDir.
func Batch(ctx context.Context, cfg *config.Config) ([]report.Entry, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	var sinks []report.Sink
	defer func() {
		for _, s := range sinks {
			if err := s.Close(); err != nil {
				logger.Logger.Error("Failed to close output", "error", err)
			}
		}
	}()
	for _, format := range cfg.Formats {
		var (
			s    report.Sink
			err  error
			path string
		)
		switch format {
		case config.FormatCSV:
			path = filepath.Join(cfg.OutputDir, CSVFile)
			s, err = report.CreateCSV(path)
		case config.FormatJSONL:
			path = filepath.Join(cfg.OutputDir, JSONLFile)
			s, err = report.CreateJSON(path)
		case config.FormatSQLite:
			path = filepath.Join(cfg.OutputDir, SQLiteFile)
			s, err = report.OpenSQLite(path)
		default:
			err = errors.New("unknown format " + format)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to init %s output %s: %w", format, path, err)
		}
		sinks = append(sinks, s)
		logger.Logger.Info("Writing results", "format", format, "path", path)
	}

	return Run(ctx, cfg, sinks...)
}
