package rootfind

import (
	"math"
	"strings"
)

// Record is one entry of an iteration trace.
//
//   - Index         — position in the trace, strictly increasing from 0.
//   - Estimate      — full-precision estimate produced at this step.
//   - Metric        — the method's error metric (see each engine).
//   - MetricDefined — false for seed records where no error is defined yet.
type Record struct {
	Index         int
	Estimate      float64
	Metric        float64
	MetricDefined bool
}

// Trace is the chronological history of a run. It is never mutated after
// being returned.
type Trace []Record

// Len returns the number of records.
func (t Trace) Len() int { return len(t) }

// Last returns the final record, if any.
func (t Trace) Last() (Record, bool) {
	if len(t) == 0 {
		return Record{}, false
	}

	return t[len(t)-1], true
}

// Estimates returns the estimate column.
func (t Trace) Estimates() []float64 {
	out := make([]float64, len(t))
	for i := range t {
		out[i] = t[i].Estimate
	}

	return out
}

// Metrics returns the error-metric column; undefined metrics are NaN.
func (t Trace) Metrics() []float64 {
	out := make([]float64, len(t))
	for i := range t {
		if t[i].MetricDefined {
			out[i] = t[i].Metric
		} else {
			out[i] = math.NaN()
		}
	}

	return out
}

// maxPrealloc bounds the up-front trace allocation for very large caps.
const maxPrealloc = 1024

// run holds the mutable state of a single engine execution: the resolved
// policy and the tracer. It is never shared between runs.
type run struct {
	method  Method
	opts    Options
	records []Record
}

func newRun(m Method, opts Options) *run {
	capacity := opts.MaxIterations + m.SeedCount()
	if capacity > maxPrealloc || capacity < 0 {
		capacity = maxPrealloc
	}

	return &run{method: m, opts: opts, records: make([]Record, 0, capacity)}
}

// seed appends an initial value with an undefined metric.
func (r *run) seed(x float64) {
	r.records = append(r.records, Record{Index: len(r.records), Estimate: x})
}

// step appends an estimate with a defined metric.
func (r *run) step(x, metric float64) {
	r.records = append(r.records, Record{Index: len(r.records), Estimate: x, Metric: metric, MetricDefined: true})
}

// snapshot hands out an independent copy of the records.
func (r *run) snapshot() Trace {
	out := make(Trace, len(r.records))
	copy(out, r.records)

	return out
}

func (r *run) done(root float64, hasRoot bool, st Status) Result {
	return Result{Method: r.method, Root: root, HasRoot: hasRoot, Status: st, Trace: r.snapshot()}
}

// converged finishes a run whose metric met the tolerance.
func (r *run) converged(root float64, iters int) (Result, error) {
	return r.done(root, true, Status{Outcome: Converged, Iterations: iters}), nil
}

// exhausted finishes a run that hit the iteration cap.
func (r *run) exhausted(last float64) (Result, error) {
	return r.done(last, true, Status{Outcome: MaxIterationsReached, Iterations: r.opts.MaxIterations}), nil
}

// diverged finishes a run that met a numerical singularity.
func (r *run) diverged(cause error, iters int) (Result, error) {
	return r.done(0, false, Status{Outcome: Diverged, Iterations: iters, Reason: reasonOf(cause)}), cause
}

// invalid finishes a run whose preconditions failed.
func (r *run) invalid(cause error) (Result, error) {
	return r.done(0, false, Status{Outcome: InvalidInput, Reason: reasonOf(cause)}), cause
}

// failed finishes a run aborted by an evaluation error.
func (r *run) failed(cause error, iters int) (Result, error) {
	return r.done(0, false, Status{Outcome: EvaluationFailed, Iterations: iters, Reason: reasonOf(cause)}), cause
}

// reasonOf turns a sentinel into a short reason ("no sign change").
func reasonOf(err error) string {
	return strings.TrimPrefix(err.Error(), "rootfind: ")
}
