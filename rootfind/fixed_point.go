package rootfind

import "math"

// FixedPoint iterates x ← g(x) from x0 looking for x* = g(x*).
//
// Each pass computes x1 = g(x0), metric |x1 − x0|, appends (x1, metric) and
// stops when metric < Tolerance. There is no divergence detection: for a
// poorly chosen g the iteration cap is the only safeguard, and the run ends
// in MaxIterationsReached with the last (possibly huge or infinite) estimate.
// After an overflow the metric is recorded as +Inf.
//
// Complexity: O(MaxIterations) evaluations of g.
func FixedPoint(g Func, x0 float64, opts ...Option) (Result, error) {
	r := newRun(MethodFixedPoint, gatherOptions(opts))
	if err := r.start(g, x0); err != nil {
		return r.invalid(err)
	}
	r.seed(x0)

	var (
		i          int
		x1, metric float64
		err        error
	)
	for i = 1; i <= r.opts.MaxIterations; i++ {
		if x1, err = eval(g, x0); err != nil {
			return r.failed(err, i-1)
		}
		metric = math.Abs(x1 - x0)
		if math.IsNaN(metric) {
			// Inf − Inf once the iteration has overflowed.
			metric = math.Inf(1)
		}
		r.step(x1, metric)

		if metric < r.opts.Tolerance {
			return r.converged(x1, i)
		}
		x0 = x1
	}

	return r.exhausted(x0)
}

// start validates the function, the policy and the initial guesses of the
// open (non-bracketing) methods.
func (r *run) start(f Func, guesses ...float64) error {
	if f == nil {
		return ErrNilFunction
	}
	if err := validateOptions(r.opts); err != nil {
		return err
	}
	for _, x := range guesses {
		if !finite(x) {
			return ErrNonFiniteInput
		}
	}

	return nil
}
