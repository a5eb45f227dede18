package rootfind

import "math"

// Newton runs Newton–Raphson from x0.
//
// df is the derivative of f; when nil it is approximated with
// ForwardDifference(f, Options.DerivativeStep).
//
// Algorithm:
//  1. Seed the trace with x0 (metric undefined).
//  2. Each pass: d = f'(x0); |d| < SingularityThreshold ⇒ Diverged
//     (ErrNearZeroDerivative), no root. x1 = x0 − f(x0)/d,
//     metric |x1 − x0|, append (x1, metric).
//  3. Converged when metric < Tolerance, else x0 = x1.
//
// Complexity: O(MaxIterations) passes, each one f and one f' evaluation.
func Newton(f, df Func, x0 float64, opts ...Option) (Result, error) {
	r := newRun(MethodNewton, gatherOptions(opts))
	if err := r.start(f, x0); err != nil {
		return r.invalid(err)
	}
	if df == nil {
		df = ForwardDifference(f, r.opts.DerivativeStep)
	}
	r.seed(x0)

	var (
		i                 int
		d, fx, x1, metric float64
		err               error
	)
	for i = 1; i <= r.opts.MaxIterations; i++ {
		if d, err = eval(df, x0); err != nil {
			return r.failed(err, i-1)
		}
		if math.Abs(d) < r.opts.SingularityThreshold {
			return r.diverged(ErrNearZeroDerivative, i-1)
		}
		if fx, err = eval(f, x0); err != nil {
			return r.failed(err, i-1)
		}

		x1 = x0 - fx/d
		metric = math.Abs(x1 - x0)
		r.step(x1, metric)

		if metric < r.opts.Tolerance {
			return r.converged(x1, i)
		}
		x0 = x1
	}

	return r.exhausted(x0)
}
