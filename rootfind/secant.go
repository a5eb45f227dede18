package rootfind

import "math"

// Secant runs the secant method from the initial guesses x0 and x1.
//
// Algorithm:
//  1. Seed the trace with x0 (metric undefined) and x1 (metric |x1 − x0|).
//  2. Each pass: den = f(x1) − f(x0); |den| < SingularityThreshold ⇒
//     Diverged (ErrNearZeroDenominator). On the first pass this is the
//     pre-loop check and the trace holds only the seeds.
//     x2 = x1 − f(x1)·(x1 − x0)/den, metric |x2 − x1|, append (x2, metric).
//  3. Converged when metric < Tolerance, else shift (x0, x1) = (x1, x2).
//
// Function values are carried across passes, so each pass evaluates f once.
//
// Complexity: O(MaxIterations) evaluations of f.
func Secant(f Func, x0, x1 float64, opts ...Option) (Result, error) {
	r := newRun(MethodSecant, gatherOptions(opts))
	if err := r.start(f, x0, x1); err != nil {
		return r.invalid(err)
	}
	r.seed(x0)
	r.step(x1, math.Abs(x1-x0))

	f0, err := eval(f, x0)
	if err != nil {
		return r.failed(err, 0)
	}
	f1, err := eval(f, x1)
	if err != nil {
		return r.failed(err, 0)
	}

	var (
		i                   int
		den, x2, f2, metric float64
	)
	for i = 1; i <= r.opts.MaxIterations; i++ {
		den = f1 - f0
		if math.Abs(den) < r.opts.SingularityThreshold {
			return r.diverged(ErrNearZeroDenominator, i-1)
		}

		x2 = x1 - f1*(x1-x0)/den
		metric = math.Abs(x2 - x1)
		r.step(x2, metric)

		if metric < r.opts.Tolerance {
			return r.converged(x2, i)
		}
		if i == r.opts.MaxIterations {
			break
		}
		if f2, err = eval(f, x2); err != nil {
			return r.failed(err, i)
		}
		x0, f0 = x1, f1
		x1, f1 = x2, f2
	}

	return r.exhausted(x2)
}
