package rootfind

import "math"

// RegulaFalsi (false position) finds a root of f inside the sign-change
// bracket [a, b].
//
// Algorithm:
//  1. Same precondition and seeds as Bisection. An infinite f(a), f(b) or
//     f(c) ends the run as EvaluationFailed (ErrNotFinite).
//  2. Each pass: den = f(a) − f(b); |den| < SingularityThreshold ⇒ Diverged
//     (ErrNearZeroDenominator) with the partial trace and no root.
//     c = b − f(b)·(a−b)/den.
//  3. Replace the endpoint whose f-value shares sign with f(c); the metric is
//     |c − replaced endpoint|. Append (c, metric).
//  4. Converged when metric < Tolerance or f(c) == 0; after MaxIterations
//     passes MaxIterationsReached with the last c.
//
// Complexity: O(MaxIterations) evaluations of f (one per pass, two up front).
func RegulaFalsi(f Func, a, b float64, opts ...Option) (Result, error) {
	r := newRun(MethodRegulaFalsi, gatherOptions(opts))

	fa, fb, err := r.bracket(f, a, b)
	if err != nil {
		return r.preconditionFailed(err)
	}
	if err = finiteValue(a, fa); err != nil {
		return r.failed(err, 0)
	}
	if err = finiteValue(b, fb); err != nil {
		return r.failed(err, 0)
	}
	r.seed(a)
	r.step(b, math.Abs(b-a))

	var (
		i                  int
		den, c, fc, metric float64
	)
	for i = 1; i <= r.opts.MaxIterations; i++ {
		den = fa - fb
		if math.Abs(den) < r.opts.SingularityThreshold {
			return r.diverged(ErrNearZeroDenominator, i-1)
		}
		c = b - fb*(a-b)/den

		if fc, err = eval(f, c); err != nil {
			return r.failed(err, i-1)
		}
		if err = finiteValue(c, fc); err != nil {
			return r.failed(err, i-1)
		}
		if oppositeSigns(fa, fc) {
			metric = math.Abs(c - b)
			b, fb = c, fc
		} else {
			metric = math.Abs(c - a)
			a, fa = c, fc
		}
		r.step(c, metric)

		if metric < r.opts.Tolerance || fc == 0 {
			return r.converged(c, i)
		}
	}

	return r.exhausted(c)
}

// finiteValue rejects an infinite f(x) as an evaluation failure at x.
func finiteValue(x, fx float64) error {
	if math.IsInf(fx, 0) {
		return &EvaluationError{Point: x, Err: ErrNotFinite}
	}

	return nil
}
