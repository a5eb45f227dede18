package rootfind

import (
	"errors"
	"math"
)

// Bisection finds a root of f inside the sign-change bracket [a, b].
//
// Algorithm:
//  1. Require f(a) and f(b) of strictly opposite signs, else InvalidInput
//     (ErrNoSignChange) with an empty trace.
//  2. Seed the trace with a (metric undefined) and b (metric |b−a|).
//  3. Each pass: c = (a+b)/2, metric = |b−a| (width of the bracket being
//     halved), append (c, metric). Converged when metric < Tolerance or
//     f(c) == 0. Otherwise keep the half with the sign change:
//     f(a), f(c) opposite ⇒ b = c, else a = c.
//  4. After MaxIterations passes: MaxIterationsReached with the last midpoint.
//
// Complexity: O(MaxIterations) evaluations of f (one per pass, two up front).
func Bisection(f Func, a, b float64, opts ...Option) (Result, error) {
	r := newRun(MethodBisection, gatherOptions(opts))

	fa, _, err := r.bracket(f, a, b)
	if err != nil {
		return r.preconditionFailed(err)
	}
	r.seed(a)
	r.step(b, math.Abs(b-a))

	var (
		i      int
		c, fc  float64
		metric float64
	)
	for i = 1; i <= r.opts.MaxIterations; i++ {
		c = (a + b) / 2
		metric = math.Abs(b - a)
		r.step(c, metric)

		if metric < r.opts.Tolerance {
			return r.converged(c, i)
		}
		if fc, err = eval(f, c); err != nil {
			return r.failed(err, i)
		}
		if fc == 0 {
			return r.converged(c, i)
		}

		if oppositeSigns(fa, fc) {
			b = c
		} else {
			a, fa = c, fc
		}
	}

	return r.exhausted(c)
}

// bracket validates f, the policy and the bracket shared by Bisection and
// RegulaFalsi, returning f(a) and f(b).
func (r *run) bracket(f Func, a, b float64) (fa, fb float64, err error) {
	if f == nil {
		return 0, 0, ErrNilFunction
	}
	if err = validateOptions(r.opts); err != nil {
		return 0, 0, err
	}
	if !finite(a) || !finite(b) {
		return 0, 0, ErrNonFiniteInput
	}
	if fa, err = eval(f, a); err != nil {
		return 0, 0, err
	}
	if fb, err = eval(f, b); err != nil {
		return 0, 0, err
	}
	if !oppositeSigns(fa, fb) {
		return 0, 0, ErrNoSignChange
	}

	return fa, fb, nil
}

// preconditionFailed maps a pre-loop error to its terminal status:
// evaluation errors keep EvaluationFailed, everything else is InvalidInput.
func (r *run) preconditionFailed(err error) (Result, error) {
	var ee *EvaluationError
	if errors.As(err, &ee) {
		return r.failed(err, 0)
	}

	return r.invalid(err)
}
