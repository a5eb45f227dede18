package rootfind

import (
	"errors"
	"math"
)

// Func is a real function of one real variable.
//
// Eval may fail (domain error, undefined name, …); a non-nil error aborts the
// current run with Outcome EvaluationFailed. Implementations are expected to
// be pure: repeated calls with the same x return the same value within a run.
// Implementations used by concurrent runs must be safe for concurrent use.
type Func interface {
	Eval(x float64) (float64, error)
}

// FuncOf adapts an ordinary fallible function to Func.
type FuncOf func(x float64) (float64, error)

// Eval implements Func.
func (f FuncOf) Eval(x float64) (float64, error) { return f(x) }

// Plain adapts an infallible function (e.g. math.Cos) to Func.
// A nil fn yields a nil Func so engines report ErrNilFunction.
func Plain(fn func(float64) float64) Func {
	if fn == nil {
		return nil
	}

	return FuncOf(func(x float64) (float64, error) { return fn(x), nil })
}

// ForwardDifference returns the numerical derivative of f:
//
//	f'(x) ≈ (f(x+h) − f(x)) / h
//
// Failures of either evaluation surface as *EvaluationError.
// h ≤ 0 (or non-finite) falls back to DefaultDerivativeStep.
func ForwardDifference(f Func, h float64) Func {
	if f == nil {
		return nil
	}
	if !(h > 0) || math.IsInf(h, 0) {
		h = DefaultDerivativeStep
	}

	return FuncOf(func(x float64) (float64, error) {
		fxh, err := eval(f, x+h)
		if err != nil {
			return 0, err
		}
		fx, err := eval(f, x)
		if err != nil {
			return 0, err
		}

		return (fxh - fx) / h, nil
	})
}

// eval calls f at x and normalizes failures into *EvaluationError.
// NaN is never passed back silently; ±Inf is a legal value.
func eval(f Func, x float64) (float64, error) {
	y, err := f.Eval(x)
	if err != nil {
		var ee *EvaluationError
		if errors.As(err, &ee) {
			return 0, ee
		}

		return 0, &EvaluationError{Point: x, Err: err}
	}
	if math.IsNaN(y) {
		return 0, &EvaluationError{Point: x, Err: ErrNotANumber}
	}

	return y, nil
}

// oppositeSigns reports whether u and v have strictly opposite signs.
// Zero has no sign.
func oppositeSigns(u, v float64) bool {
	return (u < 0 && v > 0) || (u > 0 && v < 0)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
