// Package rootfind: sentinel error set.
//
// Every engine returns these sentinels (or *EvaluationError) together with a
// fully populated Result. Callers match them with errors.Is / errors.As.
// No engine panics on user input.

package rootfind

import (
	"errors"
	"fmt"
)

// ERROR PRIORITY (enforced in tests):
// nil function -> options -> non-finite inputs -> precondition (sign change)
// -> evaluation failures and singularities inside the loop.

var (
	// ErrNilFunction indicates that a required function (f, g) was nil.
	ErrNilFunction = errors.New("rootfind: function is nil")

	// ErrBadTolerance indicates a tolerance that is not finite and > 0.
	ErrBadTolerance = errors.New("rootfind: tolerance must be finite and positive")

	// ErrBadMaxIterations indicates an iteration cap ≤ 0.
	ErrBadMaxIterations = errors.New("rootfind: max iterations must be positive")

	// ErrBadThreshold indicates a singularity threshold that is not finite and > 0.
	ErrBadThreshold = errors.New("rootfind: singularity threshold must be finite and positive")

	// ErrBadStep indicates a derivative step that is not finite and > 0.
	ErrBadStep = errors.New("rootfind: derivative step must be finite and positive")

	// ErrNonFiniteInput indicates a NaN or ±Inf bracket endpoint or initial guess.
	ErrNonFiniteInput = errors.New("rootfind: bracket and initial guesses must be finite")

	// ErrNoSignChange indicates f(a) and f(b) do not have strictly opposite signs.
	ErrNoSignChange = errors.New("rootfind: no sign change")

	// ErrNearZeroDenominator indicates |f(a)-f(b)| (or |f(x1)-f(x0)|) fell
	// below the singularity threshold.
	ErrNearZeroDenominator = errors.New("rootfind: near-zero denominator")

	// ErrNearZeroDerivative indicates |f'(x)| fell below the singularity threshold.
	ErrNearZeroDerivative = errors.New("rootfind: near-zero derivative")

	// ErrUnsupportedMethod indicates an unknown Method value.
	ErrUnsupportedMethod = errors.New("rootfind: unsupported method")

	// ErrEvaluation is matched by every *EvaluationError.
	ErrEvaluation = errors.New("rootfind: function evaluation failed")

	// ErrNotANumber is the cause recorded when a function returned NaN.
	ErrNotANumber = errors.New("rootfind: function returned NaN")

	// ErrNotFinite is the cause recorded when a bracketing method got ±Inf
	// from f; the false-position chord is undefined there.
	ErrNotFinite = errors.New("rootfind: function returned an infinite value")
)

// EvaluationError reports that a function could not be evaluated at Point.
type EvaluationError struct {
	Point float64 // argument passed to the function
	Err   error   // underlying cause
}

// Error implements error.
func (e *EvaluationError) Error() string {
	return fmt.Sprintf("rootfind: evaluation at x=%g failed: %v", e.Point, e.Err)
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *EvaluationError) Unwrap() error { return e.Err }

// Is reports ErrEvaluation equality so errors.Is(err, ErrEvaluation) holds
// regardless of the cause.
func (e *EvaluationError) Is(target error) bool { return target == ErrEvaluation }
