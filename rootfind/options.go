package rootfind

import "math"

// Convergence policy defaults (single source of truth).
const (
	// DefaultTolerance is the convergence threshold: a run converges when its
	// error metric drops strictly below it.
	DefaultTolerance = 1e-6

	// DefaultMaxIterations is the hard upper bound on loop passes per run.
	DefaultMaxIterations = 100

	// DefaultSingularityThreshold is the magnitude below which a denominator
	// or derivative is treated as zero.
	DefaultSingularityThreshold = 1e-12

	// DefaultDerivativeStep is the forward-difference step h used when Newton
	// is not given an explicit derivative.
	DefaultDerivativeStep = 1e-6
)

// Options is the convergence policy of a single run.
//
//   - Tolerance            — metric < Tolerance ⇒ converged. Finite, > 0.
//   - MaxIterations        — hard cap on loop passes. > 0.
//   - SingularityThreshold — |denominator| or |f'(x)| below it ⇒ Diverged. Finite, > 0.
//   - DerivativeStep       — h for ForwardDifference (Newton without df). Finite, > 0.
//
// Options are supplied per run; nothing here is global state.
type Options struct {
	Tolerance            float64
	MaxIterations        int
	SingularityThreshold float64
	DerivativeStep       float64
}

// Option is a functional setter applied on top of DefaultOptions.
// Setters never panic; invalid values are rejected by the engines with an
// InvalidInput result.
type Option func(*Options)

// WithTolerance sets the convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(o *Options) { o.Tolerance = tol }
}

// WithMaxIterations sets the iteration cap.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// WithSingularityThreshold overrides the near-zero threshold (default 1e-12).
func WithSingularityThreshold(eps float64) Option {
	return func(o *Options) { o.SingularityThreshold = eps }
}

// WithDerivativeStep overrides the forward-difference step (default 1e-6).
func WithDerivativeStep(h float64) Option {
	return func(o *Options) { o.DerivativeStep = h }
}

// WithOptions replaces the whole policy at once, e.g. with a value loaded
// from configuration.
func WithOptions(src Options) Option {
	return func(o *Options) { *o = src }
}

// DefaultOptions returns the default convergence policy.
//
// Defaults:
//   - Tolerance:            1e-6
//   - MaxIterations:        100
//   - SingularityThreshold: 1e-12
//   - DerivativeStep:       1e-6
func DefaultOptions() Options {
	return Options{
		Tolerance:            DefaultTolerance,
		MaxIterations:        DefaultMaxIterations,
		SingularityThreshold: DefaultSingularityThreshold,
		DerivativeStep:       DefaultDerivativeStep,
	}
}

// gatherOptions resolves opts on top of the defaults.
func gatherOptions(opts []Option) Options {
	cfg := DefaultOptions()
	var opt Option
	for _, opt = range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// validateOptions checks the policy before any evaluation happens.
//
// Complexity: O(1).
func validateOptions(o Options) error {
	if !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 0) {
		return ErrBadTolerance
	}
	if o.MaxIterations <= 0 {
		return ErrBadMaxIterations
	}
	if !(o.SingularityThreshold > 0) || math.IsInf(o.SingularityThreshold, 0) {
		return ErrBadThreshold
	}
	if !(o.DerivativeStep > 0) || math.IsInf(o.DerivativeStep, 0) {
		return ErrBadStep
	}

	return nil
}
