// Package rootfind locates a root of a scalar function f: ℝ → ℝ with one of
// five classical iterative methods and records the full iteration trace.
//
// 🚀 Methods:
//
//	Bisection     — halve a sign-change bracket [a, b]; metric = bracket width.
//	RegulaFalsi   — false position on [a, b]; metric = |c − replaced endpoint|.
//	FixedPoint    — x ← g(x);            metric = |x1 − x0|.
//	Newton        — x ← x − f(x)/f'(x);  metric = |x1 − x0|.
//	Secant        — Newton with a two-point slope; metric = |x2 − x1|.
//
// ✨ Shared contract:
//
//   - Every engine returns (Result, error). The Result is always populated:
//     Root/HasRoot, a structured Status and the iteration Trace.
//   - Outcomes: Converged, MaxIterationsReached (warning, root still present),
//     Diverged (near-zero denominator/derivative), InvalidInput (no sign change,
//     nil function, bad policy) and EvaluationFailed (f could not be computed).
//   - error is nil for Converged and MaxIterationsReached, a sentinel for
//     Diverged/InvalidInput and *EvaluationError for EvaluationFailed.
//   - MaxIterations is a hard loop bound: len(Trace) ≤ MaxIterations + SeedCount.
//
// ⚙️ Usage:
//
//	f := rootfind.Plain(func(x float64) float64 { return x*x - 2 })
//	res, err := rootfind.Bisection(f, 0, 2, rootfind.WithTolerance(1e-6))
//	if err != nil {
//	  // errors.Is(err, rootfind.ErrNoSignChange), …
//	}
//	root, _ := res.Value()
//
// Functions are opaque: anything implementing Func (or wrapped with FuncOf /
// Plain) works, including parsed user expressions. A NaN result is turned into
// an *EvaluationError rather than silently propagating.
//
// Concurrency: runs share nothing. Each call owns its Options, its tracer and
// the returned Trace, so different methods may run in parallel on the same
// (pure) function without coordination.
package rootfind
