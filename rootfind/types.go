package rootfind

import (
	"fmt"
	"strings"
)

// Method selects one of the five iterative root-finding engines.
type Method int

const (
	// MethodBisection halves a sign-change bracket [a, b] each pass.
	MethodBisection Method = iota

	// MethodRegulaFalsi (false position) intersects the secant of the bracket
	// with the x-axis and keeps the sub-bracket with the sign change.
	MethodRegulaFalsi

	// MethodFixedPoint iterates x ← g(x) from x0.
	MethodFixedPoint

	// MethodNewton is Newton–Raphson: x ← x − f(x)/f'(x).
	MethodNewton

	// MethodSecant replaces f' in Newton with the slope through the last two estimates.
	MethodSecant
)

var methodNames = [...]string{
	MethodBisection:   "bisection",
	MethodRegulaFalsi: "regula-falsi",
	MethodFixedPoint:  "fixed-point",
	MethodNewton:      "newton-raphson",
	MethodSecant:      "secant",
}

// methodAliases maps normalized user spellings to methods.
var methodAliases = map[string]Method{
	"bisection":             MethodBisection,
	"bisect":                MethodBisection,
	"regula-falsi":          MethodRegulaFalsi,
	"regulafalsi":           MethodRegulaFalsi,
	"false-position":        MethodRegulaFalsi,
	"fixed-point":           MethodFixedPoint,
	"fixedpoint":            MethodFixedPoint,
	"fixed-point-iteration": MethodFixedPoint,
	"newton":                MethodNewton,
	"newton-raphson":        MethodNewton,
	"secant":                MethodSecant,
}

// String returns the canonical, lower-case name of m.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("method(%d)", int(m))
	}

	return methodNames[m]
}

// SeedCount is the number of trace records a run appends before its first
// loop pass: 2 for Bisection, RegulaFalsi and Secant, 1 for FixedPoint and
// Newton. Every trace satisfies len(trace) ≤ MaxIterations + SeedCount.
func (m Method) SeedCount() int {
	switch m {
	case MethodBisection, MethodRegulaFalsi, MethodSecant:
		return 2
	case MethodFixedPoint, MethodNewton:
		return 1
	default:
		return 0
	}
}

// Methods lists every supported method in a stable order.
func Methods() []Method {
	return []Method{MethodBisection, MethodRegulaFalsi, MethodFixedPoint, MethodNewton, MethodSecant}
}

// ParseMethod resolves a user-facing method name. Matching is
// case-insensitive; spaces and underscores are treated as hyphens, so
// "Newton-Raphson", "newton raphson" and "newton" all resolve to MethodNewton.
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "-", "_", "-").Replace(key)
	if m, ok := methodAliases[key]; ok {
		return m, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
}

// Outcome is the terminal state of a run.
type Outcome int

const (
	// Converged: the error metric fell below the tolerance.
	Converged Outcome = iota

	// MaxIterationsReached: the cap was hit; the last estimate is still
	// returned as a best-effort approximation. Not a hard failure.
	MaxIterationsReached

	// Diverged: a numerical singularity (near-zero denominator or derivative).
	Diverged

	// InvalidInput: a precondition failed before any loop pass.
	InvalidInput

	// EvaluationFailed: the function could not be evaluated at some point.
	EvaluationFailed
)

var outcomeNames = [...]string{
	Converged:            "converged",
	MaxIterationsReached: "max-iterations",
	Diverged:             "diverged",
	InvalidInput:         "invalid-input",
	EvaluationFailed:     "evaluation-failed",
}

// String returns a stable machine-friendly name.
func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("outcome(%d)", int(o))
	}

	return outcomeNames[o]
}

// Status is the structured outcome of a run.
//
// Iterations counts completed loop passes (seed records excluded).
// Reason is empty for Converged and MaxIterationsReached.
type Status struct {
	Outcome    Outcome
	Iterations int
	Reason     string
}

// String renders a human-readable status line.
func (s Status) String() string {
	switch s.Outcome {
	case Converged:
		return fmt.Sprintf("converged after %d iterations", s.Iterations)
	case MaxIterationsReached:
		return fmt.Sprintf("maximum iterations (%d) reached", s.Iterations)
	case Diverged:
		return "diverged: " + s.Reason
	case InvalidInput:
		return "invalid input: " + s.Reason
	case EvaluationFailed:
		return "evaluation failed: " + s.Reason
	default:
		return s.Outcome.String()
	}
}

// Result is the uniform outcome returned by every engine.
//
//   - Root/HasRoot — HasRoot is true iff Outcome is Converged or
//     MaxIterationsReached; Root is meaningless otherwise.
//   - Trace        — every record appended before the run ended,
//     owned by the caller.
type Result struct {
	Method  Method
	Root    float64
	HasRoot bool
	Status  Status
	Trace   Trace
}

// Value returns the root and whether one is present.
func (r Result) Value() (float64, bool) { return r.Root, r.HasRoot }

// Converged reports whether the run met the tolerance.
func (r Result) Converged() bool { return r.Status.Outcome == Converged }

// Problem is a run request for the Solve dispatcher.
//
// Inputs per method:
//
//	MethodBisection, MethodRegulaFalsi: F, A, B
//	MethodFixedPoint:                   G, X0
//	MethodNewton:                       F, X0 (DF optional; forward difference when nil)
//	MethodSecant:                       F, X0, X1
type Problem struct {
	Method Method
	F      Func
	DF     Func
	G      Func
	A, B   float64
	X0, X1 float64
}
