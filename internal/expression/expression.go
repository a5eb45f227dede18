// Package expression compiles user-supplied formula strings such as
// "exp(x) - 5*x**2" into rootfind.Func values.
//
// The grammar is expr-lang/expr with a single variable x, the constants pi
// and e, and the usual elementary functions. A leading "math." on any name
// is accepted, so "math.exp(x)" and "exp(x)" are the same expression.
package expression

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/katalvlaran/lvroot/rootfind"
)

// Variable is the name of the free variable in every expression.
const Variable = "x"

var (
	// ErrEmptyExpression is returned by Compile for blank input.
	ErrEmptyExpression = errors.New("expression: empty expression")

	// ErrInvalidExpression wraps parse and type-check failures.
	ErrInvalidExpression = errors.New("expression: invalid expression")

	// ErrEvaluation wraps failures raised while evaluating a compiled expression.
	ErrEvaluation = errors.New("expression: evaluation failed")
)

// unary lists the one-argument functions available to expressions.
var unary = map[string]func(float64) float64{
	"exp":   math.Exp,
	"log":   math.Log,
	"ln":    math.Log,
	"log10": math.Log10,
	"log2":  math.Log2,
	"sqrt":  math.Sqrt,
	"cbrt":  math.Cbrt,
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
}

// binary lists the two-argument functions available to expressions.
var binary = map[string]func(float64, float64) float64{
	"pow":   math.Pow,
	"hypot": math.Hypot,
	"atan2": math.Atan2,
}

// Function is a compiled expression in x. It implements rootfind.Func and is
// safe for concurrent use.
type Function struct {
	src     string
	program *vm.Program
}

// Compile parses and type-checks src.
func Compile(src string) (*Function, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return nil, ErrEmptyExpression
	}

	program, err := expr.Compile(normalize(trimmed), compileOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidExpression, trimmed, err)
	}

	return &Function{src: trimmed, program: program}, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level defaults.
func MustCompile(src string) *Function {
	f, err := Compile(src)
	if err != nil {
		panic(err)
	}

	return f
}

// Eval evaluates the expression at x.
func (f *Function) Eval(x float64) (float64, error) {
	out, err := expr.Run(f.program, env(x))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}
	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: non-numeric result %T", ErrEvaluation, out)
	}
	if math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %s is NaN at x=%g", ErrEvaluation, f.src, x)
	}

	return v, nil
}

// Derivative returns the forward-difference derivative of f.
func (f *Function) Derivative() rootfind.Func {
	return rootfind.ForwardDifference(f, rootfind.DefaultDerivativeStep)
}

// String returns the trimmed source text.
func (f *Function) String() string { return f.src }

// normalize rewrites the "math." qualifier away.
func normalize(src string) string {
	return strings.ReplaceAll(src, "math.", "")
}

// env builds a fresh evaluation environment; programs never share one.
func env(x float64) map[string]any {
	return map[string]any{
		Variable: x,
		"pi":     math.Pi,
		"e":      math.E,
	}
}

func compileOptions() []expr.Option {
	opts := []expr.Option{expr.Env(env(0)), expr.AsFloat64()}
	for name, fn := range unary {
		opts = append(opts, expr.Function(name, wrapUnary(name, fn)))
	}
	for name, fn := range binary {
		opts = append(opts, expr.Function(name, wrapBinary(name, fn)))
	}

	return opts
}

func wrapUnary(name string, fn func(float64) float64) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(params))
		}
		a, err := toFloat(params[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		return fn(a), nil
	}
}

func wrapBinary(name string, fn func(float64, float64) float64) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 2 {
			return nil, fmt.Errorf("%s expects 2 arguments, got %d", name, len(params))
		}
		a, err := toFloat(params[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		b, err := toFloat(params[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		return fn(a, b), nil
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("non-numeric argument %v (%T)", v, v)
	}
}
