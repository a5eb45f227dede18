// Package rootfind_test provides runnable examples for the root-finding engines.
package rootfind_test

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvroot/rootfind"
)

// ExampleNewton finds √2 as the positive root of x² − 2 starting from x0 = 1,
// with an explicit derivative.
func ExampleNewton() {
	f := rootfind.Plain(func(x float64) float64 { return x*x - 2 })
	df := rootfind.Plain(func(x float64) float64 { return 2 * x })

	res, err := rootfind.Newton(f, df, 1, rootfind.WithTolerance(1e-6))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("root=%.6f\nstatus=%s\nrecords=%d\n", res.Root, res.Status, res.Trace.Len())
	// Output:
	// root=1.414214
	// status=converged after 5 iterations
	// records=6
}

// ExampleBisection prints the first few midpoints together with the bracket width.
func ExampleBisection() {
	f := rootfind.Plain(func(x float64) float64 { return x*x - 2 })

	res, _ := rootfind.Bisection(f, 0, 2, rootfind.WithMaxIterations(4))
	for _, rec := range res.Trace {
		if !rec.MetricDefined {
			fmt.Printf("%d  %.6f  -\n", rec.Index, rec.Estimate)
			continue
		}
		fmt.Printf("%d  %.6f  %.2e\n", rec.Index, rec.Estimate, rec.Metric)
	}
	fmt.Println(res.Status)
	// Output:
	// 0  0.000000  -
	// 1  2.000000  2.00e+00
	// 2  1.000000  2.00e+00
	// 3  1.500000  1.00e+00
	// 4  1.250000  5.00e-01
	// 5  1.375000  2.50e-01
	// maximum iterations (4) reached
}

// ExampleSolve dispatches the same problem to several methods.
func ExampleSolve() {
	f := rootfind.Plain(func(x float64) float64 { return x*x - 2 })
	for _, m := range []rootfind.Method{rootfind.MethodBisection, rootfind.MethodRegulaFalsi, rootfind.MethodSecant} {
		res, err := rootfind.Solve(rootfind.Problem{Method: m, F: f, A: 1, B: 2, X0: 1, X1: 2})
		if err != nil {
			fmt.Println(m, "error:", err)
			continue
		}
		fmt.Printf("%-12s %.5f\n", m, res.Root)
	}
	// Output:
	// bisection    1.41421
	// regula-falsi 1.41421
	// secant       1.41421
}

// ExampleBisection_noSignChange shows the InvalidInput path.
func ExampleBisection_noSignChange() {
	f := rootfind.Plain(func(x float64) float64 { return x*x + 1 })

	res, err := rootfind.Bisection(f, -1, 1)
	fmt.Println(errors.Is(err, rootfind.ErrNoSignChange), res.HasRoot, res.Trace.Len())
	fmt.Println(res.Status)
	// Output:
	// true false 0
	// invalid input: no sign change
}

// ExampleFixedPoint solves x = cbrt(x + 2), the default iteration function
// of the calculator.
func ExampleFixedPoint() {
	g := rootfind.Plain(func(x float64) float64 { return math.Cbrt(x + 2) })

	res, _ := rootfind.FixedPoint(g, 1.5)
	fmt.Printf("%.6f %v\n", res.Root, res.Converged())
	// Output: 1.521380 true
}
