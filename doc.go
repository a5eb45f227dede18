// Package lvroot is a traced scalar root-finding toolkit: five classical
// iterative methods behind one uniform result type, plus a small CLI that
// runs them on formulas typed as text.
//
// 🚀 What is in the box?
//
//	rootfind/            — the engines: Bisection, RegulaFalsi, FixedPoint,
//	                       Newton, Secant, and the Solve dispatcher
//	internal/expression/ — "exp(x) - 5*x**2" → rootfind.Func
//	internal/config/     — YAML / TOML job files
//	internal/report/     — trace tables, CSV, JSON-lines and SQLite output
//	internal/runner/     — concurrent batch execution
//	internal/cli/        — the lvroot command tree (solve, batch, history, methods)
//	examples/            — runnable scenarios (Kepler, Colebrook, IRR)
//
// ✨ Why lvroot?
//
//   - Every run keeps its full trace: estimate and error metric per pass
//   - Failures are values: Diverged, InvalidInput and EvaluationFailed come
//     back as a populated Result plus a matchable error, never a panic
//   - Pure functions of their inputs: safe to run concurrently
//
// Quick start:
//
//	f := rootfind.Plain(func(x float64) float64 { return x*x - 2 })
//	res, _ := rootfind.Newton(f, nil, 1)
//	fmt.Printf("%.6f %s\n", res.Root, res.Status) // 1.414214 converged after 5 iterations
//
// or from the shell:
//
//	lvroot solve --method newton --f "x**2 - 2" --x0 1
//
//	go get github.com/katalvlaran/lvroot
package lvroot
