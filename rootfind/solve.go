package rootfind

// Solve routes a Problem to the engine selected by p.Method.
//
// Contracts:
//   - The inputs each method reads are listed on Problem; the others are ignored.
//   - opts are resolved on top of DefaultOptions and validated by the engine.
//   - An unknown method yields an InvalidInput result with ErrUnsupportedMethod.
//
// Solve keeps no state between calls; concurrent calls are safe as long as
// the supplied functions are.
func Solve(p Problem, opts ...Option) (Result, error) {
	switch p.Method {
	case MethodBisection:
		return Bisection(p.F, p.A, p.B, opts...)
	case MethodRegulaFalsi:
		return RegulaFalsi(p.F, p.A, p.B, opts...)
	case MethodFixedPoint:
		return FixedPoint(p.G, p.X0, opts...)
	case MethodNewton:
		return Newton(p.F, p.DF, p.X0, opts...)
	case MethodSecant:
		return Secant(p.F, p.X0, p.X1, opts...)
	default:
		return newRun(p.Method, gatherOptions(opts)).invalid(ErrUnsupportedMethod)
	}
}
