package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvroot/internal/config"
	"github.com/katalvlaran/lvroot/internal/report"
	"github.com/katalvlaran/lvroot/internal/runner"
)

type solveFlags struct {
	method    string
	f, g, df  string
	a, b      float64
	x0, x1    float64
	tolerance float64
	maxIter   int
	format    string
}

func newSolveCmd(a *app) *cobra.Command {
	fl := &solveFlags{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run one method and print its iteration trace",
		Example: `  # Newton-Raphson on x^2 - 2 from x0 = 1, numeric derivative
  lvroot solve --method newton --f "x**2 - 2" --x0 1

  # Bisection with the default function exp(x) - 5x^2 on [0, 1]
  lvroot solve --method bisection

  # Fixed-point iteration, JSON output
  lvroot solve --method fixed-point --g "(x + 2)**(1/3)" --x0 1.5 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job := fl.job(cmd, a.cfg)
			if err := (&config.Config{
				Tolerance:     a.cfg.Tolerance,
				MaxIterations: a.cfg.MaxIterations,
				Jobs:          []config.Job{job},
			}).Validate(); err != nil {
				return err
			}

			task, err := runner.Prepare(job)
			if err != nil {
				return err
			}
			e := task.Execute()
			if err := write(cmd.OutOrStdout(), fl.format, e); err != nil {
				return err
			}
			if e.Failed() {
				return errors.New(e.Status)
			}

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&fl.method, "method", "m", "bisection", "bisection, regula-falsi, fixed-point, newton-raphson or secant")
	f.StringVar(&fl.f, "f", config.DefaultF, "target function f(x)")
	f.StringVar(&fl.g, "g", config.DefaultG, "iteration function g(x) for fixed-point")
	f.StringVar(&fl.df, "df", "", "derivative f'(x) for newton-raphson (default: forward difference)")
	f.Float64Var(&fl.a, "a", 0, "left end of the bracket")
	f.Float64Var(&fl.b, "b", 1, "right end of the bracket")
	f.Float64Var(&fl.x0, "x0", 0, "initial guess (method default when unset)")
	f.Float64Var(&fl.x1, "x1", 0, "second initial guess for secant (method default when unset)")
	f.Float64Var(&fl.tolerance, "tol", 0, "convergence tolerance (default from config)")
	f.IntVar(&fl.maxIter, "max-iter", 0, "iteration cap (default from config)")
	f.StringVarP(&fl.format, "format", "F", "table", "output format: table, json or csv")

	return cmd
}

// job builds a resolved job; seeds not given on the command line take the
// method defaults.
func (fl *solveFlags) job(cmd *cobra.Command, cfg *config.Config) config.Job {
	j := config.Job{
		Name:          "cli",
		Method:        fl.method,
		F:             fl.f,
		G:             fl.g,
		DF:            fl.df,
		Tolerance:     fl.tolerance,
		MaxIterations: fl.maxIter,
	}
	changed := cmd.Flags().Changed
	if changed("a") {
		j.A = config.Float(fl.a)
	}
	if changed("b") {
		j.B = config.Float(fl.b)
	}
	if changed("x0") {
		j.X0 = config.Float(fl.x0)
	}
	if changed("x1") {
		j.X1 = config.Float(fl.x1)
	}

	return j.Resolved(cfg)
}

func write(w io.Writer, format string, e report.Entry) error {
	switch format {
	case "table":
		return report.RenderTrace(w, e)
	case "json":
		return report.WriteJSON(w, e)
	case "csv":
		cw, err := report.NewCSVWriter(w)
		if err != nil {
			return err
		}
		if err := cw.Write(e); err != nil {
			return err
		}

		return cw.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
