// Package cli wires the lvroot command tree.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvroot/internal/config"
	"github.com/katalvlaran/lvroot/internal/logger"
)

// app carries state shared by the commands of one invocation.
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string

	cfg *config.Config
}

// Execute runs the root command; SIGINT cancels running batches.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "lvroot",
		Short: "Traced scalar root finding",
		Long: `lvroot finds roots of f(x) = 0 with Bisection, Regula Falsi, Fixed-Point
iteration, Newton-Raphson or Secant, and records every estimate along the way.

Functions are written as expressions in x, e.g. "exp(x) - 5*x**2".`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "job file (default: lvroot.yaml, lvroot.yml or lvroot.toml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	cmd.AddCommand(newSolveCmd(a), newBatchCmd(a), newHistoryCmd(a), newMethodsCmd())

	return cmd
}

// setup loads the configuration and installs the logger; flags win over
// the file.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := logger.Configure(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	a.cfg = cfg

	return nil
}
