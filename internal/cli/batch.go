package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvroot/internal/report"
	"github.com/katalvlaran/lvroot/internal/runner"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		outputDir string
		workers   int
		tolerance float64
		maxIter   int
		formats   []string
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run every job of the job file",
		Long: `Runs all jobs from the job file concurrently and writes one CSV row and one
JSON line per run into the output directory (results.csv, results.jsonl).
Adding "sqlite" to formats also stores every run and its trace in results.db.
Without a job file, the built-in jobs run every method on exp(x) - 5x^2.`,
		Example: `  lvroot batch --config jobs.yaml -o ./out --workers 4`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if tolerance != 0 {
				cfg.Tolerance = tolerance
			}
			if maxIter != 0 {
				cfg.MaxIterations = maxIter
			}
			if len(formats) > 0 {
				cfg.Formats = formats
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			entries, err := runner.Batch(cmd.Context(), cfg)
			if len(entries) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), report.SummaryTable(entries).Render())
			}

			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&outputDir, "output-dir", "o", "", "directory for results.csv and results.jsonl")
	f.IntVarP(&workers, "workers", "w", 0, "concurrent jobs (0 = number of CPUs)")
	f.Float64Var(&tolerance, "tol", 0, "override the global tolerance")
	f.IntVar(&maxIter, "max-iter", 0, "override the global iteration cap")
	f.StringSliceVar(&formats, "formats", nil, "output formats: csv, jsonl, sqlite (default from config)")

	return cmd
}
