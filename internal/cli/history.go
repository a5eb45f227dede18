package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvroot/internal/report"
	"github.com/katalvlaran/lvroot/internal/runner"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		dbPath string
		job    string
		trace  bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show runs stored by batch in the SQLite results database",
		Example: `  lvroot batch --config jobs.yaml   # with formats: [sqlite]
  lvroot history --job sqrt2 --trace`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				dbPath = filepath.Join(a.cfg.OutputDir, runner.SQLiteFile)
			}
			if _, err := os.Stat(dbPath); err != nil {
				return fmt.Errorf("no results database at %s: %w", dbPath, err)
			}
			db, err := report.OpenSQLite(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			entries, err := db.Entries(cmd.Context(), job)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, err := fmt.Fprintln(out, "no runs stored")
				return err
			}
			if !trace {
				_, err := fmt.Fprintln(out, report.SummaryTable(entries).Render())
				return err
			}
			for _, e := range entries {
				if err := report.RenderTrace(out, e); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "results database (default: <output_dir>/results.db)")
	cmd.Flags().StringVar(&job, "job", "", "only show runs of this job")
	cmd.Flags().BoolVar(&trace, "trace", false, "print the full iteration trace of every run")

	return cmd
}
