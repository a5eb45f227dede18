package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvroot/internal/config"
	"github.com/katalvlaran/lvroot/rootfind"
)

var methodInputs = map[rootfind.Method]string{
	rootfind.MethodBisection:   "f, a, b",
	rootfind.MethodRegulaFalsi: "f, a, b",
	rootfind.MethodFixedPoint:  "g, x0",
	rootfind.MethodNewton:      "f, x0 [, df]",
	rootfind.MethodSecant:      "f, x0, x1",
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the supported methods and their inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				Headers("Method", "Inputs", "Defaults")
			for _, m := range rootfind.Methods() {
				t.Row(m.String(), methodInputs[m], defaults(m))
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())

			return err
		},
	}
}

func defaults(m rootfind.Method) string {
	s := config.DefaultSeeds(m)
	switch m {
	case rootfind.MethodBisection, rootfind.MethodRegulaFalsi:
		return fmt.Sprintf("a=%g b=%g", s.A, s.B)
	case rootfind.MethodSecant:
		return fmt.Sprintf("x0=%g x1=%g", s.X0, s.X1)
	default:
		return fmt.Sprintf("x0=%g", s.X0)
	}
}
