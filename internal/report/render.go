package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorFound   = lipgloss.Color("#10B981")
	colorMissing = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorHeader  = lipgloss.Color("#7C3AED")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorHeader)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorHeader).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numberStyle  = cellStyle.Align(lipgloss.Right)
	foundStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorFound)
	missingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorMissing)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// FormatEstimate renders an estimate with six decimals.
func FormatEstimate(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

// FormatMetric renders an error metric in scientific notation, or "-" when
// the metric is undefined.
func FormatMetric(p Point) string {
	if p.Metric == nil {
		return "-"
	}

	return fmt.Sprintf("%.6e", float64(*p.Metric))
}

// TraceTable builds the iteration table for e.
func TraceTable(e Entry) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("Iteration", "Estimate", "Error").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})
	for _, p := range e.Trace {
		t.Row(strconv.Itoa(p.Index), FormatEstimate(float64(p.Estimate)), FormatMetric(p))
	}

	return t
}

// StatusLine summarizes e the way the calculator reports a run: the root
// and f(root) when one was found, otherwise the reason.
func StatusLine(e Entry) string {
	if !e.HasRoot {
		return missingStyle.Render("Root not found") + "\n" + mutedStyle.Render("Status: "+e.Status)
	}
	line := fmt.Sprintf("Root found: %s", FormatEstimate(float64(e.Root)))
	if r := float64(e.Residual); !math.IsNaN(r) {
		line += fmt.Sprintf("\nf(%s) = %.6e", FormatEstimate(float64(e.Root)), r)
	}

	return foundStyle.Render(line) + "\n" + mutedStyle.Render("Status: "+e.Status)
}

// RenderTrace writes a title, the trace table and the status line to w.
func RenderTrace(w io.Writer, e Entry) error {
	title := titleStyle.Render(fmt.Sprintf("%s (%s)", e.Job, e.Method))
	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n", title, TraceTable(e).Render(), StatusLine(e))

	return err
}

// WriteJSON writes e as indented JSON.
func WriteJSON(w io.Writer, e Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(e)
}

// SummaryTable lists one row per entry: job, method, outcome, iterations,
// root and residual.
func SummaryTable(entries []Entry) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("Job", "Method", "Outcome", "Iterations", "Root", "f(root)").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2 && row < len(entries) && entries[row].Failed():
				return cellStyle.Foreground(colorMissing)
			case col == 2:
				return cellStyle.Foreground(colorFound)
			case col >= 3:
				return numberStyle
			default:
				return cellStyle
			}
		})
	for _, e := range entries {
		root, residual := "-", "-"
		if e.HasRoot {
			root = FormatEstimate(float64(e.Root))
		}
		if r := float64(e.Residual); !math.IsNaN(r) {
			residual = fmt.Sprintf("%.6e", r)
		}
		t.Row(e.Job, e.Method, e.Outcome, strconv.Itoa(e.Iterations), root, residual)
	}

	return t
}
