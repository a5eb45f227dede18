package report_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvroot/internal/report"
	"github.com/katalvlaran/lvroot/rootfind"
)

func TestSQLiteWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	w, err := report.OpenSQLite(path)
	require.NoError(t, err)

	ok := newtonEntry(t)
	res, err := rootfind.Bisection(sqrt2, 2, 3)
	bad := report.NewEntry("no-bracket", res, err)
	require.NoError(t, w.Write(ok))
	require.NoError(t, w.Write(bad))
	require.NoError(t, w.Close())

	// Reopen: the schema is reused and rows persist.
	w, err = report.OpenSQLite(path)
	require.NoError(t, err)
	defer w.Close()

	all, err := w.Entries(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	got := all[0]
	assert.Equal(t, ok.RunID, got.RunID)
	assert.Equal(t, "sqrt2", got.Job)
	assert.Equal(t, "converged", got.Outcome)
	assert.Equal(t, 5, got.Iterations)
	assert.True(t, got.HasRoot)
	assert.Equal(t, float64(ok.Root), float64(got.Root))
	require.Len(t, got.Trace, 6)
	assert.Nil(t, got.Trace[0].Metric)
	require.NotNil(t, got.Trace[1].Metric)
	assert.Equal(t, float64(*ok.Trace[1].Metric), float64(*got.Trace[1].Metric))

	assert.False(t, all[1].HasRoot)
	assert.True(t, math.IsNaN(float64(all[1].Root)))
	assert.Empty(t, all[1].Trace)

	only, err := w.Entries(context.Background(), "no-bracket")
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "no sign change", only[0].Reason)
}
