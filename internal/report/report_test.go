package report_test

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvroot/internal/report"
	"github.com/katalvlaran/lvroot/rootfind"
)

var sqrt2 = rootfind.Plain(func(x float64) float64 { return x*x - 2 })

func newtonEntry(t *testing.T) report.Entry {
	t.Helper()
	res, err := rootfind.Newton(sqrt2, nil, 1)
	require.NoError(t, err)
	e := report.NewEntry("sqrt2", res, err)
	e.Residual = report.Number(res.Root*res.Root - 2)

	return e
}

func TestNewEntry(t *testing.T) {
	e := newtonEntry(t)
	assert.NotEqual(t, uuid.Nil, e.RunID)
	assert.Equal(t, "newton-raphson", e.Method)
	assert.Equal(t, "converged", e.Outcome)
	assert.Equal(t, "converged after 5 iterations", e.Status)
	assert.True(t, e.HasRoot)
	assert.InDelta(t, math.Sqrt2, float64(e.Root), 1e-9)
	require.Len(t, e.Trace, 6)
	assert.Nil(t, e.Trace[0].Metric)
	assert.NotNil(t, e.Trace[1].Metric)
	assert.Empty(t, e.Error)

	res, err := rootfind.Bisection(sqrt2, 2, 3)
	bad := report.NewEntry("no-bracket", res, err)
	assert.False(t, bad.HasRoot)
	assert.True(t, bad.Failed())
	assert.True(t, math.IsNaN(float64(bad.Root)))
	assert.Equal(t, "invalid-input", bad.Outcome)
	assert.Equal(t, "rootfind: no sign change", bad.Error)
	assert.Empty(t, bad.Trace)
}

func TestNumber_JSON(t *testing.T) {
	in := []report.Number{1.5, report.Number(math.Inf(1)), report.Number(math.Inf(-1)), report.Number(math.NaN())}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `[1.5,"+Inf","-Inf",null]`, string(b))

	var out []report.Number
	require.NoError(t, json.Unmarshal(b, &out))
	require.Len(t, out, 4)
	assert.Equal(t, 1.5, float64(out[0]))
	assert.True(t, math.IsInf(float64(out[1]), 1))
	assert.True(t, math.IsInf(float64(out[2]), -1))
	assert.True(t, math.IsNaN(float64(out[3])))
}

func TestRenderTrace(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.RenderTrace(&buf, newtonEntry(t)))
	out := buf.String()

	assert.Contains(t, out, "sqrt2 (newton-raphson)")
	assert.Contains(t, out, "Iteration")
	assert.Contains(t, out, "1.000000")
	assert.Contains(t, out, "Root found: 1.414214")
	assert.Contains(t, out, "Status: converged after 5 iterations")

	flat := rootfind.Plain(func(x float64) float64 { return x*x + 1 })
	res, err := rootfind.Newton(flat, rootfind.Plain(func(x float64) float64 { return 2 * x }), 0)
	buf.Reset()
	require.NoError(t, report.RenderTrace(&buf, report.NewEntry("flat", res, err)))
	assert.Contains(t, buf.String(), "Root not found")
	assert.Contains(t, buf.String(), "diverged")
}

func TestFormatMetric(t *testing.T) {
	assert.Equal(t, "-", report.FormatMetric(report.Point{}))
	m := report.Number(0.5)
	assert.Equal(t, "5.000000e-01", report.FormatMetric(report.Point{Metric: &m}))
	assert.Equal(t, "1.414214", report.FormatEstimate(math.Sqrt2))
}

func TestWriteJSON_InfiniteRoot(t *testing.T) {
	g := rootfind.Plain(func(x float64) float64 { return x * x })
	res, err := rootfind.FixedPoint(g, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, report.NewEntry("square", res, err)))

	var decoded report.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "max-iterations", decoded.Outcome)
	assert.True(t, math.IsInf(float64(decoded.Root), 1))
	assert.Len(t, decoded.Trace, 101)
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	w, err := report.CreateCSV(path)
	require.NoError(t, err)

	entry := newtonEntry(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, w.Write(entry))
		}()
	}
	wg.Wait()
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, report.CSVHeader, rows[0])
	assert.Equal(t, "sqrt2", rows[1][1])
	assert.Equal(t, "converged", rows[1][3])
	assert.Equal(t, "5", rows[1][4])
	assert.Equal(t, "6", rows[1][8])
}

func TestCSVWriter_EmptyCellsForMissingRoot(t *testing.T) {
	var buf bytes.Buffer
	w, err := report.NewCSVWriter(&buf)
	require.NoError(t, err)

	res, err := rootfind.Solve(rootfind.Problem{Method: rootfind.Method(42)})
	require.ErrorIs(t, err, rootfind.ErrUnsupportedMethod)
	require.NoError(t, w.Write(report.NewEntry("bogus", res, err)))
	require.NoError(t, w.Close())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[1][6])
	assert.Equal(t, "", rows[1][7])
}

func TestJSONWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.jsonl")
	w, err := report.CreateJSON(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(newtonEntry(t)))
	require.NoError(t, w.Write(newtonEntry(t)))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines++
		var e report.Entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		assert.Equal(t, "sqrt2", e.Job)
		assert.True(t, strings.HasPrefix(e.Status, "converged"))
	}
	assert.Equal(t, 2, lines)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestNewCSVWriter_HeaderFailure(t *testing.T) {
	_, err := report.NewCSVWriter(failingWriter{})
	assert.ErrorContains(t, err, "disk full")
}

func TestSummaryTable(t *testing.T) {
	ok := newtonEntry(t)
	res, err := rootfind.Bisection(sqrt2, 2, 3)
	bad := report.NewEntry("no-bracket", res, err)

	out := report.SummaryTable([]report.Entry{ok, bad}).Render()
	assert.Contains(t, out, "sqrt2")
	assert.Contains(t, out, "converged")
	assert.Contains(t, out, "1.414214")
	assert.Contains(t, out, "no-bracket")
	assert.Contains(t, out, "invalid-input")
}
