// Package report turns rootfind results into run records and renders or
// persists them: a terminal trace table, CSV summaries and JSON lines.
package report

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvroot/rootfind"
)

// Number is a float64 whose JSON form survives non-finite values:
// NaN encodes as null, infinities as the strings "+Inf" and "-Inf".
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	switch {
	case math.IsNaN(v):
		return []byte("null"), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}

	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "null":
		*n = Number(math.NaN())
		return nil
	case `"+Inf"`:
		*n = Number(math.Inf(1))
		return nil
	case `"-Inf"`:
		*n = Number(math.Inf(-1))
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = Number(v)

	return nil
}

// Point is one trace record. Metric is nil for seed records whose error
// metric is undefined.
type Point struct {
	Index    int     `json:"index"`
	Estimate Number  `json:"estimate"`
	Metric   *Number `json:"metric"`
}

// Entry is the persisted record of one run.
type Entry struct {
	RunID      uuid.UUID     `json:"run_id"`
	Job        string        `json:"job"`
	Method     string        `json:"method"`
	Outcome    string        `json:"outcome"`
	Status     string        `json:"status"`
	Reason     string        `json:"reason,omitempty"`
	Iterations int           `json:"iterations"`
	HasRoot    bool          `json:"has_root"`
	Root       Number        `json:"root"`
	Residual   Number        `json:"residual"`
	Trace      []Point       `json:"trace"`
	Error      string        `json:"error,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
	Duration   time.Duration `json:"duration_ns"`
}

// NewEntry records res under a fresh run id. Residual starts as NaN
// (unknown); callers that can evaluate f at the root set it.
func NewEntry(job string, res rootfind.Result, err error) Entry {
	e := Entry{
		RunID:      uuid.New(),
		Job:        job,
		Method:     res.Method.String(),
		Outcome:    res.Status.Outcome.String(),
		Status:     res.Status.String(),
		Reason:     res.Status.Reason,
		Iterations: res.Status.Iterations,
		HasRoot:    res.HasRoot,
		Root:       Number(math.NaN()),
		Residual:   Number(math.NaN()),
		Trace:      make([]Point, len(res.Trace)),
		Timestamp:  time.Now().UTC(),
	}
	if res.HasRoot {
		e.Root = Number(res.Root)
	}
	for i, rec := range res.Trace {
		p := Point{Index: rec.Index, Estimate: Number(rec.Estimate)}
		if rec.MetricDefined {
			m := Number(rec.Metric)
			p.Metric = &m
		}
		e.Trace[i] = p
	}
	if err != nil {
		e.Error = err.Error()
	}

	return e
}

// Failed reports whether the run ended without a root estimate.
func (e Entry) Failed() bool { return !e.HasRoot }
