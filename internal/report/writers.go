package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"
)

// Sink receives finished entries. Implementations are safe for concurrent use.
type Sink interface {
	Write(e Entry) error
	Close() error
}

// CSVHeader is the column layout of CSVWriter.
var CSVHeader = []string{
	"run_id", "job", "method", "outcome", "iterations", "has_root",
	"root", "residual", "trace_len", "status", "error", "timestamp", "duration_s",
}

// CSVWriter writes one summary row per entry and flushes after every row,
// so a crash mid-batch keeps the rows already written.
type CSVWriter struct {
	closer io.Closer
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter writes the header to w. Close does not close w.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := &CSVWriter{writer: csv.NewWriter(w)}
	if err := cw.writer.Write(CSVHeader); err != nil {
		return nil, err
	}
	cw.writer.Flush()

	return cw, cw.writer.Error()
}

// CreateCSV creates (or truncates) path and returns a writer that owns it.
func CreateCSV(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	cw, err := NewCSVWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	cw.closer = f

	return cw, nil
}

// Write appends the summary row of e.
func (cw *CSVWriter) Write(e Entry) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		e.RunID.String(),
		e.Job,
		e.Method,
		e.Outcome,
		strconv.Itoa(e.Iterations),
		strconv.FormatBool(e.HasRoot),
		formatCell(e.Root),
		formatCell(e.Residual),
		strconv.Itoa(len(e.Trace)),
		e.Status,
		e.Error,
		e.Timestamp.Format(time.RFC3339),
		fmt.Sprintf("%.6f", e.Duration.Seconds()),
	}
	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()

	return cw.writer.Error()
}

// Close flushes and closes the owned file, if any.
func (cw *CSVWriter) Close() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	cw.writer.Flush()
	if cw.closer == nil {
		return cw.writer.Error()
	}

	return cw.closer.Close()
}

// formatCell leaves NaN cells empty.
func formatCell(n Number) string {
	v := float64(n)
	if v != v {
		return ""
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

// JSONWriter writes entries as JSON lines, full trace included.
type JSONWriter struct {
	closer  io.Closer
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter encodes to w. Close does not close w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{encoder: json.NewEncoder(w)}
}

// CreateJSON creates (or truncates) path and returns a writer that owns it.
func CreateJSON(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	jw := NewJSONWriter(f)
	jw.closer = f

	return jw, nil
}

// Write appends e as one line.
func (jw *JSONWriter) Write(e Entry) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.encoder.Encode(e)
}

// Close closes the owned file, if any.
func (jw *JSONWriter) Close() error {
	if jw.closer == nil {
		return nil
	}

	return jw.closer.Close()
}
