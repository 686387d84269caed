package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TraceEntry is a single objective evaluation, serialized as one JSON line in
// trace.jsonl.
type TraceEntry struct {
	// Iteration is the trial id within the run.
	Iteration int `json:"iteration"`

	// Value is the objective value the trial evaluated to.
	Value float64 `json:"value"`

	// Timestamp records when the entry was written.
	Timestamp time.Time `json:"timestamp"`
}

// TraceWriter appends trace entries to <baseDir>/runs/<runID>/trace.jsonl.
// Writes are buffered; Flush or Close makes them durable. Safe for concurrent
// use.
type TraceWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
	path   string
}

// NewTraceWriter creates (or truncates) the trace file for runID, creating
// the run directory as needed.
func NewTraceWriter(baseDir, runID string) (*TraceWriter, error) {
	runDir := filepath.Join(baseDir, "runs", runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}

	path := filepath.Join(runDir, "trace.jsonl")
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace file: %w", err)
	}

	return &TraceWriter{
		file:   file,
		writer: bufio.NewWriterSize(file, 64*1024),
		path:   path,
	}, nil
}

// Path returns the location of the trace file.
func (tw *TraceWriter) Path() string { return tw.path }

// Write appends one entry. The entry stays buffered until Flush or Close.
func (tw *TraceWriter) Write(entry TraceEntry) error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal trace entry: %w", err)
	}
	if _, err := tw.writer.Write(data); err != nil {
		return fmt.Errorf("write trace entry: %w", err)
	}
	if err := tw.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write trace entry: %w", err)
	}
	return nil
}

// Flush writes buffered entries through to disk.
func (tw *TraceWriter) Flush() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if err := tw.writer.Flush(); err != nil {
		return fmt.Errorf("flush trace file: %w", err)
	}
	return tw.file.Sync()
}

// Close flushes and closes the trace file.
func (tw *TraceWriter) Close() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if err := tw.writer.Flush(); err != nil {
		tw.file.Close()
		return fmt.Errorf("flush trace file: %w", err)
	}
	return tw.file.Close()
}

// TraceReader reads entries back from a trace file.
type TraceReader struct {
	file    *os.File
	scanner *bufio.Scanner
}

// OpenTrace opens the trace file for runID under baseDir.
func OpenTrace(baseDir, runID string) (*TraceReader, error) {
	path := filepath.Join(baseDir, "runs", runID, "trace.jsonl")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	return &TraceReader{file: file, scanner: scanner}, nil
}

// Next returns the next entry, or io.EOF once the file is exhausted.
func (tr *TraceReader) Next() (TraceEntry, error) {
	if !tr.scanner.Scan() {
		if err := tr.scanner.Err(); err != nil {
			return TraceEntry{}, fmt.Errorf("read trace file: %w", err)
		}
		return TraceEntry{}, io.EOF
	}

	var entry TraceEntry
	if err := json.Unmarshal(tr.scanner.Bytes(), &entry); err != nil {
		return TraceEntry{}, fmt.Errorf("decode trace entry: %w", err)
	}
	return entry, nil
}

// Close closes the underlying file.
func (tr *TraceReader) Close() error {
	return tr.file.Close()
}
