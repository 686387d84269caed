// Package store persists run results: a CSV summary per suite run and a
// JSONL trace per benchmark/algorithm pair.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ResultRow is one benchmark x optimizer trace destined for the CSV summary.
type ResultRow struct {
	Benchmark string
	Optimizer string
	Trace     []float64
}

// WriteCSV writes rows to path with the header
// "Benchmark, Optimiser, 0..N-1" where N is the longest trace. Shorter rows
// leave their remaining columns empty. Parent directories are created as
// needed.
func WriteCSV(path string, rows []ResultRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer f.Close()

	iterations := 0
	for _, row := range rows {
		if len(row.Trace) > iterations {
			iterations = len(row.Trace)
		}
	}

	w := csv.NewWriter(f)

	header := make([]string, 0, iterations+2)
	header = append(header, "Benchmark", "Optimiser")
	for i := 0; i < iterations; i++ {
		header = append(header, strconv.Itoa(i))
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, iterations+2)
	for _, row := range rows {
		record = record[:2]
		record[0] = row.Benchmark
		record[1] = row.Optimizer
		for _, v := range row.Trace {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		for len(record) < iterations+2 {
			record = append(record, "")
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row for %s/%s: %w", row.Benchmark, row.Optimizer, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush results file: %w", err)
	}
	return f.Sync()
}
