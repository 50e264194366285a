// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert saves a batch of conversion rows to an output directory
// and summarises the outcome.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/mdconvert/internal/download"
	"github.com/pdiddy/mdconvert/pkg/types"
)

// Outcome classifies what happened to one row.
type Outcome string

const (
	OutcomeSaved   Outcome = "saved"
	OutcomeListed  Outcome = "listed"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Options controls SaveBatch.
type Options struct {
	types.OutputConfig

	// NoSave reports downloadable rows without writing them.
	NoSave bool

	// SkipExisting leaves an existing <stem>.md untouched.
	SkipExisting bool
}

// RowResult records the outcome of one row.
type RowResult struct {
	Filename string  `json:"filename" yaml:"filename"`
	Outcome  Outcome `json:"outcome" yaml:"outcome"`
	Path     string  `json:"path,omitempty" yaml:"path,omitempty"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchResult holds the outcome of a batch save.
type BatchResult struct {
	Saved   int         `json:"saved" yaml:"saved"`
	Skipped int         `json:"skipped" yaml:"skipped"`
	Failed  int         `json:"failed" yaml:"failed"`
	Rows    []RowResult `json:"rows" yaml:"rows"`
}

// Total returns the number of rows processed.
func (r BatchResult) Total() int {
	return len(r.Rows)
}

// HasFailures reports whether any row failed conversion or saving.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// SaveRow handles a single row. Per-file conversion failures are reported
// as failed without touching the filesystem.
func SaveRow(row types.Row, opts Options) RowResult {
	res := RowResult{Filename: row.Filename}

	if row.Failed {
		res.Outcome = OutcomeFailed
		res.Error = row.Content
		return res
	}
	if opts.NoSave {
		res.Outcome = OutcomeListed
		return res
	}

	mdPath := filepath.Join(opts.Dir, filepath.Base(download.MarkdownName(row.Filename)))
	if opts.SkipExisting {
		if _, err := os.Stat(mdPath); err == nil {
			res.Outcome = OutcomeSkipped
			res.Path = mdPath
			return res
		}
	}

	path, err := download.Save(opts.Dir, row.Filename, row.Content, download.Options{
		Frontmatter: opts.Frontmatter,
	})
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Error = err.Error()
		return res
	}
	res.Outcome = OutcomeSaved
	res.Path = path
	return res
}

// SaveBatch processes rows in order. When w is non-nil, a line per row
// and a summary line are written to it.
func SaveBatch(rows []types.Row, opts Options, w io.Writer) BatchResult {
	if w == nil {
		w = io.Discard
	}

	var result BatchResult
	for _, row := range rows {
		res := SaveRow(row, opts)
		switch res.Outcome {
		case OutcomeSaved:
			result.Saved++
			fmt.Fprintf(w, "converted: %s -> %s\n", res.Filename, res.Path)
		case OutcomeListed:
			fmt.Fprintf(w, "converted: %s\n", res.Filename)
		case OutcomeSkipped:
			result.Skipped++
			fmt.Fprintf(w, "skipped:   %s (%s already exists)\n", res.Filename, res.Path)
		case OutcomeFailed:
			result.Failed++
			fmt.Fprintf(w, "failed:    %s (%s)\n", res.Filename, res.Error)
		}
		result.Rows = append(result.Rows, res)
	}

	fmt.Fprintf(w, "\nSummary: %d saved, %d skipped, %d failed (total: %d)\n",
		result.Saved, result.Skipped, result.Failed, result.Total())
	return result
}
