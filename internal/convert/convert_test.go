// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/mdconvert/pkg/types"
)

func TestSaveRow(t *testing.T) {
	tests := []struct {
		name        string
		row         types.Row
		opts        Options
		preCreate   bool // create output MD before running
		wantOutcome Outcome
		wantContent string // expected a.md content, "" for no file
	}{
		{
			name:        "successful row is saved",
			row:         types.Row{Filename: "a.txt", Content: "# Title"},
			wantOutcome: OutcomeSaved,
			wantContent: "# Title",
		},
		{
			name:        "per-file failure is not saved",
			row:         types.Row{Filename: "a.txt", Content: "Error: unsupported format", Failed: true},
			wantOutcome: OutcomeFailed,
		},
		{
			name:        "no-save lists only",
			row:         types.Row{Filename: "a.txt", Content: "# Title"},
			opts:        Options{NoSave: true},
			wantOutcome: OutcomeListed,
		},
		{
			name:        "skip existing markdown",
			row:         types.Row{Filename: "a.txt", Content: "# New"},
			opts:        Options{SkipExisting: true},
			preCreate:   true,
			wantOutcome: OutcomeSkipped,
			wantContent: "existing",
		},
		{
			name:        "overwrite existing markdown by default",
			row:         types.Row{Filename: "a.txt", Content: "# New"},
			preCreate:   true,
			wantOutcome: OutcomeSaved,
			wantContent: "# New",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			mdPath := filepath.Join(dir, "a.md")
			if tt.preCreate {
				if err := os.WriteFile(mdPath, []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			opts := tt.opts
			opts.Dir = dir
			res := SaveRow(tt.row, opts)

			if res.Outcome != tt.wantOutcome {
				t.Errorf("outcome = %q, want %q (error %q)", res.Outcome, tt.wantOutcome, res.Error)
			}

			data, err := os.ReadFile(mdPath)
			if tt.wantContent == "" {
				if err == nil {
					t.Errorf("expected no file at %s, found %q", mdPath, data)
				}
				return
			}
			if err != nil {
				t.Fatalf("reading output: %v", err)
			}
			if string(data) != tt.wantContent {
				t.Errorf("content = %q, want %q", data, tt.wantContent)
			}
		})
	}
}

func TestSaveRow_Frontmatter(t *testing.T) {
	dir := t.TempDir()
	opts := Options{OutputConfig: types.OutputConfig{Dir: dir, Frontmatter: true}}

	res := SaveRow(types.Row{Filename: "notes.txt", Content: "# Notes"}, opts)
	if res.Outcome != OutcomeSaved {
		t.Fatalf("expected saved, got %q (%s)", res.Outcome, res.Error)
	}

	data, err := os.ReadFile(filepath.Join(dir, "notes.md"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "---\n") {
		t.Error("output should start with YAML frontmatter delimiter")
	}
	if !strings.Contains(content, "source_file: notes.txt") {
		t.Error("frontmatter should contain source_file")
	}
	if !strings.Contains(content, "converted_at:") {
		t.Error("frontmatter should contain converted_at")
	}
	if !strings.HasSuffix(content, "# Notes") {
		t.Error("output should end with the converted Markdown body")
	}
}

func TestSaveBatch(t *testing.T) {
	dir := t.TempDir()

	// Pre-create output for "b" to trigger skip.
	if err := os.WriteFile(filepath.Join(dir, "b.md"), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	rows := []types.Row{
		{Filename: "a.txt", Content: "# Paper A"},
		{Filename: "b.txt", Content: "# Paper B"},
		{Filename: "c.png", Content: "Error: unsupported format", Failed: true},
	}

	var log bytes.Buffer
	result := SaveBatch(rows, Options{OutputConfig: types.OutputConfig{Dir: dir}, SkipExisting: true}, &log)

	if result.Saved != 1 {
		t.Errorf("saved = %d, want 1", result.Saved)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if result.Total() != 3 {
		t.Errorf("total = %d, want 3", result.Total())
	}

	output := log.String()
	for _, want := range []string{"converted: a.txt", "skipped:   b.txt", "failed:    c.png (Error: unsupported format)", "Summary:"} {
		if !strings.Contains(output, want) {
			t.Errorf("batch output %q does not contain %q", output, want)
		}
	}
}

func TestSaveBatch_NilWriter(t *testing.T) {
	dir := t.TempDir()
	result := SaveBatch([]types.Row{{Filename: "a.txt", Content: "# A"}}, Options{OutputConfig: types.OutputConfig{Dir: dir}}, nil)

	if result.Saved != 1 || result.HasFailures() {
		t.Errorf("unexpected result %+v", result)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.md")); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}
