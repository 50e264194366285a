// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package view holds the state of the upload-and-convert view: the status
// line, the page-level error, and the conversion result map of the latest
// request. Front ends submit file sets through it and render its rows.
package view

import (
	"context"
	"errors"
	"sync"

	"github.com/pdiddy/mdconvert/internal/download"
	"github.com/pdiddy/mdconvert/pkg/types"
)

var (
	// ErrNoFiles is returned by Submit for an empty file set.
	ErrNoFiles = errors.New("no files selected")

	// ErrSuperseded is returned by Submit when a newer submission was
	// issued while this one was in flight. Its response was discarded.
	ErrSuperseded = errors.New("superseded by a newer conversion")

	// ErrNotFound is returned when a filename is not in the result map.
	ErrNotFound = errors.New("no result for file")

	// ErrNotDownloadable is returned for rows holding a per-file failure.
	ErrNotDownloadable = errors.New("result is a conversion error")
)

// Converter performs one conversion request. client.Client implements it.
type Converter interface {
	Convert(ctx context.Context, files []types.File) (types.ResultMap, error)
}

// State is a snapshot of the view.
type State struct {
	Status  types.Status    `json:"status" yaml:"status"`
	Error   string          `json:"error,omitempty" yaml:"error,omitempty"`
	Results types.ResultMap `json:"-" yaml:"-"`
	Seq     uint64          `json:"seq" yaml:"seq"`
}

// View is the upload-and-convert state container. It is safe for
// concurrent use.
type View struct {
	conv Converter

	mu      sync.Mutex
	status  types.Status
	errMsg  string
	results types.ResultMap
	seq     uint64
}

// New creates an idle view backed by conv.
func New(conv Converter) *View {
	return &View{
		conv:    conv,
		status:  types.StatusIdle,
		results: types.ResultMap{},
	}
}

// Submit starts a conversion of files. Prior results and error are
// cleared before the request is sent. Each submission takes the next
// sequence number and its response is applied only while that number is
// still the latest; otherwise ErrSuperseded is returned and state is left
// to the newer submission. Request-level failures set the error status
// and are returned.
func (v *View) Submit(ctx context.Context, files []types.File) error {
	if len(files) == 0 {
		return ErrNoFiles
	}

	v.mu.Lock()
	v.seq++
	seq := v.seq
	v.results = types.ResultMap{}
	v.errMsg = ""
	v.status = types.StatusConverting
	v.mu.Unlock()

	results, err := v.conv.Convert(ctx, files)

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.seq {
		return ErrSuperseded
	}
	if err != nil {
		v.status = types.StatusError
		v.errMsg = err.Error()
		return err
	}
	v.results = results.Clone()
	v.status = types.StatusIdle
	return nil
}

// State returns a snapshot of the current state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return State{
		Status:  v.status,
		Error:   v.errMsg,
		Results: v.results.Clone(),
		Seq:     v.seq,
	}
}

// Rows renders the current result map, ordered by filename.
func (v *View) Rows() []types.Row {
	return RowsOf(v.State().Results)
}

// RowsOf renders a result map: values beginning with "Error:" become
// inline error rows, everything else a downloadable row.
func RowsOf(results types.ResultMap) []types.Row {
	rows := make([]types.Row, 0, len(results))
	for _, name := range results.Filenames() {
		content := results[name]
		row := types.Row{Filename: name, Content: content}
		if types.IsFailure(content) {
			row.Failed = true
		} else {
			row.DownloadName = download.MarkdownName(name)
		}
		rows = append(rows, row)
	}
	return rows
}

// Lookup returns the downloadable row for filename.
func (v *View) Lookup(filename string) (types.Row, error) {
	v.mu.Lock()
	content, ok := v.results[filename]
	v.mu.Unlock()

	if !ok {
		return types.Row{}, ErrNotFound
	}
	if types.IsFailure(content) {
		return types.Row{Filename: filename, Content: content, Failed: true}, ErrNotDownloadable
	}
	return types.Row{
		Filename:     filename,
		Content:      content,
		DownloadName: download.MarkdownName(filename),
	}, nil
}

// Download saves the result for filename into dir as <stem>.md and
// returns the written path.
func (v *View) Download(dir, filename string, opts download.Options) (string, error) {
	row, err := v.Lookup(filename)
	if err != nil {
		return "", err
	}
	return download.Save(dir, row.Filename, row.Content, opts)
}
