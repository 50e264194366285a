// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"sort"
	"strings"
)

// ErrorPrefix marks a per-file failure inside an otherwise successful
// conversion response.
const ErrorPrefix = "Error:"

// Status is the tri-state flag shown on the status line.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusConverting Status = "converting"
	StatusError      Status = "error"
)

// File is one member of the selected file set.
type File struct {
	// Name is the base filename sent as the multipart part filename.
	Name string `json:"name" yaml:"name"`

	// Data is the raw file content.
	Data []byte `json:"-" yaml:"-"`
}

// ResultMap maps each submitted filename to its converted Markdown, or to
// a string beginning with ErrorPrefix when that file failed.
type ResultMap map[string]string

// Clone returns a copy that shares no storage with m.
func (m ResultMap) Clone() ResultMap {
	out := make(ResultMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Filenames returns the map keys in sorted order.
func (m ResultMap) Filenames() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsFailure reports whether a result value encodes a per-file failure.
func IsFailure(value string) bool {
	return strings.HasPrefix(value, ErrorPrefix)
}

// Row is the rendered form of one result map entry.
type Row struct {
	// Filename is the original filename as returned by the service.
	Filename string `json:"filename" yaml:"filename"`

	// Content is the Markdown text, or the error text for a failed row.
	Content string `json:"content" yaml:"content"`

	// Failed is true when Content begins with ErrorPrefix. Failed rows
	// render inline and offer no download.
	Failed bool `json:"failed" yaml:"failed"`

	// DownloadName is the suggested save name (<stem>.md). Empty for
	// failed rows.
	DownloadName string `json:"download_name,omitempty" yaml:"download_name,omitempty"`
}
