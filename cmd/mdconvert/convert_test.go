package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mdconvert/internal/client"
	"github.com/pdiddy/mdconvert/internal/convert"
	"github.com/pdiddy/mdconvert/internal/view"
	"github.com/pdiddy/mdconvert/pkg/types"
)

func serviceView(t *testing.T, status int, body string) *view.View {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return view.New(&client.Client{HTTP: ts.Client(), Endpoint: ts.URL})
}

var inputFiles = []types.File{
	{Name: "a.txt", Data: []byte("Title")},
	{Name: "b.png", Data: []byte{0x89}},
}

func TestConvertFiles_SavesSuccessfulRows(t *testing.T) {
	v := serviceView(t, http.StatusOK, `{"a.txt": "# Title", "b.png": "Error: unsupported format"}`)
	dir := t.TempDir()
	var out bytes.Buffer

	err := convertFiles(context.Background(), v, inputFiles, convertOptions{
		Save: convert.Options{OutputConfig: types.OutputConfig{Dir: dir}},
	}, &out)
	assert.EqualError(t, err, "1 file(s) failed conversion")

	data, readErr := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, readErr)
	assert.Equal(t, "# Title", string(data))
	assert.NoFileExists(t, filepath.Join(dir, "b.md"))

	log := out.String()
	assert.Contains(t, log, "converted: a.txt -> "+filepath.Join(dir, "a.md"))
	assert.Contains(t, log, "failed:    b.png (Error: unsupported format)")
	assert.Contains(t, log, "Summary: 1 saved, 0 skipped, 1 failed (total: 2)")
}

func TestConvertFiles_AllSucceed(t *testing.T) {
	v := serviceView(t, http.StatusOK, `{"a.txt": "# A", "b.png": "# B"}`)
	dir := t.TempDir()
	var out bytes.Buffer

	err := convertFiles(context.Background(), v, inputFiles, convertOptions{
		Save: convert.Options{OutputConfig: types.OutputConfig{Dir: dir}},
	}, &out)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "a.md"))
	assert.FileExists(t, filepath.Join(dir, "b.md"))
}

func TestConvertFiles_RequestFailure(t *testing.T) {
	v := serviceView(t, http.StatusInternalServerError, `{"detail": "conversion engine unavailable"}`)
	dir := t.TempDir()
	var out bytes.Buffer

	err := convertFiles(context.Background(), v, inputFiles, convertOptions{
		Save: convert.Options{OutputConfig: types.OutputConfig{Dir: dir}},
	}, &out)
	assert.EqualError(t, err, "conversion failed: conversion engine unavailable")

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "nothing saved on request failure")
}

func TestConvertFiles_NoSave(t *testing.T) {
	v := serviceView(t, http.StatusOK, `{"a.txt": "# A"}`)
	dir := t.TempDir()
	var out bytes.Buffer

	err := convertFiles(context.Background(), v, inputFiles[:1], convertOptions{
		Save: convert.Options{OutputConfig: types.OutputConfig{Dir: dir}, NoSave: true},
	}, &out)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "a.md"))
	assert.Contains(t, out.String(), "converted: a.txt\n")
}

func TestConvertFiles_JSONReport(t *testing.T) {
	v := serviceView(t, http.StatusOK, `{"a.txt": "# Title", "b.png": "Error: unsupported format"}`)
	dir := t.TempDir()
	var out bytes.Buffer

	convertFiles(context.Background(), v, inputFiles, convertOptions{
		Save: convert.Options{OutputConfig: types.OutputConfig{Dir: dir}},
		Format: "json",
	}, &out)

	var report convertReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, types.StatusIdle, report.Status)
	require.Len(t, report.Summary.Rows, 2)
	assert.Equal(t, convert.OutcomeSaved, report.Summary.Rows[0].Outcome)
	assert.Equal(t, filepath.Join(dir, "a.md"), report.Summary.Rows[0].Path)
	assert.Equal(t, convert.OutcomeFailed, report.Summary.Rows[1].Outcome)
	assert.Equal(t, "Error: unsupported format", report.Summary.Rows[1].Error)
}

func TestConvertFiles_YAMLReportOnFailure(t *testing.T) {
	v := serviceView(t, http.StatusBadGateway, `not json`)
	var out bytes.Buffer

	err := convertFiles(context.Background(), v, inputFiles, convertOptions{
		Save: convert.Options{OutputConfig: types.OutputConfig{Dir: t.TempDir()}},
		Format: "yaml",
	}, &out)
	require.Error(t, err)

	var report convertReport
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, types.StatusError, report.Status)
	assert.Equal(t, client.GenericFailure, report.Error)
	assert.Empty(t, report.Summary.Rows)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "mdconvert dev\n", out.String())
}
