// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the browser front end of the upload-and-convert view:
// a drop region page plus a small JSON API that drives the view.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/pdiddy/mdconvert/internal/client"
	"github.com/pdiddy/mdconvert/internal/download"
	"github.com/pdiddy/mdconvert/internal/preview"
	"github.com/pdiddy/mdconvert/internal/view"
	"github.com/pdiddy/mdconvert/pkg/types"
)

//go:embed static
var staticFS embed.FS

const defaultMaxUpload = 32 << 20

// stateResponse is the JSON body of /api/state and /api/convert.
type stateResponse struct {
	Status types.Status `json:"status"`
	Error  string       `json:"error,omitempty"`
	Seq    uint64       `json:"seq"`
	Rows   []types.Row  `json:"rows"`
}

// Server is the HTTP front end for one view.
type Server struct {
	view      *view.View
	renderer  *preview.Renderer
	logger    *slog.Logger
	maxUpload int64
}

// NewServer creates a server driving v. A nil logger uses slog.Default().
func NewServer(v *view.View, cfg types.ServeConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &Server{
		view:      v,
		renderer:  preview.New(),
		logger:    logger,
		maxUpload: maxUpload,
	}
}

// Handler returns the routed handler with logging and security headers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/convert", s.handleConvert)
	mux.HandleFunc("GET /api/download", s.handleDownload)
	mux.HandleFunc("GET /api/preview", s.handlePreview)

	assets, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(assets))))

	return s.requestLogger(securityHeaders(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutdown initiated", "timeout", "10s")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy",
		"default-src 'self'; script-src 'self'; style-src 'self'; object-src 'none'; frame-ancestors 'none'")
	w.Write(data)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeState(w, http.StatusOK)
}

// handleConvert reads the dropped files from the "files" field and runs
// one submission. The response is the view state after it resolves,
// including request-level failures, which the page renders itself.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		jsonError(w, "Failed to read upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files, err := readFiles(r.MultipartForm.File[client.FieldName])
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	err = s.view.Submit(r.Context(), files)
	switch {
	case errors.Is(err, view.ErrNoFiles):
		jsonError(w, "No files uploaded", http.StatusBadRequest)
		return
	case errors.Is(err, view.ErrSuperseded):
		s.logger.Info("conversion superseded", "files", len(files))
	case err != nil:
		s.logger.Warn("conversion failed",
			"files", len(files),
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	default:
		s.logger.Info("conversion complete",
			"files", len(files),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	s.writeState(w, http.StatusOK)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	row, ok := s.lookup(w, r)
	if !ok {
		return
	}
	download.Write(w, row.Filename, row.Content)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	row, ok := s.lookup(w, r)
	if !ok {
		return
	}
	html, err := s.renderer.Render(row.Content)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// lookup resolves the ?name= query to a downloadable row, writing the
// error response itself when there is none.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (types.Row, bool) {
	name := r.URL.Query().Get("name")
	if name == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return types.Row{}, false
	}

	row, err := s.view.Lookup(name)
	switch {
	case errors.Is(err, view.ErrNotFound):
		jsonError(w, fmt.Sprintf("no result for %q", name), http.StatusNotFound)
		return types.Row{}, false
	case errors.Is(err, view.ErrNotDownloadable):
		jsonError(w, row.Content, http.StatusConflict)
		return types.Row{}, false
	case err != nil:
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return types.Row{}, false
	}
	return row, true
}

func (s *Server) writeState(w http.ResponseWriter, code int) {
	st := s.view.State()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(stateResponse{
		Status: st.Status,
		Error:  st.Error,
		Seq:    st.Seq,
		Rows:   view.RowsOf(st.Results),
	})
}

func readFiles(headers []*multipart.FileHeader) ([]types.File, error) {
	files := make([]types.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", fh.Filename, err)
		}
		files = append(files, types.File{Name: fh.Filename, Data: data})
	}
	return files, nil
}

// jsonError writes an error body in the same {"detail": ...} shape the
// conversion service uses.
func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"detail": msg})
}
