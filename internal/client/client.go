// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client talks to the remote convert-to-markdown service.
//
// The service accepts a multipart POST with every file under the "files"
// field and answers with a JSON object mapping each filename to Markdown
// text, or to a string beginning with "Error:" for files it could not
// convert. Request-level failures carry a JSON {"detail": "..."} body.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/mdconvert/internal/httputil"
	"github.com/pdiddy/mdconvert/pkg/types"
)

const (
	// ConvertPath is the service route for conversion requests.
	ConvertPath = "/convert-to-markdown/"

	// FieldName is the multipart field every file is sent under.
	FieldName = "files"

	// GenericFailure is reported when a failed response has no usable detail.
	GenericFailure = "Something went wrong during conversion."
)

// RequestError is a request-level failure reported by the service.
// Its message is exactly the service's detail text.
type RequestError struct {
	StatusCode int
	Detail     string
}

func (e *RequestError) Error() string {
	return e.Detail
}

// Client sends conversion requests to one service endpoint.
type Client struct {
	HTTP      *http.Client
	Endpoint  string
	UserAgent string
}

// New creates a client for the service at cfg.Endpoint.
func New(cfg types.HTTPConfig) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		Endpoint:  cfg.Endpoint,
		UserAgent: cfg.UserAgent,
	}
}

// URL returns the full convert URL.
func (c *Client) URL() string {
	return strings.TrimRight(c.Endpoint, "/") + ConvertPath
}

// Convert uploads files in a single request and returns the result map.
// A non-2xx response yields a *RequestError; transport and decoding
// failures are returned wrapped.
func (c *Client) Convert(ctx context.Context, files []types.File) (types.ResultMap, error) {
	body, contentType, err := httputil.MultipartBody(FieldName, files)
	if err != nil {
		return nil, fmt.Errorf("building request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("conversion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := httputil.Detail(resp.Body)
		if detail == "" {
			detail = GenericFailure
		}
		return nil, &RequestError{StatusCode: resp.StatusCode, Detail: detail}
	}

	var results types.ResultMap
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding conversion response: %w", err)
	}
	io.Copy(io.Discard, resp.Body)

	if results == nil {
		results = types.ResultMap{}
	}
	return results, nil
}
