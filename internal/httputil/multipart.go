// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the client and the web
// front end.
package httputil

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"github.com/pdiddy/mdconvert/pkg/types"
)

// MultipartBody encodes files as a multipart/form-data body with one part
// per file, all under the same field name. It returns the body and the
// Content-Type header value carrying the boundary.
func MultipartBody(field string, files []types.File) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range files {
		part, err := mw.CreateFormFile(field, f.Name)
		if err != nil {
			return nil, "", fmt.Errorf("creating part for %s: %w", f.Name, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("writing part for %s: %w", f.Name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
