// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview renders converted Markdown to HTML for the web front end.
package preview

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer converts Markdown to an HTML fragment. Raw HTML in the input
// is escaped, since the Markdown comes from a remote service.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a renderer with GitHub Flavored Markdown enabled.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Render returns the HTML for markdown.
func (r *Renderer) Render(markdown string) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}
