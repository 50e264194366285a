// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds settings for requests to the conversion service.
type HTTPConfig struct {
	// Endpoint is the base URL of the conversion service
	// (e.g. "http://localhost:8000"). The convert path is appended.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "mdconvert/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// OutputConfig holds settings for saving converted Markdown.
type OutputConfig struct {
	// Dir is the directory <stem>.md files are written to.
	Dir string `json:"output_dir" yaml:"output_dir"`

	// Frontmatter prepends YAML frontmatter (source file, timestamp) to
	// each saved file. Off by default so saved files match the service
	// output byte for byte.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter"`
}

// ServeConfig holds settings for the local web front end.
type ServeConfig struct {
	// Addr is the listen address (default ":5174").
	Addr string `json:"addr" yaml:"addr"`

	// MaxUploadBytes caps the size of one browser upload (default 32 MiB).
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// Config groups all settings.
type Config struct {
	HTTP   HTTPConfig   `json:"http" yaml:",inline"`
	Output OutputConfig `json:"output" yaml:",inline"`
	Serve  ServeConfig  `json:"serve" yaml:"serve"`
}
