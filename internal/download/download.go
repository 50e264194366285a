// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download turns a converted result into a saved <stem>.md file,
// either on disk or as a browser download.
package download

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// ContentType is the MIME type of every saved result.
const ContentType = "text/markdown; charset=utf-8"

// MarkdownName derives the save name from an original filename: the final
// extension is dropped and ".md" appended. An extension is a trailing
// ".xxx" that contains no '/' or '.', so "a.txt" becomes "a.md",
// "archive.tar.gz" becomes "archive.tar.md" and "README" becomes "README.md".
func MarkdownName(filename string) string {
	return stem(filename) + ".md"
}

func stem(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 || i == len(filename)-1 {
		return filename
	}
	if strings.Contains(filename[i+1:], "/") {
		return filename
	}
	return filename[:i]
}

// Options controls how Save writes a result.
type Options struct {
	// Frontmatter prepends a YAML header naming the source file.
	Frontmatter bool

	// Now is the timestamp written into the frontmatter. Zero means
	// time.Now().
	Now time.Time
}

// frontmatter is the YAML header written when Options.Frontmatter is set.
type frontmatter struct {
	SourceFile  string `yaml:"source_file"`
	ConvertedAt string `yaml:"converted_at"`
}

// Save writes content to dir/<stem>.md and returns the path written.
// The file is staged in a temporary file in dir and renamed into place;
// the temporary file is removed on every path out of Save.
func Save(dir, filename, content string, opts Options) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	name := filepath.Base(MarkdownName(filename))
	outPath := filepath.Join(dir, name)

	body := content
	if opts.Frontmatter {
		header, err := renderFrontmatter(filename, opts.Now)
		if err != nil {
			return "", err
		}
		body = header + content
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("setting mode on %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return "", fmt.Errorf("saving %s: %w", outPath, err)
	}
	return outPath, nil
}

func renderFrontmatter(filename string, now time.Time) (string, error) {
	if now.IsZero() {
		now = time.Now()
	}
	data, err := yaml.Marshal(frontmatter{
		SourceFile:  filename,
		ConvertedAt: now.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}
	return "---\n" + string(data) + "---\n\n", nil
}

// Write serves content as a browser download named <stem>.md.
func Write(w http.ResponseWriter, filename, content string) {
	disposition := mime.FormatMediaType("attachment", map[string]string{
		"filename": filepath.Base(MarkdownName(filename)),
	})
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(content))
}
