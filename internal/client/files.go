// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/mdconvert/pkg/types"
)

// FilesFromPaths reads each path into the selected file set. The part
// filename is the base name, so the service keys results by it.
// Directories are rejected.
func FilesFromPaths(paths []string) ([]types.File, error) {
	files := make([]types.File, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", p)
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, types.File{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}
