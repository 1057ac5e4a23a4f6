// store.go
package nix

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	znix "zombiezen.com/go/nix"
)

// ParseOutputPath validates the raw output of `nix eval --raw` and returns the
// cleaned store path it names.
func ParseOutputPath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("empty store path")
	}

	storePath, err := znix.ParseStorePath(path.Clean(trimmed))
	if err != nil {
		return "", fmt.Errorf("parsing store path %q: %w", trimmed, err)
	}

	return string(storePath), nil
}

// LibDir returns the directory of an output that holds its shared libraries
func LibDir(outputPath string) string {
	return filepath.Join(outputPath, LibSubdir)
}
