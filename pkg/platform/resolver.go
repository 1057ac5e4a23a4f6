// pkg/platform/resolver.go
package platform

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/effect-native/libsqlite/pkg/core"
)

// Resolver finds the shared library file matching a host platform inside a
// library directory. Candidates are probed in precedence order and the first
// one that exists wins.
type Resolver struct {
	// Library is the bare library name, "sqlite3" for libsqlite3
	Library string

	// LibDir is the directory holding the packaged artifacts
	LibDir string

	// Preferred paths are probed before anything in LibDir; empty entries are skipped
	Preferred []string

	// Available lists the platforms that were packaged, for diagnostics only
	Available []string

	// Prober checks existence; nil means the real filesystem
	Prober Prober
}

// NotFoundError is returned when no candidate exists
type NotFoundError struct {
	Platform  string
	Arch      string
	Expected  string
	Available []string
	Supported []string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "SQLite library not found for %s/%s. Expected: %s.", e.Platform, e.Arch, e.Expected)
	if len(e.Available) > 0 {
		fmt.Fprintf(&b, " Available platforms: %s.", strings.Join(e.Available, ", "))
	}
	if len(e.Supported) > 0 {
		fmt.Fprintf(&b, " This package supports: %s", strings.Join(e.Supported, ", "))
	}
	return b.String()
}

// Is makes NotFoundError match core.ErrArtifactNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == core.ErrArtifactNotFound
}

// Candidates returns the ordered, de-duplicated list of absolute paths probed
// for the platform:
//
//  1. preferred paths
//  2. lib<name>-<os>-<arch>.<ext>
//  3. lib<name>.<ext>
//  4. lib<name>.dylib, then lib<name>.so, whatever the host
func (r *Resolver) Candidates(p Platform) ([]string, error) {
	libDir, err := filepath.Abs(r.LibDir)
	if err != nil {
		return nil, fmt.Errorf("resolving library directory: %w", err)
	}

	var out []string
	add := func(path string) {
		if path == "" || contains(out, path) {
			return
		}
		out = append(out, path)
	}

	for _, pref := range r.Preferred {
		if pref == "" {
			continue
		}
		abs, err := filepath.Abs(pref)
		if err != nil {
			return nil, fmt.Errorf("resolving preferred path %s: %w", pref, err)
		}
		add(abs)
	}

	// TODO: the cross-platform fallbacks below let a darwin host pick up a .so
	// (and linux a .dylib); drop them once every consumer ships exact names.
	add(filepath.Join(libDir, p.FileName(r.Library)))
	add(filepath.Join(libDir, fmt.Sprintf("lib%s.%s", r.Library, p.Extension())))
	add(filepath.Join(libDir, fmt.Sprintf("lib%s.dylib", r.Library)))
	add(filepath.Join(libDir, fmt.Sprintf("lib%s.so", r.Library)))

	return out, nil
}

// Resolve normalizes the raw host names and resolves the library path
func (r *Resolver) Resolve(goos, goarch string) (string, error) {
	return r.ResolvePlatform(Normalize(goos, goarch))
}

// ResolvePlatform returns the first existing candidate for an already
// normalized platform, or a *NotFoundError.
func (r *Resolver) ResolvePlatform(p Platform) (string, error) {
	candidates, err := r.Candidates(p)
	if err != nil {
		return "", err
	}

	prober := r.Prober
	if prober == nil {
		prober = OSProber{}
	}

	for _, candidate := range candidates {
		if prober.Exists(candidate) {
			return candidate, nil
		}
	}

	return "", &NotFoundError{
		Platform:  p.OS,
		Arch:      p.Arch,
		Expected:  p.FileName(r.Library),
		Available: r.Available,
		Supported: Descriptions(Targets),
	}
}
