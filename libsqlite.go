// libsqlite.go
package libsqlite

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/effect-native/libsqlite/pkg/platform"
)

// Build-time values, set with
//
//	-ldflags "-X github.com/effect-native/libsqlite.BakedPath=/nix/store/...-sqlite/lib/libsqlite3.so"
var (
	// BakedPath is probed before anything else when non-empty.
	BakedPath string

	// Platforms is the comma-separated list of packaged platforms ("linux-x86_64,...")
	// named in resolution errors. When empty, the library directory is listed instead.
	Platforms string
)

const (
	// Library is the bare name of the distributed library.
	Library = "sqlite3"

	// EnvLibDir overrides the directory holding the packaged libraries.
	EnvLibDir = "LIBSQLITE_LIB_DIR"

	// EnvPath names an explicit library file, probed before BakedPath.
	EnvPath = "LIBSQLITE_PATH"
)

// Re-exported types
type (
	Platform      = platform.Platform
	Target        = platform.Target
	NotFoundError = platform.NotFoundError
)

// Targets is the fixed set of platforms the library is built for.
var Targets = platform.Targets

// DefaultLibDir returns $LIBSQLITE_LIB_DIR, or the lib directory next to the
// directory holding the running executable (<prefix>/bin/x -> <prefix>/lib).
func DefaultLibDir() string {
	if dir := os.Getenv(EnvLibDir); dir != "" {
		return dir
	}

	exe, err := os.Executable()
	if err != nil {
		return "lib"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(filepath.Dir(exe)), "lib")
}

// Resolve finds the library for the given raw host names inside libDir.
// $LIBSQLITE_PATH and BakedPath, when set, are probed first.
func Resolve(goos, goarch, libDir string) (string, error) {
	path, err := newResolver(libDir).Resolve(goos, goarch)

	var nf *NotFoundError
	if errors.As(err, &nf) && len(nf.Available) == 0 {
		// Only looked at once resolution has already failed.
		nf.Available = installedPlatforms(libDir)
	}
	return path, err
}

// installedPlatforms returns "<os>-<arch>" for every target whose canonical
// library file is present in libDir.
func installedPlatforms(libDir string) []string {
	var out []string
	for _, t := range platform.Targets {
		if (platform.OSProber{}).Exists(filepath.Join(libDir, t.FileName(Library))) {
			out = append(out, t.Platform.String())
		}
	}
	return out
}

func newResolver(libDir string) *platform.Resolver {
	return &platform.Resolver{
		Library:   Library,
		LibDir:    libDir,
		Preferred: []string{os.Getenv(EnvPath), BakedPath},
		Available: packagedPlatforms(),
	}
}

func packagedPlatforms() []string {
	var out []string
	for _, p := range strings.Split(Platforms, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var libraryPath = sync.OnceValues(func() (string, error) {
	return Resolve(runtime.GOOS, runtime.GOARCH, DefaultLibDir())
})

// LibraryPath returns the library path for the running host. The first call
// resolves it; every later call returns the same path or the same error.
func LibraryPath() (string, error) {
	return libraryPath()
}
