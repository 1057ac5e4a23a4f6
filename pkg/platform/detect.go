// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"
)

// Supported operating system families
const (
	Linux  = "linux"
	Darwin = "darwin"
)

// Supported architectures, in Nix naming
const (
	X8664   = "x86_64"
	Aarch64 = "aarch64"
)

// Platform is a normalized host operating system and architecture pair
type Platform struct {
	OS   string // linux, darwin
	Arch string // x86_64, aarch64
}

// Detect returns the normalized platform of the running process
func Detect() Platform {
	return Normalize(runtime.GOOS, runtime.GOARCH)
}

// Normalize maps raw operating system and architecture names onto the two
// supported families. Anything that is not a 64-bit ARM identifier becomes
// x86_64, anything that is not macOS becomes linux.
func Normalize(goos, goarch string) Platform {
	p := Platform{OS: Linux, Arch: X8664}
	if goos == Darwin {
		p.OS = Darwin
	}
	switch goarch {
	case "arm64", Aarch64:
		p.Arch = Aarch64
	}
	return p
}

// Extension returns the shared library file extension for the platform
func (p Platform) Extension() string {
	if p.OS == Darwin {
		return "dylib"
	}
	return "so"
}

// FileName returns the canonical artifact name lib<name>-<os>-<arch>.<ext>
func (p Platform) FileName(library string) string {
	return fmt.Sprintf("lib%s-%s-%s.%s", library, p.OS, p.Arch, p.Extension())
}

// String returns a string representation of the platform
func (p Platform) String() string {
	return p.OS + "-" + p.Arch
}
