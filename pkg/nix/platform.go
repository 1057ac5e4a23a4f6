// platform.go
package nix

import (
	"fmt"

	"github.com/effect-native/libsqlite/pkg/core"
	"github.com/effect-native/libsqlite/pkg/platform"
)

// System represents a Nix system double such as "aarch64-darwin"
type System string

const (
	SystemX8664Linux    System = "x86_64-linux"
	SystemAarch64Linux  System = "aarch64-linux"
	SystemX8664Darwin   System = "x86_64-darwin"
	SystemAarch64Darwin System = "aarch64-darwin"
)

// AllSystems contains the systems libsqlite is built for
var AllSystems = []System{
	SystemX8664Linux,
	SystemAarch64Linux,
	SystemX8664Darwin,
	SystemAarch64Darwin,
}

// SystemFor returns the Nix system of a normalized platform
func SystemFor(p platform.Platform) System {
	return System(p.Arch + "-" + p.OS)
}

// DetectSystem returns the Nix system of the running process
func DetectSystem() System {
	return SystemFor(platform.Detect())
}

// Platform returns the platform a system builds for
func (s System) Platform() (platform.Platform, error) {
	t, ok := platform.Lookup(string(s))
	if !ok {
		return platform.Platform{}, fmt.Errorf("%w: %s", core.ErrUnsupportedSystem, s)
	}
	return t.Platform, nil
}

// String returns the string representation of the system
func (s System) String() string {
	return string(s)
}

// IsValid checks if the system is one of AllSystems
func (s System) IsValid() bool {
	for _, valid := range AllSystems {
		if s == valid {
			return true
		}
	}
	return false
}
