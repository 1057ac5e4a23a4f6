// pkg/platform/targets.go
package platform

// Target describes one platform the library is cross-built for
type Target struct {
	System      string // Build system identifier, e.g. "aarch64-darwin"
	Platform    Platform
	Description string
}

// Targets is the fixed set of supported build targets
var Targets = []Target{
	{
		System:      "x86_64-linux",
		Platform:    Platform{OS: Linux, Arch: X8664},
		Description: "Intel/AMD Linux (Docker, most servers)",
	},
	{
		System:      "aarch64-linux",
		Platform:    Platform{OS: Linux, Arch: Aarch64},
		Description: "ARM64 Linux (Raspberry Pi 4+, AWS Graviton)",
	},
	{
		System:      "x86_64-darwin",
		Platform:    Platform{OS: Darwin, Arch: X8664},
		Description: "Intel Mac",
	},
	{
		System:      "aarch64-darwin",
		Platform:    Platform{OS: Darwin, Arch: Aarch64},
		Description: "Apple Silicon Mac (M1/M2/M3)",
	},
}

// Extension returns the shared library extension produced for the target
func (t Target) Extension() string {
	return t.Platform.Extension()
}

// FileName returns the canonical destination file name for the target
func (t Target) FileName(library string) string {
	return t.Platform.FileName(library)
}

// Lookup returns the target with the given build system identifier
func Lookup(system string) (Target, bool) {
	for _, t := range Targets {
		if t.System == system {
			return t, true
		}
	}
	return Target{}, false
}

// Descriptions returns the human descriptions of the given targets in order
func Descriptions(targets []Target) []string {
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		out = append(out, t.Description)
	}
	return out
}
