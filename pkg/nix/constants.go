// constants.go
package nix

const (
	// DefaultCommand is the nix executable looked up in PATH
	DefaultCommand = "nix"

	// LibSubdir is the output subdirectory holding shared libraries
	LibSubdir = "lib"
)
