// pkg/backend/types.go
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/effect-native/libsqlite/pkg/nix"
)

// BackendType represents the external build tool
type BackendType string

const (
	// BackendNix builds through `nix build` / `nix eval`
	BackendNix BackendType = "nix"
)

// Backend is the narrow contract the orchestrator needs from an external
// build tool. Implementations must be safe for concurrent use.
type Backend interface {
	// Build builds the library for the given system identifier
	Build(ctx context.Context, system string) error

	// Evaluate returns the output directory of an already built system
	Evaluate(ctx context.Context, system string) (string, error)

	// Name returns the name of the backend
	Name() string
}

// Config holds configuration for a build backend
type Config struct {
	// Command is the executable to run, default "nix"
	Command string

	// FlakeRef is the installable to build, e.g. ".#libsqlite3"
	FlakeRef string

	// Dir is the working directory commands run in
	Dir string

	// Runner executes commands; nil uses os/exec
	Runner CommandRunner

	// Logger for command tracing; nil discards
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Command:  nix.DefaultCommand,
		FlakeRef: ".#libsqlite3",
		Dir:      ".",
	}
}

// New creates the backend of the given type
func New(backendType BackendType, config *Config) (Backend, error) {
	switch backendType {
	case BackendNix:
		return NewNixBackend(config), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", backendType)
	}
}
