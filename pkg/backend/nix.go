// pkg/backend/nix.go
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/effect-native/libsqlite/internal/logger"
	"github.com/effect-native/libsqlite/pkg/core"
	"github.com/effect-native/libsqlite/pkg/nix"
)

// NixBackend implements the Backend interface for Nix
type NixBackend struct {
	command  string
	flakeRef string
	dir      string
	runner   CommandRunner
	logger   *slog.Logger
}

// NewNixBackend creates a new Nix backend
func NewNixBackend(config *Config) *NixBackend {
	if config == nil {
		config = DefaultConfig()
	}

	defaults := DefaultConfig()
	b := &NixBackend{
		command:  config.Command,
		flakeRef: config.FlakeRef,
		dir:      config.Dir,
		runner:   config.Runner,
		logger:   config.Logger,
	}
	if b.command == "" {
		b.command = defaults.Command
	}
	if b.flakeRef == "" {
		b.flakeRef = defaults.FlakeRef
	}
	if b.dir == "" {
		b.dir = defaults.Dir
	}
	if b.runner == nil {
		b.runner = ExecRunner{}
	}
	if b.logger == nil {
		b.logger = logger.Discard()
	}

	return b
}

// Build runs `nix build --system <system> <flake> --no-link`
func (b *NixBackend) Build(ctx context.Context, system string) error {
	if _, err := nix.System(system).Platform(); err != nil {
		return fmt.Errorf("nix build: %w", err)
	}

	args := []string{"build", "--system", system, b.flakeRef, "--no-link"}
	b.logger.Debug("running nix", "args", args)

	if _, err := b.runner.Run(ctx, b.dir, b.command, args...); err != nil {
		return fmt.Errorf("nix build for %s: %w", system, err)
	}
	return nil
}

// Evaluate runs `nix eval --system <system> <flake> --raw` and returns the store path
func (b *NixBackend) Evaluate(ctx context.Context, system string) (string, error) {
	if !nix.System(system).IsValid() {
		return "", fmt.Errorf("nix eval: %w: %s", core.ErrUnsupportedSystem, system)
	}

	args := []string{"eval", "--system", system, b.flakeRef, "--raw"}
	b.logger.Debug("running nix", "args", args)

	out, err := b.runner.Run(ctx, b.dir, b.command, args...)
	if err != nil {
		return "", fmt.Errorf("nix eval for %s: %w", system, err)
	}

	storePath, err := nix.ParseOutputPath(string(out))
	if err != nil {
		return "", fmt.Errorf("nix eval for %s: %w", system, err)
	}

	b.logger.Debug("evaluated store path", "system", system, "path", storePath)
	return storePath, nil
}

// CheckTools verifies the nix executable is available
func (b *NixBackend) CheckTools() error {
	return CheckCommand(b.command)
}

// Name returns the backend name
func (b *NixBackend) Name() string {
	return string(BackendNix)
}
