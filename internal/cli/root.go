// internal/cli/root.go
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/effect-native/libsqlite/internal/logger"
	"github.com/effect-native/libsqlite/pkg/backend"
	"github.com/effect-native/libsqlite/pkg/core"
)

// Version is set at link time.
var Version = "0.1.0"

// app carries state shared by the libsqlite subcommands.
type app struct {
	cfgFile string
	logFile string
	debug   bool

	config *core.Config
	logger *slog.Logger

	// newBackend creates the build backend for a run
	newBackend func(cfg *core.Config, logger *slog.Logger) backend.Backend
}

func nixBackend(cfg *core.Config, logger *slog.Logger) backend.Backend {
	return backend.NewNixBackend(&backend.Config{
		FlakeRef: cfg.FlakeRef(),
		Logger:   logger,
	})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "libsqlite",
		Short: "Build and package SQLite shared libraries",
		Long: `libsqlite - cross-platform SQLite library builder

Builds libsqlite3 for every supported platform with Nix, collects the
results under canonical names and packages them with a runtime resolver.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", core.DefaultConfigPath, "config file")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "also write JSON logs to this file")

	// Add commands
	rootCmd.AddCommand(newBuildCmd(a))
	rootCmd.AddCommand(newPathCmd(a))
	rootCmd.AddCommand(newTargetsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup loads the configuration and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	config, err := core.LoadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	if a.debug {
		config.Debug = true
	}
	a.config = config

	level := "info"
	if config.Debug {
		level = "debug"
	}
	a.logger = logger.New(logger.Options{
		Level:   level,
		File:    a.logFile,
		Console: cmd.ErrOrStderr(),
	})
	return nil
}

// Execute runs the libsqlite command tree. Interrupts cancel in-flight builds.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{newBackend: nixBackend}
	err := newRootCmd(a).ExecuteContext(ctx)
	_ = logger.Close(a.logger)
	return err
}
