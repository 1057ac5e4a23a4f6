// internal/cli/build.go
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/effect-native/libsqlite/pkg/build"
	"github.com/effect-native/libsqlite/pkg/pack"
	"github.com/effect-native/libsqlite/pkg/platform"
)

func newBuildCmd(a *app) *cobra.Command {
	var (
		concurrency int
		distDir     string
		archive     bool
		bakedPath   string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build every target and package the results",
		Long: `Build libsqlite3 for all supported platforms, copy the libraries into
<dist>/lib under canonical names and write the package around them.

Targets that fail are reported and left out; the command still succeeds as long
as packaging does. Re-run to retry missing targets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config
			flags := cmd.Flags()
			if flags.Changed("concurrency") {
				cfg.Concurrency = concurrency
			}
			if flags.Changed("dist") {
				cfg.DistDir = distDir
			}
			if flags.Changed("archive") {
				cfg.Archive = archive
			}
			if flags.Changed("baked-path") {
				cfg.BakedPath = bakedPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return a.runBuild(cmd)
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", build.DefaultConcurrency, "maximum targets built at once")
	cmd.Flags().StringVar(&distDir, "dist", "dist", "distribution directory")
	cmd.Flags().BoolVar(&archive, "archive", false, "also write a .tar.xz of the distribution")
	cmd.Flags().StringVar(&bakedPath, "baked-path", "", "library path probed before the bundled ones")

	return cmd
}

func (a *app) runBuild(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := a.config
	start := time.Now()

	lock, err := build.AcquireLock(ctx, cfg.DistDir, a.logger)
	if err != nil {
		return err
	}
	defer lock.Release()

	packager := pack.New(pack.Options{
		DistDir:   cfg.DistDir,
		Library:   cfg.Library,
		BakedPath: cfg.BakedPath,
		Package:   cfg.Package,
		Targets:   platform.Targets,
		Logger:    a.logger,
	})
	if err := packager.Prepare(); err != nil {
		return err
	}

	b := a.newBackend(cfg, a.logger)
	if checker, ok := b.(interface{ CheckTools() error }); ok {
		if err := checker.CheckTools(); err != nil {
			a.logger.Warn("build backend unavailable, every target will fail", "backend", b.Name(), "err", err)
		}
	}

	orchestrator := build.New(b, build.Options{
		Library:     cfg.Library,
		DestDir:     packager.LibDir(),
		Concurrency: cfg.Concurrency,
		Logger:      a.logger,
	})
	report := orchestrator.BuildAll(ctx, platform.Targets)

	if err := packager.Write(report); err != nil {
		return err
	}

	var (
		archivePath    string
		archiveEntries int
	)
	if cfg.Archive {
		archivePath = packager.ArchivePath()
		if err := packager.Archive(archivePath); err != nil {
			return err
		}
		entries, err := pack.ListArchive(archivePath)
		if err != nil {
			return fmt.Errorf("verifying archive: %w", err)
		}
		archiveEntries = len(entries)
	}

	contents, err := packager.Contents()
	if err != nil {
		return fmt.Errorf("listing package: %w", err)
	}

	printBuildSummary(cmd.OutOrStdout(), buildSummary{
		Report:   report,
		DistDir:  packager.DistDir(),
		Contents: contents,
		Archive:  archivePath,
		Entries:  archiveEntries,
		Elapsed:  time.Since(start),
	})
	return nil
}
