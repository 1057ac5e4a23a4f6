// pkg/build/orchestrator.go
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/effect-native/libsqlite/internal/logger"
	"github.com/effect-native/libsqlite/pkg/backend"
	"github.com/effect-native/libsqlite/pkg/core"
	"github.com/effect-native/libsqlite/pkg/nix"
	"github.com/effect-native/libsqlite/pkg/platform"
)

// DefaultConcurrency bounds simultaneous backend invocations
const DefaultConcurrency = 2

// Options configures an Orchestrator
type Options struct {
	// Library is the bare library name, "sqlite3" for libsqlite3
	Library string

	// DestDir receives the canonically named artifacts (dist/lib)
	DestDir string

	// Concurrency is the maximum number of targets built at once.
	// Zero means DefaultConcurrency
	Concurrency int

	// Logger receives per-target progress; nil discards
	Logger *slog.Logger
}

// Orchestrator builds a set of platform targets through a Backend and
// collects one artifact per target
type Orchestrator struct {
	backend     backend.Backend
	library     string
	destDir     string
	concurrency int
	logger      *slog.Logger
}

// New creates an Orchestrator
func New(b backend.Backend, opts Options) *Orchestrator {
	o := &Orchestrator{
		backend:     b,
		library:     opts.Library,
		destDir:     opts.DestDir,
		concurrency: opts.Concurrency,
		logger:      opts.Logger,
	}
	if o.library == "" {
		o.library = "sqlite3"
	}
	if o.concurrency <= 0 {
		o.concurrency = DefaultConcurrency
	}
	if o.logger == nil {
		o.logger = logger.Discard()
	}
	return o
}

// BuildAll builds every target and reports what happened to each one.
// A failing target never stops the others; BuildAll itself cannot fail.
// Outcomes are stored in the same order as targets
func (o *Orchestrator) BuildAll(ctx context.Context, targets []platform.Target) *Report {
	report := &Report{Outcomes: make([]Outcome, len(targets))}
	for i, t := range targets {
		report.Outcomes[i] = Outcome{Target: t, State: Pending}
	}

	o.logger.Info("building libraries", "targets", len(targets), "concurrency", o.concurrency, "backend", o.backend.Name())

	var g errgroup.Group
	g.SetLimit(o.concurrency)

	for i := range targets {
		g.Go(func() error {
			// Each goroutine owns exactly one slot of report.Outcomes
			out := &report.Outcomes[i]
			out.State = Building

			res, err := o.buildTarget(ctx, out.Target)
			if err != nil {
				out.State = Failed
				out.Err = err
				o.logger.Warn("skipping target", "system", out.Target.System, "err", err)
				return nil
			}

			out.State = Succeeded
			out.Result = res
			o.logger.Info("built library", "file", res.FileName, "target", out.Target.Description)
			return nil
		})
	}

	// Workers never return errors
	_ = g.Wait()

	o.logger.Info(fmt.Sprintf("built %d/%d platform libraries", report.Succeeded(), report.Total()))
	return report
}

// buildTarget walks one target through build, evaluate, select and copy
func (o *Orchestrator) buildTarget(ctx context.Context, t platform.Target) (*BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.TargetError("build", t.System, err)
	}

	o.logger.Info("building target", "system", t.System, "target", t.Description)

	if err := o.backend.Build(ctx, t.System); err != nil {
		return nil, core.TargetError("build", t.System, err)
	}

	outDir, err := o.backend.Evaluate(ctx, t.System)
	if err != nil {
		return nil, core.TargetError("evaluate", t.System, err)
	}

	libDir := nix.LibDir(outDir)
	entries, err := os.ReadDir(libDir)
	if err != nil {
		return nil, core.TargetError("select", t.System, fmt.Errorf("reading %s: %w", libDir, err))
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	selected, ok := SelectArtifact(names, o.library, t.Extension())
	if !ok {
		return nil, core.TargetError("select", t.System, fmt.Errorf("no library file found in %s", libDir))
	}

	src := filepath.Join(libDir, selected)
	fileName := t.FileName(o.library)
	dst := filepath.Join(o.destDir, fileName)

	if err := CopyFile(src, dst); err != nil {
		return nil, core.TargetError("copy", t.System, fmt.Errorf("%s -> %s: %w", src, dst, err))
	}

	return &BuildResult{
		Target:   t,
		FileName: fileName,
		Path:     dst,
		Source:   src,
	}, nil
}
