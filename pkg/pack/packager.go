// pkg/pack/packager.go
package pack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/effect-native/libsqlite/internal/logger"
	"github.com/effect-native/libsqlite/pkg/build"
	"github.com/effect-native/libsqlite/pkg/core"
	"github.com/effect-native/libsqlite/pkg/platform"
)

const (
	// LibSubdir holds the built libraries inside the distribution
	LibSubdir = "lib"

	// BinName is the thin resolver CLI exposed by the package
	BinName = "sqlite-lib-path"

	entryFile = "index.js"
	typesFile = "index.d.ts"
	binFile   = "bin/" + BinName + ".js"
	manifest  = "package.json"
	readme    = "README.md"
)

// Options configures a Packager
type Options struct {
	DistDir   string
	Library   string
	BakedPath string
	Package   core.PackageConfig
	Targets   []platform.Target // supported set, listed in resolution errors
	Logger    *slog.Logger
}

// Packager lays out the distribution directory around the built libraries
type Packager struct {
	distDir   string
	library   string
	bakedPath string
	pkg       core.PackageConfig
	targets   []platform.Target
	logger    *slog.Logger
}

// New creates a Packager
func New(opts Options) *Packager {
	p := &Packager{
		distDir:   opts.DistDir,
		library:   opts.Library,
		bakedPath: opts.BakedPath,
		pkg:       opts.Package,
		targets:   opts.Targets,
		logger:    opts.Logger,
	}
	if p.distDir == "" {
		p.distDir = "dist"
	}
	if p.library == "" {
		p.library = "sqlite3"
	}
	if p.targets == nil {
		p.targets = platform.Targets
	}
	if p.logger == nil {
		p.logger = logger.Discard()
	}
	return p
}

// DistDir returns the distribution root
func (p *Packager) DistDir() string {
	return p.distDir
}

// LibDir returns the directory the orchestrator copies libraries into
func (p *Packager) LibDir() string {
	return filepath.Join(p.distDir, LibSubdir)
}

// Prepare removes any previous distribution and recreates an empty lib directory
func (p *Packager) Prepare() error {
	p.logger.Info("cleaning distribution directory", "path", p.distDir)

	if err := os.RemoveAll(p.distDir); err != nil {
		return core.PackagingError("prepare", fmt.Errorf("removing %s: %w", p.distDir, err))
	}
	if err := os.MkdirAll(p.LibDir(), 0o755); err != nil {
		return core.PackagingError("prepare", fmt.Errorf("creating %s: %w", p.LibDir(), err))
	}
	return nil
}

// Write generates everything around the libraries: the entry module and its
// type declarations, the CLI script, the manifest and the README. Any failure
// is fatal since the package would be unusable
func (p *Packager) Write(report *build.Report) error {
	results := report.Results()

	if err := p.writeEntry(report.Platforms()); err != nil {
		return err
	}
	if err := p.writeBin(); err != nil {
		return err
	}
	if err := p.writeManifest(results); err != nil {
		return err
	}
	if err := p.copyReadme(); err != nil {
		return err
	}

	p.logger.Info("package written", "path", p.distDir, "libraries", len(results))
	return nil
}

func (p *Packager) writeEntry(available []string) error {
	p.logger.Debug("generating entry module", "file", entryFile)

	data := entryData{
		Library:   p.library,
		Available: append([]string{}, available...),
		Supported: platform.Descriptions(p.targets),
	}
	if p.bakedPath != "" {
		baked := p.bakedPath
		data.BakedPath = &baked
	}

	if err := p.render(entryFile, "index.js.tmpl", data, 0o644); err != nil {
		return core.PackagingError("index", err)
	}
	if err := p.render(typesFile, "index.d.ts.tmpl", data, 0o644); err != nil {
		return core.PackagingError("index", err)
	}
	return nil
}

func (p *Packager) writeBin() error {
	p.logger.Debug("generating bin script", "file", binFile)

	if err := p.render(binFile, "sqlite-lib-path.js.tmpl", nil, 0o755); err != nil {
		return core.PackagingError("bin", err)
	}
	return nil
}

// render executes a template into a file under the distribution root
func (p *Packager) render(rel, name string, data any, perm os.FileMode) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}

	path := filepath.Join(p.distDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file and is subject to umask
	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}

// Manifest builds the distributed package.json from the base manifest (if
// any) and the built libraries
func (p *Packager) Manifest(results []build.BuildResult) (map[string]any, error) {
	pkg := map[string]any{}

	if p.pkg.Manifest != "" {
		data, err := os.ReadFile(p.pkg.Manifest)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, &pkg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", p.pkg.Manifest, err)
			}
		case errors.Is(err, os.ErrNotExist):
			p.logger.Debug("no base manifest, starting empty", "path", p.pkg.Manifest)
		default:
			return nil, fmt.Errorf("reading %s: %w", p.pkg.Manifest, err)
		}
	}

	name := p.pkg.Name
	if base, ok := pkg["name"].(string); ok && base != "" && name == "" {
		name = base
	}
	if name == "" {
		return nil, errors.New("package name is empty")
	}
	pkg["name"] = name
	if p.pkg.Version != "" {
		pkg["version"] = p.pkg.Version
	}
	if p.pkg.Description != "" {
		pkg["description"] = p.pkg.Description
	}

	// The generated entry and bin scripts are ES modules
	pkg["type"] = "module"
	pkg["main"] = entryFile
	pkg["types"] = typesFile
	pkg["bin"] = map[string]string{
		name:    "./" + binFile,
		BinName: "./" + binFile,
	}
	pkg["files"] = []string{entryFile, typesFile, LibSubdir + "/", "bin/", readme}
	pkg["dependencies"] = map[string]string{}
	pkg["devDependencies"] = map[string]string{}
	pkg["scripts"] = map[string]string{
		"postinstall": fmt.Sprintf("echo 'SQLite libraries ready! Use: import { getLibraryPath } from %s'", name),
	}

	artifacts := make([]string, 0, len(results))
	for _, r := range results {
		artifacts = append(artifacts, LibSubdir+"/"+r.FileName)
	}
	sort.Strings(artifacts)
	pkg["artifacts"] = artifacts

	return pkg, nil
}

func (p *Packager) writeManifest(results []build.BuildResult) error {
	p.logger.Debug("generating manifest", "file", manifest)

	pkg, err := p.Manifest(results)
	if err != nil {
		return core.PackagingError("manifest", err)
	}

	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return core.PackagingError("manifest", fmt.Errorf("encoding: %w", err))
	}
	data = append(data, '\n')

	path := filepath.Join(p.distDir, manifest)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return core.PackagingError("manifest", fmt.Errorf("writing %s: %w", path, err))
	}
	return nil
}

func (p *Packager) copyReadme() error {
	if p.pkg.Readme == "" {
		return nil
	}
	if _, err := os.Stat(p.pkg.Readme); errors.Is(err, os.ErrNotExist) {
		p.logger.Warn("README not found, package will ship without it", "path", p.pkg.Readme)
		return nil
	}

	if err := build.CopyFile(p.pkg.Readme, filepath.Join(p.distDir, readme)); err != nil {
		return core.PackagingError("readme", err)
	}
	return nil
}

// Contents lists the top-level entries of the distribution directory, sorted
func (p *Packager) Contents() ([]string, error) {
	entries, err := os.ReadDir(p.distDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.distDir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return names, nil
}
