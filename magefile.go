//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir = "bin"
	module = "github.com/effect-native/libsqlite"
)

var Default = Build

func ldflags() string {
	version := os.Getenv("LIBSQLITE_VERSION")
	if version == "" {
		version = "dev"
	}
	flags := fmt.Sprintf("-s -w -X %s/internal/cli.Version=%s", module, version)
	if baked := os.Getenv("LIBSQLITE_BAKED_PATH"); baked != "" {
		flags += fmt.Sprintf(" -X %s.BakedPath=%s", module, baked)
	}
	return flags
}

// Build compiles the libsqlite and sqlite-lib-path binaries into bin/.
func Build() error {
	for _, name := range []string{"libsqlite", "sqlite-lib-path"} {
		out := filepath.Join(binDir, name)
		if err := sh.RunV("go", "build", "-ldflags", ldflags(), "-o", out, "./cmd/"+name); err != nil {
			return err
		}
	}
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Dist builds every platform library and writes the package and archive.
func Dist() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, "libsqlite"), "build", "--archive")
}

// Clean removes build outputs.
func Clean() error {
	for _, dir := range []string{binDir, "dist"} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}
