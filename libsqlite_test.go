package libsqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("lib"), 0o644))
	return path
}

func TestResolve_DarwinArm64ExactMatch(t *testing.T) {
	t.Setenv(EnvPath, "")
	dir := t.TempDir()
	want := touch(t, filepath.Join(dir, "libsqlite3-darwin-aarch64.dylib"))

	got, err := Resolve("darwin", "arm64", dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolve_NotFound(t *testing.T) {
	t.Setenv(EnvPath, "")
	_, err := Resolve("linux", "amd64", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArtifactNotFound))
	assert.Contains(t, err.Error(), "libsqlite3-linux-x86_64.so")

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "linux", nf.Platform)
}

func TestResolve_BakedPathHasPriority(t *testing.T) {
	t.Setenv(EnvPath, "")
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "libsqlite3-linux-x86_64.so"))
	baked := touch(t, filepath.Join(t.TempDir(), "store", "libsqlite3.so"))

	old := BakedPath
	BakedPath = baked
	t.Cleanup(func() { BakedPath = old })

	got, err := Resolve("linux", "amd64", dir)
	require.NoError(t, err)
	assert.Equal(t, baked, got)
}

func TestResolve_MissingBakedPathFallsThrough(t *testing.T) {
	t.Setenv(EnvPath, "")
	dir := t.TempDir()
	want := touch(t, filepath.Join(dir, "libsqlite3-linux-aarch64.so"))

	old := BakedPath
	BakedPath = filepath.Join(dir, "gone", "libsqlite3.so")
	t.Cleanup(func() { BakedPath = old })

	got, err := Resolve("linux", "aarch64", dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolve_EnvPathOverride(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "libsqlite3-darwin-x86_64.dylib"))
	override := touch(t, filepath.Join(t.TempDir(), "custom.dylib"))
	t.Setenv(EnvPath, override)

	got, err := Resolve("darwin", "amd64", dir)
	require.NoError(t, err)
	assert.Equal(t, override, got)
}

func TestDefaultLibDir(t *testing.T) {
	t.Setenv(EnvLibDir, "/opt/libsqlite/lib")
	assert.Equal(t, "/opt/libsqlite/lib", DefaultLibDir())

	t.Setenv(EnvLibDir, "")
	assert.Equal(t, "lib", filepath.Base(DefaultLibDir()))
}

func TestPackagedPlatforms(t *testing.T) {
	old := Platforms
	t.Cleanup(func() { Platforms = old })

	Platforms = "linux-x86_64, darwin-aarch64,,"
	assert.Equal(t, []string{"linux-x86_64", "darwin-aarch64"}, packagedPlatforms())

	Platforms = ""
	assert.Nil(t, packagedPlatforms())
}

func TestLibraryPath_Idempotent(t *testing.T) {
	path1, err1 := LibraryPath()
	path2, err2 := LibraryPath()

	assert.Equal(t, path1, path2)
	assert.Equal(t, err1, err2)
	if err1 != nil {
		assert.True(t, errors.Is(err1, ErrArtifactNotFound))
	}
}

func TestResolve_NotFoundListsInstalledPlatforms(t *testing.T) {
	t.Setenv(EnvPath, "")
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "libsqlite3-linux-x86_64.so"))
	touch(t, filepath.Join(dir, "libsqlite3-linux-aarch64.so"))

	_, err := Resolve("darwin", "arm64", dir)
	require.Error(t, err)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"linux-x86_64", "linux-aarch64"}, nf.Available)
	assert.Contains(t, err.Error(), "Available platforms: linux-x86_64, linux-aarch64.")
}

func TestResolve_LinkedPlatformsWin(t *testing.T) {
	t.Setenv(EnvPath, "")
	old := Platforms
	Platforms = "darwin-x86_64"
	t.Cleanup(func() { Platforms = old })

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "libsqlite3-linux-x86_64.so"))

	_, err := Resolve("darwin", "arm64", dir)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"darwin-x86_64"}, nf.Available)
}
