package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/effect-native/libsqlite/pkg/core"
	"github.com/effect-native/libsqlite/pkg/platform"
)

// fakeBackend serves prepared output directories per system.
type fakeBackend struct {
	outputs  map[string]string // system -> output dir
	failOn   map[string]error  // system -> Build error
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32

	mu    sync.Mutex
	built []string
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Build(ctx context.Context, system string) error {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.built = append(f.built, system)
	f.mu.Unlock()

	if err := f.failOn[system]; err != nil {
		return err
	}
	return nil
}

func (f *fakeBackend) Evaluate(ctx context.Context, system string) (string, error) {
	out, ok := f.outputs[system]
	if !ok {
		return "", fmt.Errorf("no output for %s", system)
	}
	return out, nil
}

// makeOutput creates <root>/<system>/lib holding the given files.
func makeOutput(t *testing.T, root, system string, files ...string) string {
	t.Helper()
	out := filepath.Join(root, system)
	lib := filepath.Join(out, "lib")
	require.NoError(t, os.MkdirAll(lib, 0o755))
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(lib, f), []byte(system+":"+f), 0o444))
	}
	return out
}

func TestBuildAll_PartialFailure(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "dist", "lib")

	fb := &fakeBackend{
		outputs: map[string]string{
			"x86_64-linux":   makeOutput(t, root, "x86_64-linux", "libsqlite3.so", "libsqlite3.so.0"),
			"aarch64-darwin": makeOutput(t, root, "aarch64-darwin", "libsqlite3.0.dylib", "libsqlite3.dylib"),
		},
		failOn: map[string]error{
			"aarch64-linux": errors.New("nix exited with code 1: cross toolchain unavailable"),
			"x86_64-darwin": errors.New("nix exited with code 1: no builder"),
		},
	}

	o := New(fb, Options{Library: "sqlite3", DestDir: dest})

	var report *Report
	require.NotPanics(t, func() {
		report = o.BuildAll(context.Background(), platform.Targets)
	})

	assert.Equal(t, 4, report.Total())
	assert.Equal(t, 2, report.Succeeded())
	assert.False(t, report.Universal())

	results := report.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "libsqlite3-linux-x86_64.so", results[0].FileName)
	assert.Equal(t, "libsqlite3-darwin-aarch64.dylib", results[1].FileName)
	assert.Equal(t, []string{"linux-x86_64", "darwin-aarch64"}, report.Platforms())

	data, err := os.ReadFile(filepath.Join(dest, "libsqlite3-darwin-aarch64.dylib"))
	require.NoError(t, err)
	assert.Equal(t, "aarch64-darwin:libsqlite3.dylib", string(data))

	failures := report.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, "aarch64-linux", failures[0].Target.System)
	assert.Equal(t, "x86_64-darwin", failures[1].Target.System)
	for _, f := range failures {
		assert.True(t, errors.Is(f.Err, core.ErrTargetBuildFailed))
		assert.Nil(t, f.Result)
	}

	for i, oc := range report.Outcomes {
		assert.Equal(t, platform.Targets[i].System, oc.Target.System, "outcomes keep input order")
	}
}

func TestBuildAll_AllSucceed(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "dist", "lib")

	outputs := map[string]string{}
	for _, tgt := range platform.Targets {
		outputs[tgt.System] = makeOutput(t, root, tgt.System, "libsqlite3."+tgt.Extension())
	}

	report := New(&fakeBackend{outputs: outputs}, Options{DestDir: dest}).BuildAll(context.Background(), platform.Targets)

	assert.True(t, report.Universal())
	assert.Empty(t, report.Failures())

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestBuildAll_NoMatchingArtifact(t *testing.T) {
	root := t.TempDir()
	target, ok := platform.Lookup("x86_64-linux")
	require.True(t, ok)

	fb := &fakeBackend{outputs: map[string]string{
		"x86_64-linux": makeOutput(t, root, "x86_64-linux", "libsqlite3.a", "libsqlite3.la"),
	}}

	report := New(fb, Options{DestDir: filepath.Join(root, "dist")}).BuildAll(context.Background(), []platform.Target{target})

	require.Len(t, report.Failures(), 1)
	err := report.Failures()[0].Err
	assert.True(t, errors.Is(err, core.ErrTargetBuildFailed))

	var ce *core.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "select", ce.Op)
	assert.Equal(t, "x86_64-linux", ce.Target)
}

func TestBuildAll_EvaluateFailure(t *testing.T) {
	target, _ := platform.Lookup("aarch64-linux")

	report := New(&fakeBackend{}, Options{DestDir: t.TempDir()}).BuildAll(context.Background(), []platform.Target{target})

	require.Len(t, report.Failures(), 1)
	var ce *core.Error
	require.True(t, errors.As(report.Failures()[0].Err, &ce))
	assert.Equal(t, "evaluate", ce.Op)
}

func TestBuildAll_RespectsConcurrencyLimit(t *testing.T) {
	fb := &fakeBackend{delay: 30 * time.Millisecond}

	targets := append(append([]platform.Target(nil), platform.Targets...), platform.Targets...)
	report := New(fb, Options{DestDir: t.TempDir(), Concurrency: 2}).BuildAll(context.Background(), targets)

	assert.Equal(t, len(targets), report.Total())
	assert.LessOrEqual(t, fb.peak.Load(), int32(2))
	assert.Len(t, fb.built, len(targets), "every target is attempted")
}

func TestBuildAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fb := &fakeBackend{}
	report := New(fb, Options{DestDir: t.TempDir()}).BuildAll(ctx, platform.Targets)

	assert.Equal(t, 0, report.Succeeded())
	assert.Len(t, report.Failures(), 4)
	assert.Empty(t, fb.built)
	for _, f := range report.Failures() {
		assert.True(t, errors.Is(f.Err, context.Canceled))
	}
}

func TestBuildAll_EmptyTargets(t *testing.T) {
	report := New(&fakeBackend{}, Options{}).BuildAll(context.Background(), nil)
	assert.Equal(t, 0, report.Total())
	assert.False(t, report.Universal())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", State(42).String())
}
