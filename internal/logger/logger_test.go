package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Console: &buf, NoColor: true})

	l.Debug("hidden")
	l.Info("building target", "system", "x86_64-linux")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "building target")
	assert.Contains(t, out, "system=x86_64-linux")
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "debug", Console: &buf, NoColor: true})

	l.Debug("acquired dist lock")
	assert.Contains(t, buf.String(), "acquired dist lock")
}

func TestNew_FileSink(t *testing.T) {
	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "libsqlite.log")

	l := New(Options{Level: "warn", File: logFile, Console: &buf, NoColor: true})

	l.Debug("debug only in file")
	l.Warn("skipping target", "system", "aarch64-linux")
	require.NoError(t, Close(l))

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"debug only in file"`)
	assert.Contains(t, string(content), `"system":"aarch64-linux"`)

	assert.NotContains(t, buf.String(), "debug only in file")
	assert.Contains(t, buf.String(), "skipping target")
}

func TestClose_Idempotent(t *testing.T) {
	l := New(Options{Console: &bytes.Buffer{}})
	assert.NoError(t, Close(l))
	assert.NoError(t, Close(l))
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, levelFromString("DEBUG"))
	assert.Equal(t, slog.LevelWarn, levelFromString("warn"))
	assert.Equal(t, slog.LevelError, levelFromString("error"))
	assert.Equal(t, slog.LevelInfo, levelFromString(""))
	assert.Equal(t, slog.LevelInfo, levelFromString("verbose"))
}

func TestMultiHandler(t *testing.T) {
	var info, warn bytes.Buffer
	multi := NewMultiHandler(
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	ctx := context.Background()

	assert.True(t, multi.Enabled(ctx, slog.LevelInfo))
	assert.False(t, multi.Enabled(ctx, slog.LevelDebug))

	require.NoError(t, multi.Handle(ctx, slog.NewRecord(time.Now(), slog.LevelInfo, "info record", 0)))
	assert.Contains(t, info.String(), "info record")
	assert.Empty(t, warn.String())

	l := slog.New(multi.WithAttrs([]slog.Attr{slog.String("run", "1")}).WithGroup("g"))
	l.Warn("both", "k", "v")
	assert.Contains(t, info.String(), "run=1")
	assert.Contains(t, warn.String(), "g.k=v")

	assert.NotNil(t, Discard())
}
