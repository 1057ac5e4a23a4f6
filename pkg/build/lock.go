// pkg/build/lock.go
package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	applog "github.com/effect-native/libsqlite/internal/logger"
)

// lockRetryInterval is the delay between attempts to take the dist lock
const lockRetryInterval = 100 * time.Millisecond

// Lock is an exclusive, cross-process lock over a distribution directory
type Lock struct {
	fl     *flock.Flock
	logger *slog.Logger
}

// LockPath returns the lock file guarding distDir. It is a sibling of the
// directory, never inside it, so cleaning dist/ cannot remove a held lock
func LockPath(distDir string) string {
	return filepath.Clean(distDir) + ".lock"
}

// AcquireLock blocks until the lock for distDir is held or ctx is done
func AcquireLock(ctx context.Context, distDir string, logger *slog.Logger) (*Lock, error) {
	if logger == nil {
		logger = applog.Discard()
	}

	path := LockPath(distDir)
	fl := flock.New(path)

	locked, err := fl.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("acquiring lock %s: %w", path, err)
	}
	if !locked {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("acquiring lock %s: %w", path, ctx.Err())
		}
		return nil, fmt.Errorf("acquiring lock %s: lock not acquired", path)
	}

	logger.Debug("acquired dist lock", "path", path)
	return &Lock{fl: fl, logger: logger}, nil
}

// Release unlocks and closes the lock file. The file itself stays on disk
func (l *Lock) Release() {
	if l == nil || l.fl == nil {
		return
	}
	if err := l.fl.Close(); err != nil {
		l.logger.Debug("failed to release dist lock", "path", l.fl.Path(), "err", err)
	}
}
