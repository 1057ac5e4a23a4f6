// errors.go
package libsqlite

import (
	"github.com/effect-native/libsqlite/pkg/core"
)

var (
	// ErrArtifactNotFound is matched by the error LibraryPath and Resolve
	// return when no candidate file exists.
	ErrArtifactNotFound = core.ErrArtifactNotFound

	// ErrTargetBuildFailed marks a single platform target that could not be built
	ErrTargetBuildFailed = core.ErrTargetBuildFailed

	// ErrPackagingFailed marks a packaging step that could not produce its output
	ErrPackagingFailed = core.ErrPackagingFailed
)

// Error carries the failing operation and target
type Error = core.Error
