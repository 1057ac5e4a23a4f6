// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrArtifactNotFound indicates no candidate library file exists on disk
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrTargetBuildFailed indicates a single platform target could not be built or collected
	ErrTargetBuildFailed = errors.New("target build failed")

	// ErrPackagingFailed indicates a packaging step could not produce its output
	ErrPackagingFailed = errors.New("packaging step failed")

	// ErrUnsupportedSystem indicates a build system identifier outside the known target set
	ErrUnsupportedSystem = errors.New("unsupported system")
)

// Error wraps an error with the failing operation and, when relevant, the
// target it concerned. Kind is the sentinel reported by errors.Is.
type Error struct {
	Kind   error  // One of the sentinels above
	Op     string // Operation that failed
	Target string // Build system identifier if applicable
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target matches the error's kind.
func (e *Error) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// TargetError returns a TargetBuildFailed error for the given operation and system.
func TargetError(op, system string, err error) *Error {
	return &Error{Kind: ErrTargetBuildFailed, Op: op, Target: system, Err: err}
}

// PackagingError returns a PackagingStepFailed error for the named step.
func PackagingError(step string, err error) *Error {
	return &Error{Kind: ErrPackagingFailed, Op: step, Err: err}
}
