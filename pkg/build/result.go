// pkg/build/result.go
package build

import (
	"github.com/effect-native/libsqlite/pkg/platform"
)

// State is the lifecycle position of one target within a run
type State int

const (
	Pending State = iota
	Building
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Building:
		return "building"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// BuildResult records a successfully collected artifact
type BuildResult struct {
	Target   platform.Target
	FileName string // canonical name, e.g. libsqlite3-linux-x86_64.so
	Path     string // destination path of the copied file
	Source   string // file selected in the backend output
}

// Outcome is the final state of one target. Result is set only when
// State is Succeeded, Err only when it is Failed
type Outcome struct {
	Target platform.Target
	State  State
	Result *BuildResult
	Err    error
}

// Report aggregates the outcomes of a run, in input target order
type Report struct {
	Outcomes []Outcome
}

// Results returns the successful builds in input order
func (r *Report) Results() []BuildResult {
	var out []BuildResult
	for _, o := range r.Outcomes {
		if o.State == Succeeded && o.Result != nil {
			out = append(out, *o.Result)
		}
	}
	return out
}

// Failures returns the failed outcomes in input order
func (r *Report) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.State == Failed {
			out = append(out, o)
		}
	}
	return out
}

// Succeeded returns the number of targets that produced an artifact
func (r *Report) Succeeded() int {
	return len(r.Results())
}

// Total returns the number of targets attempted
func (r *Report) Total() int {
	return len(r.Outcomes)
}

// Universal reports whether every target succeeded
func (r *Report) Universal() bool {
	return r.Total() > 0 && r.Succeeded() == r.Total()
}

// Platforms returns "<os>-<arch>" for each successful build
func (r *Report) Platforms() []string {
	var out []string
	for _, res := range r.Results() {
		out = append(out, res.Target.Platform.String())
	}
	return out
}
