package domain

// ExceptionMeasurement describes the failure of a single target.
type ExceptionMeasurement struct {
	Target string
	Err    error
	Stack  string
}

// BuildResult is the outcome of running a target graph.
type BuildResult struct {
	Success bool

	exceptions []ExceptionMeasurement
	byTarget   map[string]int
}

// NewSuccessResult returns a successful BuildResult with no exceptions.
func NewSuccessResult() *BuildResult {
	return &BuildResult{Success: true}
}

// AddException records a failed target and marks the result as failed.
// A second exception for the same target replaces the first in place.
func (r *BuildResult) AddException(m ExceptionMeasurement) {
	r.Success = false
	if r.byTarget == nil {
		r.byTarget = make(map[string]int)
	}
	if i, ok := r.byTarget[m.Target]; ok {
		r.exceptions[i] = m
		return
	}
	r.byTarget[m.Target] = len(r.exceptions)
	r.exceptions = append(r.exceptions, m)
}

// Exceptions returns the recorded failures in insertion order.
func (r *BuildResult) Exceptions() []ExceptionMeasurement {
	out := make([]ExceptionMeasurement, len(r.exceptions))
	copy(out, r.exceptions)
	return out
}

// Exception returns the failure recorded for target, if any.
func (r *BuildResult) Exception(target string) (ExceptionMeasurement, bool) {
	i, ok := r.byTarget[target]
	if !ok {
		return ExceptionMeasurement{}, false
	}
	return r.exceptions[i], true
}
