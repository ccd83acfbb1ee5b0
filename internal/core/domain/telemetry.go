package domain

import "time"

// BuildEvent is the build-info telemetry event sent after a successful build.
type BuildEvent struct {
	Label    string
	Category string
	Settings string
}

// TimingEvent records how long a workflow step took.
type TimingEvent struct {
	Workflow     string
	VariableName string
	Elapsed      time.Duration
}

// TargetStatus represents the lifecycle state of a target in the build graph.
type TargetStatus string

const (
	// TargetStatusPending indicates the target is waiting for dependencies or scheduling.
	TargetStatusPending TargetStatus = "pending"
	// TargetStatusRunning indicates the target is currently executing.
	TargetStatusRunning TargetStatus = "running"
	// TargetStatusCompleted indicates the target executed successfully.
	TargetStatusCompleted TargetStatus = "completed"
	// TargetStatusFailed indicates the target execution failed.
	TargetStatusFailed TargetStatus = "failed"
	// TargetStatusCached indicates the target was skipped because its fingerprint matched.
	TargetStatusCached TargetStatus = "cached"
	// TargetStatusSkipped indicates the target never ran because a dependency failed.
	TargetStatusSkipped TargetStatus = "skipped"
)

// IsTerminal checks if a status is a terminal state (Completed, Failed, Cached, Skipped).
func (s TargetStatus) IsTerminal() bool {
	switch s {
	case TargetStatusCompleted, TargetStatusFailed, TargetStatusCached, TargetStatusSkipped:
		return true
	default:
		return false
	}
}
