package domain

import "go.trai.ch/zerr"

// webCompileFailure is ErrWebCompileFailed caused by a collaborator error.
type webCompileFailure struct {
	cause error
}

// WebCompileFailure reports cause as a failed web build. The result matches
// both ErrWebCompileFailed and cause with errors.Is.
func WebCompileFailure(cause error) error {
	if cause == nil {
		return nil
	}
	return &webCompileFailure{cause: cause}
}

func (e *webCompileFailure) Error() string {
	return ErrWebCompileFailed.Error() + ": " + e.cause.Error()
}

// Message returns the failure without its cause.
func (e *webCompileFailure) Message() string {
	return ErrWebCompileFailed.Error()
}

func (e *webCompileFailure) Is(target error) bool {
	return target == ErrWebCompileFailed
}

func (e *webCompileFailure) Unwrap() error {
	return e.cause
}

var (
	// ErrWebCompileFailed is the fatal, user-facing failure of a web build.
	// The per-target causes are logged before it is returned.
	ErrWebCompileFailed = zerr.New("Failed to compile application for the Web.")

	// ErrNoCompilerConfigs is returned when a build requests no compiler backend.
	ErrNoCompilerConfigs = zerr.New("at least one compiler configuration is required")

	// ErrDuplicateCompileTarget is returned when a build requests the same backend twice.
	ErrDuplicateCompileTarget = zerr.New("duplicate compiler configuration for target")

	// ErrInvalidWebRenderer is returned when a renderer name is not recognized.
	ErrInvalidWebRenderer = zerr.New("invalid web renderer, expected 'canvaskit', 'html' or 'skwasm'")

	// ErrInvalidServiceWorkerStrategy is returned when a service worker strategy is not recognized.
	ErrInvalidServiceWorkerStrategy = zerr.New("invalid service worker strategy, expected 'offline-first' or 'none'")

	// ErrInvalidBuildMode is returned when more than one build mode flag is set.
	ErrInvalidBuildMode = zerr.New("only one of --debug, --profile or --release may be set")

	// ErrInvalidOptimizationLevel is returned when an optimization level is out of range.
	ErrInvalidOptimizationLevel = zerr.New("optimization level must be between 0 and 4")

	// ErrTargetAlreadyExists is returned when attempting to add a target with a name that already exists.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrMissingDependency is returned when a target references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the target dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrUnknownTarget is returned when the executor is asked to run a target it cannot build.
	ErrUnknownTarget = zerr.New("unknown build target")

	// ErrCommandFailed is returned when a compiler process exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrEmptyCommand is returned when a target issues a command without arguments.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrProjectLoadFailed is returned when the project metadata cannot be read.
	ErrProjectLoadFailed = zerr.New("failed to load project")

	// ErrPluginListReadFailed is returned when the plugin dependency list cannot be read.
	ErrPluginListReadFailed = zerr.New("failed to read plugin dependencies")

	// ErrScrubFailed is returned when the generated plugin registrant cannot be removed.
	ErrScrubFailed = zerr.New("failed to remove generated plugin registrant")

	// ErrEngineVersionReadFailed is returned when the engine version file cannot be read.
	ErrEngineVersionReadFailed = zerr.New("failed to read engine version")

	// ErrStoreReadFailed is returned when the fingerprint store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read fingerprint store")

	// ErrStoreUnmarshalFailed is returned when the fingerprint store cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal fingerprint store")

	// ErrStoreMarshalFailed is returned when the fingerprint store cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal fingerprint store")

	// ErrStoreWriteFailed is returned when the fingerprint store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write fingerprint store")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrAssetCopyFailed is returned when web assets cannot be copied to the output directory.
	ErrAssetCopyFailed = zerr.New("failed to copy web assets")

	// ErrServiceWorkerWriteFailed is returned when the service worker cannot be written.
	ErrServiceWorkerWriteFailed = zerr.New("failed to write service worker")
)
