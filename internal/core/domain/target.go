package domain

import "context"

// WebServiceWorkerTarget names the root target of a web build. Running it
// compiles every requested backend, bundles the assets and writes the service worker.
const WebServiceWorkerTarget = "web_service_worker"

// Action is the work performed by a target.
type Action interface {
	Run(ctx context.Context, env *Environment) error
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc func(ctx context.Context, env *Environment) error

// Run implements Action.
func (f ActionFunc) Run(ctx context.Context, env *Environment) error {
	return f(ctx, env)
}

// Target is a node of the build graph.
type Target struct {
	Name         string
	Dependencies []string
	// Inputs are files or directories, relative to the project root, whose
	// contents contribute to the target fingerprint.
	Inputs []string
	// Outputs are files, relative to the project root, the target produces.
	// A target without outputs is never skipped by fingerprint.
	Outputs []string
	// Key is extra target configuration, such as a compiler invocation, that
	// contributes to the fingerprint.
	Key    []string
	Action Action
}

// Command is a process invocation issued by a target.
type Command struct {
	Args []string
	Dir  string
	Env  map[string]string
}
