// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
)

// TargetExecutor runs a named build target and the graph beneath it.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type TargetExecutor interface {
	// Run builds target with the given environment. Backend-specific options
	// are taken from configs, not from env.
	//
	// Target failures are reported in the returned BuildResult. A non-nil error
	// means the executor itself could not run (invalid graph, cancellation).
	Run(
		ctx context.Context,
		target string,
		env *domain.Environment,
		configs []domain.CompilerConfig,
	) (*domain.BuildResult, error)
}

// CommandRunner runs external processes on behalf of targets.
type CommandRunner interface {
	// Run executes cmd and returns an error if it exits unsuccessfully.
	Run(ctx context.Context, cmd domain.Command) error
}

// GraphBuilder expands a root target into the graph of targets it needs.
type GraphBuilder interface {
	// Build returns the graph rooted at target. It fails with
	// domain.ErrUnknownTarget for targets it does not know.
	Build(target string, env *domain.Environment, configs []domain.CompilerConfig) (*domain.Graph, error)
}
