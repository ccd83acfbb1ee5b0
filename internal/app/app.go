// Package app implements the application layer for flutterweb.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
)

// Telemetry labels of a web build.
const (
	BuildEventLabel    = "web-compile"
	BuildEventCategory = "web"
	TimingWorkflow     = "build"
	TimingDualCompile  = "dual-compile"
)

// BuildRequest describes a single `build web` invocation.
type BuildRequest struct {
	Project    *domain.Project
	TargetFile string
	BuildInfo  domain.BuildInfo
	Strategy   domain.ServiceWorkerStrategy
	Configs    []domain.CompilerConfig
}

// App represents the main application logic.
type App struct {
	scrubber  ports.PluginRegistryScrubber
	detector  ports.PluginDetector
	sdk       ports.SDK
	executor  ports.TargetExecutor
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	scrubber ports.PluginRegistryScrubber,
	detector ports.PluginDetector,
	sdk ports.SDK,
	executor ports.TargetExecutor,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		scrubber:  scrubber,
		detector:  detector,
		sdk:       sdk,
		executor:  executor,
		telemetry: telemetry,
		logger:    logger,
	}
}

// BuildWeb compiles the project for the web with every configured backend
// and writes the bundle to build/web.
//
// Any failure is reported as domain.ErrWebCompileFailed. Per-target causes
// are logged before it is returned.
func (a *App) BuildWeb(ctx context.Context, req BuildRequest) error {
	if err := domain.ValidateCompilerConfigs(req.Configs); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("Compiling %s for the Web...", req.TargetFile))

	env, err := a.prepare(ctx, req)
	if err != nil {
		return domain.WebCompileFailure(err)
	}

	start := time.Now()
	result, err := a.executor.Run(ctx, domain.WebServiceWorkerTarget, env, req.Configs)
	if err != nil {
		return domain.WebCompileFailure(err)
	}
	elapsed := time.Since(start)

	return a.interpretResult(ctx, req, env, result, elapsed)
}

// prepare migrates the project and assembles the build environment.
func (a *App) prepare(ctx context.Context, req BuildRequest) (*domain.Environment, error) {
	if err := a.scrubber.Scrub(ctx, req.Project); err != nil {
		return nil, err
	}

	hasWebPlugins, err := a.detector.HasWebPlugins(req.Project)
	if err != nil {
		return nil, err
	}

	engineVersion, err := a.sdk.EngineVersion()
	if err != nil {
		return nil, err
	}

	return domain.NewEnvironment(
		req.Project,
		req.TargetFile,
		req.BuildInfo,
		hasWebPlugins,
		req.Strategy,
		engineVersion,
	), nil
}

func (a *App) interpretResult(
	ctx context.Context,
	req BuildRequest,
	env *domain.Environment,
	result *domain.BuildResult,
	elapsed time.Duration,
) error {
	if !result.Success {
		for _, m := range result.Exceptions() {
			a.logger.Error(fmt.Errorf("Target %s failed: %w", m.Target, m.Err)) //nolint:staticcheck // user-facing message
		}
		return domain.ErrWebCompileFailed
	}

	a.logger.Info("Built " + displayPath(req.Project.Dir, env.OutputDir))

	a.telemetry.SendBuildEvent(ctx, domain.BuildEvent{
		Label:    BuildEventLabel,
		Category: BuildEventCategory,
		Settings: domain.BuildSettingsString(req.Configs),
	})
	if len(req.Configs) > 1 {
		a.telemetry.SendTiming(ctx, domain.TimingEvent{
			Workflow:     TimingWorkflow,
			VariableName: TimingDualCompile,
			Elapsed:      elapsed,
		})
	}
	return nil
}

func displayPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
