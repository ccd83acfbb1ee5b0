// Package webtargets defines the target graph of a web build: one compile
// target per compiler backend, the release bundle and the service worker.
package webtargets

import (
	"path/filepath"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"go.trai.ch/zerr"
)

// Target names.
const (
	// ReleaseBundleTarget copies the static web assets into the output directory.
	ReleaseBundleTarget = "web_release_bundle"
	compileTargetPrefix = "compile_"
)

var _ ports.GraphBuilder = (*Builder)(nil)

// Builder implements ports.GraphBuilder for domain.WebServiceWorkerTarget.
type Builder struct {
	runner ports.CommandRunner
	logger ports.Logger
}

// NewBuilder creates a new Builder whose compile targets run through runner.
func NewBuilder(runner ports.CommandRunner, logger ports.Logger) *Builder {
	return &Builder{runner: runner, logger: logger}
}

// CompileTargetName returns the name of the compile target for kind.
func CompileTargetName(kind domain.CompileTarget) string {
	return compileTargetPrefix + kind.String()
}

// Build returns the graph rooted at target.
func (b *Builder) Build(
	target string,
	env *domain.Environment,
	configs []domain.CompilerConfig,
) (*domain.Graph, error) {
	if target != domain.WebServiceWorkerTarget {
		return nil, zerr.With(domain.ErrUnknownTarget, "target", target)
	}
	if err := domain.ValidateCompilerConfigs(configs); err != nil {
		return nil, err
	}

	g := domain.NewGraph()
	bundleDeps := make([]string, 0, len(configs))

	for _, cfg := range configs {
		t := b.compileTarget(cfg, env)
		if err := g.AddTarget(t); err != nil {
			return nil, err
		}
		// Dry runs produce nothing to bundle.
		if !cfg.IsDryRun() {
			bundleDeps = append(bundleDeps, t.Name)
		}
	}

	if err := g.AddTarget(b.bundleTarget(bundleDeps, staleOutputs(configs, env))); err != nil {
		return nil, err
	}
	if err := g.AddTarget(b.serviceWorkerTarget()); err != nil {
		return nil, err
	}

	return g, nil
}

func (b *Builder) compileTarget(cfg domain.CompilerConfig, env *domain.Environment) *domain.Target {
	var outputs []string
	if !cfg.IsDryRun() {
		for _, out := range backendOutputs(cfg.Kind(), env.OutputDir) {
			outputs = append(outputs, relativeTo(env.ProjectDir, out))
		}
	}

	return &domain.Target{
		Name:    CompileTargetName(cfg.Kind()),
		Inputs:  []string{"lib", domain.PubspecFileName, filepath.Join(".dart_tool", "package_config.json")},
		Outputs: outputs,
		Key:     CompileArgs(cfg, env),
		Action:  &compileAction{runner: b.runner, config: cfg},
	}
}

func (b *Builder) bundleTarget(deps, stale []string) *domain.Target {
	return &domain.Target{
		Name:         ReleaseBundleTarget,
		Dependencies: deps,
		Inputs:       []string{domain.WebDirName},
		Action:       &bundleAction{logger: b.logger, stale: stale},
	}
}

// staleOutputs returns the outputs of the backends that emit nothing in this
// build. Earlier builds may have left them in the output directory.
func staleOutputs(configs []domain.CompilerConfig, env *domain.Environment) []string {
	emitted := make(map[domain.CompileTarget]bool, len(configs))
	for _, cfg := range configs {
		if !cfg.IsDryRun() {
			emitted[cfg.Kind()] = true
		}
	}

	var stale []string
	for _, kind := range []domain.CompileTarget{domain.CompileTargetWasm, domain.CompileTargetJs} {
		if !emitted[kind] {
			stale = append(stale, backendOutputs(kind, env.OutputDir)...)
		}
	}
	return stale
}

func (b *Builder) serviceWorkerTarget() *domain.Target {
	return &domain.Target{
		Name:         domain.WebServiceWorkerTarget,
		Dependencies: []string{ReleaseBundleTarget},
		Action:       &serviceWorkerAction{logger: b.logger},
	}
}

func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
