package webtargets

import (
	"context"
	"os"
	"path/filepath"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"go.trai.ch/zerr"
)

type compileAction struct {
	runner ports.CommandRunner
	config domain.CompilerConfig
}

func (a *compileAction) Run(ctx context.Context, env *domain.Environment) error {
	if out := compileOutput(a.config, env); out != "" {
		if err := os.MkdirAll(filepath.Dir(out), domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", filepath.Dir(out))
		}
	}

	return a.runner.Run(ctx, domain.Command{
		Args: CompileArgs(a.config, env),
		Dir:  env.ProjectDir,
	})
}

// CompileArgs returns the compiler invocation for cfg:
//
//	dart compile <js|wasm> <backend options> --define=K=V... [-o <output>] <target file>
//
// The defines are the user dart-defines, with every renderer define replaced
// by those of the configured renderer.
func CompileArgs(cfg domain.CompilerConfig, env *domain.Environment) []string {
	args := []string{"dart", "compile", cfg.Kind().String()}
	args = append(args, cfg.CommandOptions()...)

	mode := domain.BuildMode(env.Defines[domain.KeyBuildMode])
	if mode == domain.BuildModeDebug {
		args = append(args, "--enable-asserts")
	}

	defines := append(buildModeDefines(mode), env.DartDefines()...)
	for _, d := range cfg.RendererMode().UpdateDartDefines(defines) {
		args = append(args, "--define="+d)
	}

	if out := compileOutput(cfg, env); out != "" {
		args = append(args, "-o", out)
	}
	return append(args, env.Defines[domain.KeyTargetFile])
}

// compileOutput returns where cfg writes its main output. A wasm dry run only
// validates the program and writes nothing; a JavaScript dry run compiles into
// the build directory so the output directory is left untouched.
func compileOutput(cfg domain.CompilerConfig, env *domain.Environment) string {
	switch cfg.Kind() {
	case domain.CompileTargetWasm:
		if cfg.IsDryRun() {
			return ""
		}
		return filepath.Join(env.OutputDir, "main.dart.wasm")
	default:
		if cfg.IsDryRun() {
			return filepath.Join(env.BuildDir, "dry_run", "main.dart.js")
		}
		return filepath.Join(env.OutputDir, "main.dart.js")
	}
}

// backendOutputs returns the files a compile of kind writes to outputDir.
func backendOutputs(kind domain.CompileTarget, outputDir string) []string {
	if kind == domain.CompileTargetWasm {
		return []string{filepath.Join(outputDir, "main.dart.wasm"), filepath.Join(outputDir, "main.dart.mjs")}
	}
	return []string{filepath.Join(outputDir, "main.dart.js")}
}

func buildModeDefines(mode domain.BuildMode) []string {
	switch mode {
	case domain.BuildModeRelease:
		return []string{"dart.vm.product=true"}
	case domain.BuildModeProfile:
		return []string{"dart.vm.profile=true"}
	default:
		return nil
	}
}
