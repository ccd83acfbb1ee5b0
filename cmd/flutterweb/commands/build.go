package commands

import (
	"os"

	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/project"
	"github.com/AlsoShantanuBorkar/flutter/internal/app"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/zerr"
)

// Default optimization levels when -O is not given.
const (
	defaultWasmOptimizationLevel = 2
	defaultJsOptimizationLevel   = 4
	maxOptimizationLevel         = 4
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an executable app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Display command usage help without returning an error
			_ = cmd.Help()
			return nil
		},
	}
	cmd.AddCommand(c.newBuildWebCmd())
	return cmd
}

func (c *CLI) newBuildWebCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Build a web application bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := buildRequestFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			wd, err := os.Getwd()
			if err != nil {
				return zerr.Wrap(err, "failed to get working directory")
			}

			req.Project, err = c.loader.Load(wd)
			if err != nil {
				return err
			}

			return c.app.BuildWeb(cmd.Context(), req)
		},
	}

	f := cmd.Flags()
	f.StringP("target", "t", "lib/main.dart", "The main entry-point file of the application")
	f.Bool("debug", false, "Build a debug version of your app")
	f.Bool("profile", false, "Build a version of your app specialized for performance profiling")
	f.Bool("release", false, "Build a release version of your app (default)")
	f.Bool("wasm", false, "Compile to WebAssembly and JavaScript")
	f.Bool("wasm-dry-run", true, "Check WebAssembly compatibility without emitting output")
	f.String("web-renderer", "", "The renderer of the JavaScript build: canvaskit, html or skwasm")
	f.StringArray("dart-define", nil, "Additional key-value pairs available as constants (KEY=VALUE)")
	f.StringArray("dart-define-from-file", nil, "A .json or .env file of dart-define pairs")
	f.IntP("optimization-level", "O", -1, "Compiler optimization level, 0 to 4 (default 2 for wasm, 4 for js)")
	f.Bool("strip-wasm", true, "Strip debug information from the WebAssembly module")
	f.Bool("source-maps", false, "Generate a JavaScript source map")
	f.Bool("csp", false, "Disable dynamic code generation for Content Security Policy compliance")
	f.Bool("dump-info", false, "Write a dump-info file with code size details")
	f.Bool("native-null-assertions", false, "Enable null assertions on native types")
	f.Bool("no-frequency-based-minification", false, "Disable frequency based minification of names")
	f.String("pwa-strategy", string(domain.ServiceWorkerOfflineFirst), "The caching strategy of the service worker: offline-first or none")
	f.Bool("obfuscate", false, "Obfuscate Dart symbol names")
	f.Bool("track-widget-creation", true, "Track widget creation locations")
	f.Bool("tree-shake-icons", true, "Tree shake icon fonts so only used glyphs are bundled")

	return cmd
}

// buildRequestFromFlags assembles a BuildRequest without its project.
func buildRequestFromFlags(f *pflag.FlagSet) (app.BuildRequest, error) {
	mode, err := buildModeFromFlags(f)
	if err != nil {
		return app.BuildRequest{}, err
	}

	strategyName, _ := f.GetString("pwa-strategy")
	strategy, err := domain.ParseServiceWorkerStrategy(strategyName)
	if err != nil {
		return app.BuildRequest{}, err
	}

	defines, err := dartDefinesFromFlags(f)
	if err != nil {
		return app.BuildRequest{}, err
	}

	configs, err := compilerConfigsFromFlags(f, defines)
	if err != nil {
		return app.BuildRequest{}, err
	}

	target, _ := f.GetString("target")
	obfuscate, _ := f.GetBool("obfuscate")
	trackWidgets, _ := f.GetBool("track-widget-creation")
	treeShake, _ := f.GetBool("tree-shake-icons")

	return app.BuildRequest{
		TargetFile: target,
		BuildInfo: domain.BuildInfo{
			Mode:                mode,
			DartObfuscation:     obfuscate,
			TrackWidgetCreation: trackWidgets,
			TreeShakeIcons:      treeShake,
			DartDefines:         defines,
		},
		Strategy: strategy,
		Configs:  configs,
	}, nil
}

func buildModeFromFlags(f *pflag.FlagSet) (domain.BuildMode, error) {
	var modes []domain.BuildMode
	for _, m := range []domain.BuildMode{domain.BuildModeDebug, domain.BuildModeProfile, domain.BuildModeRelease} {
		if set, _ := f.GetBool(string(m)); set {
			modes = append(modes, m)
		}
	}
	switch len(modes) {
	case 0:
		return domain.BuildModeRelease, nil
	case 1:
		return modes[0], nil
	default:
		return "", domain.ErrInvalidBuildMode
	}
}

// dartDefinesFromFlags returns the defines read from files followed by the
// ones given inline, so inline values win when the compiler sees both.
func dartDefinesFromFlags(f *pflag.FlagSet) ([]string, error) {
	files, _ := f.GetStringArray("dart-define-from-file")
	defines, err := project.ReadDefinesFiles(files)
	if err != nil {
		return nil, err
	}
	inline, _ := f.GetStringArray("dart-define")
	return append(defines, inline...), nil
}

// compilerConfigsFromFlags returns the backends of the build. With --wasm both
// backends emit output. Otherwise JavaScript is built and, unless disabled, a
// wasm dry run checks the program for compatibility.
func compilerConfigsFromFlags(f *pflag.FlagSet, defines []string) ([]domain.CompilerConfig, error) {
	wasmLevel, jsLevel := defaultWasmOptimizationLevel, defaultJsOptimizationLevel
	if f.Changed("optimization-level") {
		level, _ := f.GetInt("optimization-level")
		if level < 0 || level > maxOptimizationLevel {
			return nil, zerr.With(domain.ErrInvalidOptimizationLevel, "level", level)
		}
		wasmLevel, jsLevel = level, level
	}

	renderer := domain.ResolveWebRenderer(defines, false)
	if name, _ := f.GetString("web-renderer"); name != "" {
		parsed, err := domain.ParseWebRendererMode(name)
		if err != nil {
			return nil, err
		}
		renderer = parsed
	}

	stripWasm, _ := f.GetBool("strip-wasm")
	nativeNull, _ := f.GetBool("native-null-assertions")
	sourceMaps, _ := f.GetBool("source-maps")
	csp, _ := f.GetBool("csp")
	dumpInfo, _ := f.GetBool("dump-info")
	noFreqMin, _ := f.GetBool("no-frequency-based-minification")

	js := domain.NewJsCompilerConfig(domain.JsCompilerConfig{
		NativeNullAssertions:         nativeNull,
		Renderer:                     renderer,
		OptimizationLevel:            jsLevel,
		SourceMaps:                   sourceMaps,
		CSP:                          csp,
		DumpInfo:                     dumpInfo,
		NoFrequencyBasedMinification: noFreqMin,
	})

	if useWasm, _ := f.GetBool("wasm"); useWasm {
		wasm := domain.NewWasmCompilerConfig(domain.WasmCompilerConfig{
			OptimizationLevel: wasmLevel,
			StripWasm:         stripWasm,
		})
		return []domain.CompilerConfig{wasm, js}, nil
	}

	configs := []domain.CompilerConfig{js}
	if dryRun, _ := f.GetBool("wasm-dry-run"); dryRun {
		configs = append(configs, domain.NewWasmCompilerConfig(domain.WasmCompilerConfig{
			OptimizationLevel: wasmLevel,
			StripWasm:         stripWasm,
			DryRun:            true,
		}))
	}
	return configs, nil
}
