package domain

import (
	"strconv"

	"go.trai.ch/zerr"
)

// CompileTarget identifies the compiler backend of a CompilerConfig.
type CompileTarget uint8

const (
	// CompileTargetWasm is the WebAssembly (dart2wasm) backend.
	CompileTargetWasm CompileTarget = iota + 1
	// CompileTargetJs is the JavaScript (dart2js) backend.
	CompileTargetJs
)

// String returns the backend short name used in telemetry and target names.
func (t CompileTarget) String() string {
	switch t {
	case CompileTargetWasm:
		return "wasm"
	case CompileTargetJs:
		return "js"
	default:
		return "unknown"
	}
}

// CompilerConfig holds the options of a single compiler backend.
// The set of implementations is closed: WasmCompilerConfig and JsCompilerConfig.
type CompilerConfig interface {
	// Kind returns the backend this configuration drives.
	Kind() CompileTarget
	// RendererMode returns the renderer the output is built for.
	RendererMode() WebRendererMode
	// IsDryRun reports whether the backend only validates the program.
	IsDryRun() bool
	// CommandOptions returns the backend-specific compiler flags.
	CommandOptions() []string

	compilerConfig()
}

// WasmCompilerConfig configures the WebAssembly backend.
type WasmCompilerConfig struct {
	OptimizationLevel int
	StripWasm         bool
	Renderer          WebRendererMode
	DryRun            bool
}

// NewWasmCompilerConfig returns cfg with its renderer defaulted for wasm output.
func NewWasmCompilerConfig(cfg WasmCompilerConfig) *WasmCompilerConfig {
	if cfg.Renderer == 0 {
		cfg.Renderer = ResolveWebRenderer(nil, true)
	}
	return &cfg
}

// Kind implements CompilerConfig.
func (*WasmCompilerConfig) Kind() CompileTarget { return CompileTargetWasm }

// RendererMode implements CompilerConfig.
func (c *WasmCompilerConfig) RendererMode() WebRendererMode { return c.Renderer }

// IsDryRun implements CompilerConfig.
func (c *WasmCompilerConfig) IsDryRun() bool { return c.DryRun }

// CommandOptions implements CompilerConfig.
func (c *WasmCompilerConfig) CommandOptions() []string {
	opts := []string{"-O" + strconv.Itoa(c.OptimizationLevel)}
	if c.StripWasm {
		opts = append(opts, "--strip-wasm")
	} else {
		opts = append(opts, "--no-strip-wasm")
	}
	if c.DryRun {
		opts = append(opts, "--dry-run")
	}
	return opts
}

func (*WasmCompilerConfig) compilerConfig() {}

// JsCompilerConfig configures the JavaScript backend.
type JsCompilerConfig struct {
	NativeNullAssertions         bool
	Renderer                     WebRendererMode
	DryRun                       bool
	OptimizationLevel            int
	SourceMaps                   bool
	CSP                          bool
	DumpInfo                     bool
	NoFrequencyBasedMinification bool
}

// NewJsCompilerConfig returns cfg with its renderer defaulted for JavaScript output.
func NewJsCompilerConfig(cfg JsCompilerConfig) *JsCompilerConfig {
	if cfg.Renderer == 0 {
		cfg.Renderer = ResolveWebRenderer(nil, false)
	}
	return &cfg
}

// Kind implements CompilerConfig.
func (*JsCompilerConfig) Kind() CompileTarget { return CompileTargetJs }

// RendererMode implements CompilerConfig.
func (c *JsCompilerConfig) RendererMode() WebRendererMode { return c.Renderer }

// IsDryRun implements CompilerConfig.
func (c *JsCompilerConfig) IsDryRun() bool { return c.DryRun }

// CommandOptions implements CompilerConfig.
func (c *JsCompilerConfig) CommandOptions() []string {
	opts := []string{"-O" + strconv.Itoa(c.OptimizationLevel)}
	if c.NativeNullAssertions {
		opts = append(opts, "--native-null-assertions")
	}
	if !c.SourceMaps {
		opts = append(opts, "--no-source-maps")
	}
	if c.CSP {
		opts = append(opts, "--csp")
	}
	if c.DumpInfo {
		opts = append(opts, "--dump-info")
	}
	if c.NoFrequencyBasedMinification {
		opts = append(opts, "--no-frequency-based-minification")
	}
	return opts
}

func (*JsCompilerConfig) compilerConfig() {}

// ValidateCompilerConfigs checks that configs is non-empty and holds at most
// one configuration per backend.
func ValidateCompilerConfigs(configs []CompilerConfig) error {
	if len(configs) == 0 {
		return ErrNoCompilerConfigs
	}
	seen := make(map[CompileTarget]bool, len(configs))
	for _, c := range configs {
		if seen[c.Kind()] {
			return zerr.With(ErrDuplicateCompileTarget, "target", c.Kind().String())
		}
		seen[c.Kind()] = true
	}
	return nil
}
