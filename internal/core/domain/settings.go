package domain

import (
	"strconv"
	"strings"
)

// BuildSettingsString summarizes configs into the settings string attached to
// build telemetry, e.g.
//
//	dryRun: false; optimizationLevel: 0; web-renderer: skwasm,canvaskit; web-target: wasm,js;
//
// dryRun comes from the first js configuration and optimizationLevel from the
// first wasm configuration; the latter segment is dropped when there is none.
func BuildSettingsString(configs []CompilerConfig) string {
	var (
		dryRun    bool
		optLevel  = -1
		foundJs   bool
		foundWasm bool
		renderers = make([]string, 0, len(configs))
		targets   = make([]string, 0, len(configs))
	)

	for _, cfg := range configs {
		switch c := cfg.(type) {
		case *JsCompilerConfig:
			if !foundJs {
				dryRun = c.DryRun
				foundJs = true
			}
		case *WasmCompilerConfig:
			if !foundWasm {
				optLevel = c.OptimizationLevel
				foundWasm = true
			}
		}
		renderers = append(renderers, cfg.RendererMode().String())
		targets = append(targets, cfg.Kind().String())
	}

	var b strings.Builder
	b.WriteString("dryRun: ")
	b.WriteString(strconv.FormatBool(dryRun))
	b.WriteString("; ")
	if foundWasm {
		b.WriteString("optimizationLevel: ")
		b.WriteString(strconv.Itoa(optLevel))
		b.WriteString("; ")
	}
	b.WriteString("web-renderer: ")
	b.WriteString(strings.Join(renderers, ","))
	b.WriteString("; web-target: ")
	b.WriteString(strings.Join(targets, ","))
	b.WriteString(";")
	return b.String()
}
