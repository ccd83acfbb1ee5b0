package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// WebRendererMode selects the runtime rendering engine of a web build.
// The declaration order is significant: it breaks ties in ResolveWebRenderer.
type WebRendererMode uint8

const (
	// RendererCanvasKit renders through the CanvasKit (Skia compiled to wasm) engine.
	RendererCanvasKit WebRendererMode = iota + 1
	// RendererHTML renders through DOM and canvas primitives.
	RendererHTML
	// RendererSkwasm renders through the multi-threaded Skia wasm engine.
	RendererSkwasm
)

// webRendererModes lists every mode in declaration order.
var webRendererModes = []WebRendererMode{RendererCanvasKit, RendererHTML, RendererSkwasm}

const (
	defineUseSkia    = "FLUTTER_WEB_USE_SKIA"
	defineUseSkwasm  = "FLUTTER_WEB_USE_SKWASM"
	defineAutoDetect = "FLUTTER_WEB_AUTO_DETECT"
)

// WebRendererModes returns all renderer modes in declaration order.
func WebRendererModes() []WebRendererMode {
	return slices.Clone(webRendererModes)
}

// String returns the short name used on the command line and in telemetry.
func (m WebRendererMode) String() string {
	switch m {
	case RendererCanvasKit:
		return "canvaskit"
	case RendererHTML:
		return "html"
	case RendererSkwasm:
		return "skwasm"
	default:
		return "unknown"
	}
}

// DartDefines returns the compile-time defines that select this mode.
func (m WebRendererMode) DartDefines() []string {
	switch m {
	case RendererCanvasKit:
		return []string{defineUseSkia + "=true"}
	case RendererHTML:
		return []string{defineUseSkia + "=false"}
	case RendererSkwasm:
		return []string{defineUseSkia + "=false", defineUseSkwasm + "=true"}
	default:
		return nil
	}
}

// UpdateDartDefines strips every renderer-related define from defines and
// appends the defines of this mode. The input slice is not modified.
func (m WebRendererMode) UpdateDartDefines(defines []string) []string {
	out := make([]string, 0, len(defines)+2)
	for _, d := range defines {
		if isRendererDefine(d) {
			continue
		}
		out = append(out, d)
	}
	return append(out, m.DartDefines()...)
}

func isRendererDefine(define string) bool {
	key, _, _ := strings.Cut(define, "=")
	switch key {
	case defineUseSkia, defineUseSkwasm, defineAutoDetect:
		return true
	default:
		return false
	}
}

// ParseWebRendererMode parses a renderer short name.
func ParseWebRendererMode(name string) (WebRendererMode, error) {
	for _, m := range webRendererModes {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, zerr.With(ErrInvalidWebRenderer, "renderer", name)
}

// DefaultWebRenderer returns the renderer used when no define selects one.
func DefaultWebRenderer(useWasm bool) WebRendererMode {
	if useWasm {
		return RendererSkwasm
	}
	return RendererHTML
}

// ResolveWebRenderer picks the renderer selected by a set of dart-defines.
//
// Each mode is scored by how many of its own defines appear in flags. The
// highest score wins and ties go to the mode declared first. When no mode
// scores, the default for useWasm is returned.
func ResolveWebRenderer(flags []string, useWasm bool) WebRendererMode {
	best, bestScore := WebRendererMode(0), 0
	for _, m := range webRendererModes {
		score := 0
		for _, d := range m.DartDefines() {
			if slices.Contains(flags, d) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	if bestScore == 0 {
		return DefaultWebRenderer(useWasm)
	}
	return best
}
