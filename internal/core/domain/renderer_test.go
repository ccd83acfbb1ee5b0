package domain_test

import (
	"testing"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func TestResolveWebRenderer_Defaults(t *testing.T) {
	assert.Equal(t, domain.RendererSkwasm, domain.ResolveWebRenderer(nil, true))
	assert.Equal(t, domain.RendererHTML, domain.ResolveWebRenderer(nil, false))
	assert.Equal(t, domain.RendererSkwasm, domain.ResolveWebRenderer([]string{}, true))
	assert.Equal(t, domain.RendererHTML, domain.ResolveWebRenderer([]string{"FOO=bar"}, false))
}

func TestResolveWebRenderer_RoundTrip(t *testing.T) {
	for _, mode := range domain.WebRendererModes() {
		for _, useWasm := range []bool{true, false} {
			t.Run(mode.String(), func(t *testing.T) {
				assert.Equal(t, mode, domain.ResolveWebRenderer(mode.DartDefines(), useWasm))
			})
		}
	}
}

func TestResolveWebRenderer_Deterministic(t *testing.T) {
	flagSets := [][]string{
		nil,
		{"FLUTTER_WEB_USE_SKIA=true"},
		{"FLUTTER_WEB_USE_SKIA=false"},
		{"FLUTTER_WEB_USE_SKIA=true", "FLUTTER_WEB_USE_SKIA=false"},
		{"FLUTTER_WEB_USE_SKWASM=true", "APP_FLAVOR=dev"},
	}
	for _, flags := range flagSets {
		for _, useWasm := range []bool{true, false} {
			first := domain.ResolveWebRenderer(flags, useWasm)
			for range 10 {
				assert.Equal(t, first, domain.ResolveWebRenderer(flags, useWasm))
			}
		}
	}
}

func TestResolveWebRenderer_TieBreak(t *testing.T) {
	// canvaskit and html each match one define; canvaskit is declared first.
	flags := []string{"FLUTTER_WEB_USE_SKIA=true", "FLUTTER_WEB_USE_SKIA=false"}
	assert.Equal(t, domain.RendererCanvasKit, domain.ResolveWebRenderer(flags, true))

	// skwasm matches both of its defines and beats html.
	flags = []string{"FLUTTER_WEB_USE_SKIA=false", "FLUTTER_WEB_USE_SKWASM=true"}
	assert.Equal(t, domain.RendererSkwasm, domain.ResolveWebRenderer(flags, false))
}

func TestWebRendererMode_UpdateDartDefines(t *testing.T) {
	in := []string{"APP_FLAVOR=dev", "FLUTTER_WEB_USE_SKIA=true", "FLUTTER_WEB_AUTO_DETECT=true"}

	out := domain.RendererSkwasm.UpdateDartDefines(in)

	assert.Equal(t, []string{
		"APP_FLAVOR=dev",
		"FLUTTER_WEB_USE_SKIA=false",
		"FLUTTER_WEB_USE_SKWASM=true",
	}, out)
	assert.Len(t, in, 3, "input must not be modified")
}

func TestParseWebRendererMode(t *testing.T) {
	for _, mode := range domain.WebRendererModes() {
		got, err := domain.ParseWebRendererMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	_, err := domain.ParseWebRendererMode("auto")
	require.Error(t, err)
	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "auto", zErr.Metadata()["renderer"])
}

func TestWebRendererMode_String(t *testing.T) {
	assert.Equal(t, "canvaskit", domain.RendererCanvasKit.String())
	assert.Equal(t, "html", domain.RendererHTML.String())
	assert.Equal(t, "skwasm", domain.RendererSkwasm.String())
	assert.Equal(t, "unknown", domain.WebRendererMode(0).String())
	assert.Nil(t, domain.WebRendererMode(0).DartDefines())
}
