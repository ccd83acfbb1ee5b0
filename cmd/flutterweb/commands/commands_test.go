package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlsoShantanuBorkar/flutter/cmd/flutterweb/commands"
	"github.com/AlsoShantanuBorkar/flutter/internal/app"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type verboseLogger struct {
	*mocks.MockLogger
	verbose bool
	json    bool
}

func (l *verboseLogger) SetVerbose(enable bool) { l.verbose = enable }

func (l *verboseLogger) SetJSON(enable bool) { l.json = enable }

type harness struct {
	loader    *mocks.MockProjectLoader
	scrubber  *mocks.MockPluginRegistryScrubber
	detector  *mocks.MockPluginDetector
	sdk       *mocks.MockSDK
	executor  *mocks.MockTargetExecutor
	telemetry *mocks.MockTelemetry
	logger    *verboseLogger
	cli       *commands.CLI
	dir       string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		loader:    mocks.NewMockProjectLoader(ctrl),
		scrubber:  mocks.NewMockPluginRegistryScrubber(ctrl),
		detector:  mocks.NewMockPluginDetector(ctrl),
		sdk:       mocks.NewMockSDK(ctrl),
		executor:  mocks.NewMockTargetExecutor(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		logger:    &verboseLogger{MockLogger: mocks.NewMockLogger(ctrl)},
		dir:       t.TempDir(),
	}
	t.Chdir(h.dir)

	a := app.New(h.scrubber, h.detector, h.sdk, h.executor, h.telemetry, h.logger)
	h.cli = commands.New(&app.Components{App: a, Logger: h.logger, Loader: h.loader})
	return h
}

// expectBuild allows a successful build and returns the configs and
// environment the executor received.
func (h *harness) expectBuild() (*[]domain.CompilerConfig, **domain.Environment) {
	var (
		configs []domain.CompilerConfig
		env     *domain.Environment
	)
	p := &domain.Project{Dir: h.dir, Name: "hello"}

	cwd, _ := os.Getwd()
	h.loader.EXPECT().Load(cwd).Return(p, nil)
	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	h.scrubber.EXPECT().Scrub(gomock.Any(), p).Return(nil)
	h.detector.EXPECT().HasWebPlugins(p).Return(false, nil)
	h.sdk.EXPECT().EngineVersion().Return("engine", nil)
	h.executor.EXPECT().
		Run(gomock.Any(), domain.WebServiceWorkerTarget, gomock.Any(), gomock.Any()).
		DoAndReturn(func(
			_ context.Context, _ string, e *domain.Environment, c []domain.CompilerConfig,
		) (*domain.BuildResult, error) {
			configs, env = c, e
			return domain.NewSuccessResult(), nil
		})
	h.telemetry.EXPECT().SendBuildEvent(gomock.Any(), gomock.Any())
	h.telemetry.EXPECT().SendTiming(gomock.Any(), gomock.Any()).AnyTimes()
	return &configs, &env
}

func TestBuildWeb_Defaults(t *testing.T) {
	h := newHarness(t)
	configs, env := h.expectBuild()

	h.cli.SetArgs([]string{"build", "web"})
	require.NoError(t, h.cli.Execute(context.Background()))

	require.Len(t, *configs, 2)
	js, ok := (*configs)[0].(*domain.JsCompilerConfig)
	require.True(t, ok)
	assert.Equal(t, 4, js.OptimizationLevel)
	assert.Equal(t, domain.RendererHTML, js.Renderer)

	wasm, ok := (*configs)[1].(*domain.WasmCompilerConfig)
	require.True(t, ok)
	assert.True(t, wasm.DryRun)
	assert.True(t, wasm.StripWasm)
	assert.Equal(t, 2, wasm.OptimizationLevel)

	assert.Equal(t, "lib/main.dart", (*env).Defines[domain.KeyTargetFile])
	assert.Equal(t, "release", (*env).Defines[domain.KeyBuildMode])
	assert.Equal(t, "offline-first", (*env).Defines[domain.KeyServiceWorkerStrategy])
	assert.Equal(t, "true", (*env).Defines[domain.KeyTreeShakeIcons])
	assert.False(t, h.logger.verbose)
	assert.False(t, h.logger.json)
}

func TestBuildWeb_Wasm(t *testing.T) {
	h := newHarness(t)
	configs, _ := h.expectBuild()

	h.cli.SetArgs([]string{"build", "web", "--wasm", "-O", "3", "--web-renderer", "canvaskit", "--strip-wasm=false"})
	require.NoError(t, h.cli.Execute(context.Background()))

	require.Len(t, *configs, 2)
	wasm, ok := (*configs)[0].(*domain.WasmCompilerConfig)
	require.True(t, ok)
	assert.False(t, wasm.DryRun)
	assert.False(t, wasm.StripWasm)
	assert.Equal(t, 3, wasm.OptimizationLevel)
	assert.Equal(t, domain.RendererSkwasm, wasm.Renderer)

	js, ok := (*configs)[1].(*domain.JsCompilerConfig)
	require.True(t, ok)
	assert.Equal(t, 3, js.OptimizationLevel)
	assert.Equal(t, domain.RendererCanvasKit, js.Renderer)
}

func TestBuildWeb_DartDefines(t *testing.T) {
	h := newHarness(t)
	configs, env := h.expectBuild()

	definesFile := filepath.Join(h.dir, "defines.env")
	require.NoError(t, os.WriteFile(definesFile, []byte("API_URL=https://example.com\nFLUTTER_WEB_USE_SKIA=true\n"), 0o600))

	h.cli.SetArgs([]string{
		"build", "web",
		"--wasm-dry-run=false",
		"--dart-define-from-file", definesFile,
		"--dart-define", "API_URL=http://localhost",
		"--profile",
		"--pwa-strategy", "none",
		"--verbose",
	})
	require.NoError(t, h.cli.Execute(context.Background()))

	require.Len(t, *configs, 1)
	js, ok := (*configs)[0].(*domain.JsCompilerConfig)
	require.True(t, ok)
	assert.Equal(t, domain.RendererCanvasKit, js.Renderer)

	assert.Equal(t, []string{
		"API_URL=https://example.com",
		"FLUTTER_WEB_USE_SKIA=true",
		"API_URL=http://localhost",
	}, (*env).DartDefines())
	assert.Equal(t, "profile", (*env).Defines[domain.KeyBuildMode])
	assert.Equal(t, "none", (*env).Defines[domain.KeyServiceWorkerStrategy])
	assert.True(t, h.logger.verbose)
}

func TestBuildWeb_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{
			name: "two build modes",
			args: []string{"--debug", "--release"},
			want: domain.ErrInvalidBuildMode,
		},
		{
			name: "optimization level out of range",
			args: []string{"-O", "7"},
			want: domain.ErrInvalidOptimizationLevel,
		},
		{
			name: "unknown renderer",
			args: []string{"--web-renderer", "vulkan"},
			want: domain.ErrInvalidWebRenderer,
		},
		{
			name: "unknown strategy",
			args: []string{"--pwa-strategy", "sometimes"},
			want: domain.ErrInvalidServiceWorkerStrategy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Flags are rejected before the project is loaded.
			h := newHarness(t)

			h.cli.SetArgs(append([]string{"build", "web"}, tt.args...))
			err := h.cli.Execute(context.Background())
			assert.ErrorContains(t, err, tt.want.Error())
		})
	}
}

func TestBuildWeb_MissingDefinesFile(t *testing.T) {
	h := newHarness(t)

	h.cli.SetArgs([]string{"build", "web", "--dart-define-from-file", "missing.json"})
	err := h.cli.Execute(context.Background())
	assert.ErrorContains(t, err, "invalid dart-define file")
}

func TestBuildWeb_ProjectLoadError(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any()).Return(nil, domain.ErrProjectLoadFailed)

	h.cli.SetArgs([]string{"build", "web"})
	err := h.cli.Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrProjectLoadFailed)
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	var out bytes.Buffer

	h.cli.SetArgs([]string{"version"})
	h.cli.SetOutput(&out)
	require.NoError(t, h.cli.Execute(context.Background()))
	assert.Equal(t, "flutterweb version dev\n", out.String())
}

func TestRoot_JSONLogging(t *testing.T) {
	h := newHarness(t)
	var out bytes.Buffer

	h.cli.SetArgs([]string{"--json", "version"})
	h.cli.SetOutput(&out)
	require.NoError(t, h.cli.Execute(context.Background()))
	assert.True(t, h.logger.json)
	assert.False(t, h.logger.verbose)
}
