package app_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/AlsoShantanuBorkar/flutter/internal/app"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	scrubber  *mocks.MockPluginRegistryScrubber
	detector  *mocks.MockPluginDetector
	sdk       *mocks.MockSDK
	executor  *mocks.MockTargetExecutor
	telemetry *mocks.MockTelemetry
	logger    *mocks.MockLogger
	app       *app.App
	project   *domain.Project
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		scrubber:  mocks.NewMockPluginRegistryScrubber(ctrl),
		detector:  mocks.NewMockPluginDetector(ctrl),
		sdk:       mocks.NewMockSDK(ctrl),
		executor:  mocks.NewMockTargetExecutor(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		project:   &domain.Project{Dir: filepath.Join(t.TempDir(), "hello"), Name: "hello"},
	}
	f.app = app.New(f.scrubber, f.detector, f.sdk, f.executor, f.telemetry, f.logger)
	return f
}

// expectPrepare sets up the collaborator calls that precede the executor.
func (f *fixture) expectPrepare() {
	f.logger.EXPECT().Info("Compiling lib/main.dart for the Web...")
	f.scrubber.EXPECT().Scrub(gomock.Any(), f.project).Return(nil)
	f.detector.EXPECT().HasWebPlugins(f.project).Return(true, nil)
	f.sdk.EXPECT().EngineVersion().Return("abc123", nil)
}

func request(f *fixture, configs ...domain.CompilerConfig) app.BuildRequest {
	return app.BuildRequest{
		Project:    f.project,
		TargetFile: "lib/main.dart",
		BuildInfo:  domain.BuildInfo{Mode: domain.BuildModeRelease},
		Strategy:   domain.ServiceWorkerOfflineFirst,
		Configs:    configs,
	}
}

func TestBuildWeb_Success(t *testing.T) {
	f := setup(t)
	js := domain.NewJsCompilerConfig(domain.JsCompilerConfig{OptimizationLevel: 4})

	gomock.InOrder(
		f.logger.EXPECT().Info("Compiling lib/main.dart for the Web..."),
		f.scrubber.EXPECT().Scrub(gomock.Any(), f.project).Return(nil),
		f.detector.EXPECT().HasWebPlugins(f.project).Return(true, nil),
		f.sdk.EXPECT().EngineVersion().Return("abc123", nil),
		f.executor.EXPECT().
			Run(gomock.Any(), domain.WebServiceWorkerTarget, gomock.Any(), []domain.CompilerConfig{js}).
			DoAndReturn(func(
				_ context.Context, _ string, env *domain.Environment, _ []domain.CompilerConfig,
			) (*domain.BuildResult, error) {
				assert.Equal(t, "abc123", env.EngineVersion)
				assert.True(t, env.GeneratePluginRegistry)
				assert.Equal(t, "lib/main.dart", env.Defines[domain.KeyTargetFile])
				assert.Equal(t, "offline-first", env.Defines[domain.KeyServiceWorkerStrategy])
				assert.Equal(t, "release", env.Defines[domain.KeyBuildMode])
				return domain.NewSuccessResult(), nil
			}),
		f.logger.EXPECT().Info("Built "+filepath.Join("build", "web")),
		f.telemetry.EXPECT().SendBuildEvent(gomock.Any(), domain.BuildEvent{
			Label:    "web-compile",
			Category: "web",
			Settings: "dryRun: false; web-renderer: html; web-target: js;",
		}),
	)

	require.NoError(t, f.app.BuildWeb(context.Background(), request(f, js)))
}

func TestBuildWeb_DualCompileTiming(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := setup(t)
		wasm := domain.NewWasmCompilerConfig(domain.WasmCompilerConfig{OptimizationLevel: 2, StripWasm: true})
		js := domain.NewJsCompilerConfig(domain.JsCompilerConfig{OptimizationLevel: 4})

		f.expectPrepare()
		f.executor.EXPECT().
			Run(gomock.Any(), domain.WebServiceWorkerTarget, gomock.Any(), gomock.Len(2)).
			DoAndReturn(func(
				context.Context, string, *domain.Environment, []domain.CompilerConfig,
			) (*domain.BuildResult, error) {
				time.Sleep(3 * time.Second)
				return domain.NewSuccessResult(), nil
			})
		f.logger.EXPECT().Info(gomock.Any())
		f.telemetry.EXPECT().SendBuildEvent(gomock.Any(), domain.BuildEvent{
			Label:    "web-compile",
			Category: "web",
			Settings: "dryRun: false; optimizationLevel: 2; web-renderer: skwasm,html; web-target: wasm,js;",
		})
		f.telemetry.EXPECT().SendTiming(gomock.Any(), domain.TimingEvent{
			Workflow:     "build",
			VariableName: "dual-compile",
			Elapsed:      3 * time.Second,
		})

		require.NoError(t, f.app.BuildWeb(context.Background(), request(f, wasm, js)))
	})
}

func TestBuildWeb_SingleCompileSendsNoTiming(t *testing.T) {
	f := setup(t)
	wasm := domain.NewWasmCompilerConfig(domain.WasmCompilerConfig{OptimizationLevel: 2})

	f.expectPrepare()
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.NewSuccessResult(), nil)
	f.logger.EXPECT().Info(gomock.Any())
	f.telemetry.EXPECT().SendBuildEvent(gomock.Any(), gomock.Any())
	f.telemetry.EXPECT().SendTiming(gomock.Any(), gomock.Any()).Times(0)

	require.NoError(t, f.app.BuildWeb(context.Background(), request(f, wasm)))
}

func TestBuildWeb_TargetFailures(t *testing.T) {
	f := setup(t)
	wasm := domain.NewWasmCompilerConfig(domain.WasmCompilerConfig{})
	js := domain.NewJsCompilerConfig(domain.JsCompilerConfig{})

	result := domain.NewSuccessResult()
	result.AddException(domain.ExceptionMeasurement{Target: "compile_wasm", Err: errors.New("wasm broke")})
	result.AddException(domain.ExceptionMeasurement{Target: "compile_js", Err: errors.New("js broke")})

	var logged []string
	f.expectPrepare()
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(result, nil)
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		logged = append(logged, err.Error())
	}).Times(2)
	f.telemetry.EXPECT().SendBuildEvent(gomock.Any(), gomock.Any()).Times(0)
	f.telemetry.EXPECT().SendTiming(gomock.Any(), gomock.Any()).Times(0)

	err := f.app.BuildWeb(context.Background(), request(f, wasm, js))
	require.ErrorIs(t, err, domain.ErrWebCompileFailed)
	assert.Equal(t, "Failed to compile application for the Web.", err.Error())
	assert.Equal(t, []string{
		"Target compile_wasm failed: wasm broke",
		"Target compile_js failed: js broke",
	}, logged)
}

func TestBuildWeb_FailureWrapsCause(t *testing.T) {
	cause := errors.New("boom")
	wasm := domain.NewWasmCompilerConfig(domain.WasmCompilerConfig{})

	tests := []struct {
		name  string
		setup func(f *fixture)
	}{
		{
			name: "scrub",
			setup: func(f *fixture) {
				f.scrubber.EXPECT().Scrub(gomock.Any(), gomock.Any()).Return(cause)
			},
		},
		{
			name: "plugins",
			setup: func(f *fixture) {
				f.scrubber.EXPECT().Scrub(gomock.Any(), gomock.Any()).Return(nil)
				f.detector.EXPECT().HasWebPlugins(gomock.Any()).Return(false, cause)
			},
		},
		{
			name: "engine version",
			setup: func(f *fixture) {
				f.scrubber.EXPECT().Scrub(gomock.Any(), gomock.Any()).Return(nil)
				f.detector.EXPECT().HasWebPlugins(gomock.Any()).Return(false, nil)
				f.sdk.EXPECT().EngineVersion().Return("", cause)
			},
		},
		{
			name: "executor",
			setup: func(f *fixture) {
				f.scrubber.EXPECT().Scrub(gomock.Any(), gomock.Any()).Return(nil)
				f.detector.EXPECT().HasWebPlugins(gomock.Any()).Return(false, nil)
				f.sdk.EXPECT().EngineVersion().Return("v1", nil)
				f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, cause)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.logger.EXPECT().Info(gomock.Any())
			tt.setup(f)

			err := f.app.BuildWeb(context.Background(), request(f, wasm))
			require.ErrorIs(t, err, domain.ErrWebCompileFailed)
			require.ErrorIs(t, err, cause)
			assert.Equal(t, "Failed to compile application for the Web.: boom", err.Error())
		})
	}
}

func TestBuildWeb_InvalidConfigs(t *testing.T) {
	wasm := domain.NewWasmCompilerConfig(domain.WasmCompilerConfig{})

	tests := []struct {
		name    string
		configs []domain.CompilerConfig
		want    error
	}{
		{name: "empty", configs: nil, want: domain.ErrNoCompilerConfigs},
		{name: "duplicate", configs: []domain.CompilerConfig{wasm, wasm}, want: domain.ErrDuplicateCompileTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No collaborator is touched before validation.
			f := setup(t)

			err := f.app.BuildWeb(context.Background(), request(f, tt.configs...))
			assert.ErrorContains(t, err, tt.want.Error())
		})
	}
}
