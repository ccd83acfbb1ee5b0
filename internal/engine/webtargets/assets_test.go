package webtargets_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports/mocks"
	"github.com/AlsoShantanuBorkar/flutter/internal/engine/webtargets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func buildTarget(t *testing.T, env *domain.Environment, log *mocks.MockLogger, name string) domain.Target {
	t.Helper()
	ctrl := gomock.NewController(t)
	builder := webtargets.NewBuilder(mocks.NewMockCommandRunner(ctrl), log)
	g, err := builder.Build(domain.WebServiceWorkerTarget, env, []domain.CompilerConfig{
		domain.NewJsCompilerConfig(domain.JsCompilerConfig{}),
	})
	require.NoError(t, err)
	target, ok := g.Target(name)
	require.True(t, ok)
	return target
}

func TestBundle_CopiesWebAssets(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Trace("copied 2 web assets (34 B) to build/web").Times(1)

	env := newEnv(t, domain.BuildInfo{}, domain.ServiceWorkerOfflineFirst)
	writeFile(t, filepath.Join(env.ProjectDir, "web", "index.html"), `<base href="$FLUTTER_BASE_HREF"><p>app</p>`)
	writeFile(t, filepath.Join(env.ProjectDir, "web", "icons", "Icon-192.png"), "png-bytes")

	bundle := buildTarget(t, env, log, webtargets.ReleaseBundleTarget)
	require.NoError(t, bundle.Action.Run(context.Background(), env))

	index, err := os.ReadFile(filepath.Join(env.OutputDir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, `<base href="/"><p>app</p>`, string(index))
	assert.FileExists(t, filepath.Join(env.OutputDir, "icons", "Icon-192.png"))

	info, err := os.Stat(filepath.Join(env.OutputDir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())
}

func TestBundle_MissingIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	env := newEnv(t, domain.BuildInfo{}, domain.ServiceWorkerOfflineFirst)

	bundle := buildTarget(t, env, mocks.NewMockLogger(ctrl), webtargets.ReleaseBundleTarget)
	err := bundle.Action.Run(context.Background(), env)
	require.Error(t, err)
	assert.ErrorContains(t, err, "missing index.html")
}

func TestBundle_RemovesStaleBackendOutputs(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Trace("removed stale build/web/main.dart.wasm")
	log.EXPECT().Trace("removed stale build/web/main.dart.mjs")
	log.EXPECT().Trace(gomock.Any()).Times(2)

	env := newEnv(t, domain.BuildInfo{}, domain.ServiceWorkerOfflineFirst)
	writeFile(t, filepath.Join(env.ProjectDir, "web", "index.html"), "<html></html>")
	writeFile(t, filepath.Join(env.OutputDir, "main.dart.wasm"), "wasm from an earlier build")
	writeFile(t, filepath.Join(env.OutputDir, "main.dart.mjs"), "mjs from an earlier build")
	writeFile(t, filepath.Join(env.OutputDir, "main.dart.js"), "main();")

	bundle := buildTarget(t, env, log, webtargets.ReleaseBundleTarget)
	require.NoError(t, bundle.Action.Run(context.Background(), env))

	assert.NoFileExists(t, filepath.Join(env.OutputDir, "main.dart.wasm"))
	assert.NoFileExists(t, filepath.Join(env.OutputDir, "main.dart.mjs"))
	assert.FileExists(t, filepath.Join(env.OutputDir, "main.dart.js"))

	sw := buildTarget(t, env, log, domain.WebServiceWorkerTarget)
	require.NoError(t, sw.Action.Run(context.Background(), env))

	script, err := os.ReadFile(filepath.Join(env.OutputDir, domain.ServiceWorkerFileName))
	require.NoError(t, err)
	assert.NotContains(t, string(script), "main.dart.wasm")
	assert.Contains(t, string(script), `const CORE = ["main.dart.js","index.html"];`)
}

func TestServiceWorker_OfflineFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Trace("wrote flutter_service_worker.js (offline-first)").Times(1)

	env := newEnv(t, domain.BuildInfo{}, domain.ServiceWorkerOfflineFirst)
	writeFile(t, filepath.Join(env.OutputDir, "index.html"), "<html></html>")
	writeFile(t, filepath.Join(env.OutputDir, "main.dart.js"), "main();")
	writeFile(t, filepath.Join(env.OutputDir, "assets", "FontManifest.json"), "[]")

	sw := buildTarget(t, env, log, domain.WebServiceWorkerTarget)
	require.NoError(t, sw.Action.Run(context.Background(), env))

	script, err := os.ReadFile(filepath.Join(env.OutputDir, domain.ServiceWorkerFileName))
	require.NoError(t, err)
	assert.Contains(t, string(script), `"main.dart.js": "`)
	assert.Contains(t, string(script), `"assets/FontManifest.json": "`)
	assert.Contains(t, string(script), `"/": "`)
	assert.Contains(t, string(script), `const CORE = ["main.dart.js","index.html","assets/FontManifest.json"];`)
}

func TestServiceWorker_None(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Trace("wrote flutter_service_worker.js (none)").Times(1)

	env := newEnv(t, domain.BuildInfo{}, domain.ServiceWorkerNone)

	sw := buildTarget(t, env, log, domain.WebServiceWorkerTarget)
	require.NoError(t, sw.Action.Run(context.Background(), env))

	script, err := os.ReadFile(filepath.Join(env.OutputDir, domain.ServiceWorkerFileName))
	require.NoError(t, err)
	assert.Contains(t, string(script), "self.registration.unregister()")
	assert.NotContains(t, string(script), "RESOURCES")
}

func TestResourceManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.html"), "<html></html>")
	writeFile(t, filepath.Join(dir, "main.dart.js"), "main();")
	writeFile(t, filepath.Join(dir, domain.ServiceWorkerFileName), "stale")

	manifest, err := webtargets.ResourceManifest(context.Background(), dir)
	require.NoError(t, err)

	assert.Len(t, manifest, 3)
	assert.Equal(t, manifest["index.html"], manifest["/"])
	assert.NotContains(t, manifest, domain.ServiceWorkerFileName)
}

func TestRenderServiceWorker_Deterministic(t *testing.T) {
	manifest := map[string]string{"main.dart.js": "1f", "index.html": "2e", "/": "2e"}

	first, err := webtargets.RenderServiceWorker(manifest)
	require.NoError(t, err)
	second, err := webtargets.RenderServiceWorker(manifest)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	changed, err := webtargets.RenderServiceWorker(map[string]string{"main.dart.js": "3d", "index.html": "2e", "/": "2e"})
	require.NoError(t, err)
	assert.NotEqual(t, string(first), string(changed))
}
