package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/fs"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config"), "git config")
	writeFile(t, filepath.Join(tmpDir, ".dart_tool", "package_config.json"), "{}")
	writeFile(t, filepath.Join(tmpDir, "ignored", "file"), "ignored content")
	writeFile(t, filepath.Join(tmpDir, "lib", "main.dart"), "void main() {}")
	writeFile(t, filepath.Join(tmpDir, "README.md"), "# Readme")

	files := slices.Collect(fs.NewWalker().WalkFiles(tmpDir, []string{"ignored"}))

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "README.md"),
		filepath.Join(tmpDir, "lib", "main.dart"),
	}, files)
}

func TestWalker_WalkFiles_StopEarly(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.txt"), "a")
	writeFile(t, filepath.Join(tmpDir, "b.txt"), "b")

	var seen int
	for range fs.NewWalker().WalkFiles(tmpDir, nil) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestHasher_ComputeFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hasher_test")
	writeFile(t, path, "hello world")

	hasher := fs.NewHasher(fs.NewWalker())

	hash1, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.NotZero(t, hash1)

	hash2, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2)
}

func TestHasher_ComputeFileHash_Missing(t *testing.T) {
	_, err := fs.NewHasher(fs.NewWalker()).ComputeFileHash(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFileOpenFailed.Error())
}

func TestHasher_ComputeInputHash(t *testing.T) {
	tmpDir := t.TempDir()
	mainFile := filepath.Join(tmpDir, "lib", "main.dart")
	writeFile(t, mainFile, "void main() {}")
	writeFile(t, filepath.Join(tmpDir, "pubspec.yaml"), "name: app\n")

	hasher := fs.NewHasher(fs.NewWalker())
	target := &domain.Target{Name: "compile_js", Inputs: []string{"lib", "pubspec.yaml"}}
	env := &domain.Environment{
		ProjectDir: tmpDir,
		Defines:    map[string]string{domain.KeyBuildMode: "release"},
	}

	hash1, err := hasher.ComputeInputHash(target, env)
	require.NoError(t, err)
	assert.Len(t, hash1, 16)

	again, err := hasher.ComputeInputHash(target, env)
	require.NoError(t, err)
	assert.Equal(t, hash1, again, "hash must be deterministic")

	renamed := &domain.Target{Name: "compile_wasm", Inputs: target.Inputs}
	hash2, err := hasher.ComputeInputHash(renamed, env)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash2, "target name")

	profile := &domain.Environment{
		ProjectDir: tmpDir,
		Defines:    map[string]string{domain.KeyBuildMode: "profile"},
	}
	hash3, err := hasher.ComputeInputHash(target, profile)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash3, "defines")

	engine := &domain.Environment{ProjectDir: tmpDir, Defines: env.Defines, EngineVersion: "abc123"}
	hash4, err := hasher.ComputeInputHash(target, engine)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash4, "engine version")

	keyed := &domain.Target{Name: target.Name, Inputs: target.Inputs, Key: []string{"dart", "compile", "js", "-O1"}}
	hash6, err := hasher.ComputeInputHash(keyed, env)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash6, "key")

	keyed.Key = []string{"dart", "compile", "js", "-O4"}
	hash7, err := hasher.ComputeInputHash(keyed, env)
	require.NoError(t, err)
	assert.NotEqual(t, hash6, hash7, "key contents")

	writeFile(t, mainFile, "void main() { print('hi'); }")
	hash5, err := hasher.ComputeInputHash(target, env)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash5, "file content")
}

func TestHasher_ComputeInputHash_MissingInput(t *testing.T) {
	tmpDir := t.TempDir()
	hasher := fs.NewHasher(fs.NewWalker())
	target := &domain.Target{Name: "web_release_bundle", Inputs: []string{"web"}}
	env := &domain.Environment{ProjectDir: tmpDir}

	before, err := hasher.ComputeInputHash(target, env)
	require.NoError(t, err)

	writeFile(t, filepath.Join(tmpDir, "web", "index.html"), "<html></html>")
	after, err := hasher.ComputeInputHash(target, env)
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}
