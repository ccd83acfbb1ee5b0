package cas_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/cas"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutAndGet(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()

	fp := domain.Fingerprint{
		Target:    "compile_js",
		InputHash: "abc",
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(root, fp))

	got, err := store.Get(root, "compile_js")
	require.NoError(t, err)
	require.NotNil(t, got)
	if diff := cmp.Diff(fp, *got); diff != "" {
		t.Errorf("fingerprint mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_GetMissing(t *testing.T) {
	got, err := cas.NewStore().Get(t.TempDir(), "compile_wasm")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Persistence(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, cas.NewStore().Put(root, domain.Fingerprint{Target: "web_release_bundle", InputHash: "xyz"}))

	got, err := cas.NewStore().Get(root, "web_release_bundle")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "xyz", got.InputHash)
}

func TestStore_Overwrite(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()

	require.NoError(t, store.Put(root, domain.Fingerprint{Target: "compile_js", InputHash: "one"}))
	require.NoError(t, store.Put(root, domain.Fingerprint{Target: "compile_js", InputHash: "two"}))

	got, err := store.Get(root, "compile_js")
	require.NoError(t, err)
	assert.Equal(t, "two", got.InputHash)
}

func TestStore_OmitZero(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, cas.NewStore().Put(root, domain.Fingerprint{Target: "target_zero"}))

	hash := sha256.Sum256([]byte("target_zero"))
	file := filepath.Join(domain.FingerprintDir(root), hex.EncodeToString(hash[:])+".json")

	//nolint:gosec // Test file with controlled path
	content, err := os.ReadFile(file)
	require.NoError(t, err)

	jsonStr := string(content)
	assert.NotContains(t, jsonStr, "input_hash")
	assert.NotContains(t, jsonStr, "timestamp")
	assert.True(t, strings.Contains(jsonStr, `"target"`))
}

func TestStore_Corrupt(t *testing.T) {
	root := t.TempDir()
	hash := sha256.Sum256([]byte("compile_js"))
	dir := domain.FingerprintDir(root)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, hex.EncodeToString(hash[:])+".json"), []byte("{"), 0o600))

	_, err := cas.NewStore().Get(root, "compile_js")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
}
