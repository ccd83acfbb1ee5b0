// Package cas stores target fingerprints, one file per target.
package cas

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/natefinch/atomic"
	"go.trai.ch/zerr"
)

// Store implements ports.FingerprintStore. Files live under
// domain.FingerprintDir(root) and are named after the hashed target name.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the fingerprint for a given target name.
func (s *Store) Get(root, target string) (*domain.Fingerprint, error) {
	filename := s.filename(root, target)
	//nolint:gosec // Path is constructed from the build directory and a hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "target", target)
	}

	var fp domain.Fingerprint
	if err := json.Unmarshal(data, &fp); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "target", target)
	}

	return &fp, nil
}

// Put stores the fingerprint. The file is replaced atomically so an
// interrupted build never leaves a truncated record behind.
func (s *Store) Put(root string, fp domain.Fingerprint) error {
	data, err := json.MarshalIndent(fp, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.filename(root, fp.Target)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "target", fp.Target)
	}

	if err := atomic.WriteFile(filename, bytes.NewReader(data)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "target", fp.Target)
	}

	return nil
}

func (s *Store) filename(root, target string) string {
	hash := sha256.Sum256([]byte(target))
	return filepath.Join(domain.FingerprintDir(root), hex.EncodeToString(hash[:])+".json")
}
