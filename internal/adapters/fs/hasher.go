package fs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// missingMarker is mixed into the digest for inputs that do not exist, so that
// creating them later changes the fingerprint.
const missingMarker = "\x00missing\x00"

// Hasher computes target fingerprints with xxhash.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the xxhash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeInputHash hashes the target definition and key, the environment
// defines and the engine version, then the contents of every input below the
// project directory.
func (h *Hasher) ComputeInputHash(target *domain.Target, env *domain.Environment) (string, error) {
	hasher := xxhash.New()

	h.hashTargetDefinition(target, hasher)
	h.hashEnvironment(env, hasher)

	for _, input := range target.Inputs {
		if err := h.hashInputPath(filepath.Join(env.ProjectDir, input), hasher); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) hashTargetDefinition(target *domain.Target, hasher *xxhash.Digest) {
	_, _ = hasher.WriteString(target.Name)
	_, _ = hasher.Write([]byte{0})

	for _, section := range [][]string{target.Inputs, target.Outputs, target.Dependencies, target.Key} {
		for _, s := range section {
			_, _ = hasher.WriteString(s)
			_, _ = hasher.Write([]byte{0})
		}
		_, _ = hasher.Write([]byte{0})
	}
}

func (h *Hasher) hashEnvironment(env *domain.Environment, hasher *xxhash.Digest) {
	for _, k := range slices.Sorted(maps.Keys(env.Defines)) {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(env.Defines[k])
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.WriteString(env.EngineVersion)
	_, _ = hasher.Write([]byte{0})
}

func (h *Hasher) hashInputPath(path string, hasher io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			_, _ = io.WriteString(hasher, path+missingMarker)
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}

	if !info.IsDir() {
		return h.hashFile(path, hasher)
	}
	for file := range h.walker.WalkFiles(path, nil) {
		if err := h.hashFile(file, hasher); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashFile(path string, hasher io.Writer) error {
	_, _ = io.WriteString(hasher, path)
	_, _ = hasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(hasher, binary.LittleEndian, hash); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}
	return nil
}
