package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputVerifier = (*Verifier)(nil)

// Verifier decides whether compiler outputs from an earlier build can be reused.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyOutputs reports whether every output below root is a non-empty
// regular file.
func (v *Verifier) VerifyOutputs(root string, outputs []string) (bool, error) {
	for _, output := range outputs {
		usable, err := usableArtifact(filepath.Join(root, output))
		if err != nil || !usable {
			return false, err
		}
	}
	return true, nil
}

func usableArtifact(path string) (bool, error) {
	info, err := os.Lstat(path)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, zerr.With(zerr.Wrap(err, "failed to stat output"), "path", path)
	}
	return info.Mode().IsRegular() && info.Size() > 0, nil
}
