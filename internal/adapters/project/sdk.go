package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"go.trai.ch/zerr"
)

// FlutterRootEnv names the environment variable pointing at the SDK checkout.
const FlutterRootEnv = "FLUTTER_ROOT"

// SDK implements ports.SDK from an SDK checkout on disk.
type SDK struct {
	root string
}

// NewSDK creates an SDK rooted at root. An empty root means the SDK is
// unknown and the engine version is reported as empty.
func NewSDK(root string) *SDK {
	return &SDK{root: root}
}

// Root returns the SDK directory.
func (s *SDK) Root() string {
	return s.root
}

// EngineVersion reads bin/internal/engine.version.
func (s *SDK) EngineVersion() (string, error) {
	if s.root == "" {
		return "", nil
	}
	path := filepath.Join(s.root, "bin", "internal", "engine.version")
	//nolint:gosec // path is inside the SDK checkout
	data, err := os.ReadFile(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrEngineVersionReadFailed.Error()), "path", path)
	}
	return strings.TrimSpace(string(data)), nil
}
