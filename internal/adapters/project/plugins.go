package project

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"go.trai.ch/zerr"
)

const webPlatform = "web"

// Detector implements ports.PluginDetector.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// HasWebPlugins reports whether .flutter-plugins-dependencies lists any web
// plugin. A project that never resolved plugins has none.
func (d *Detector) HasWebPlugins(project *domain.Project) (bool, error) {
	path := filepath.Join(project.Dir, domain.PluginDependenciesFileName)
	//nolint:gosec // path is inside the project being built
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrPluginListReadFailed.Error()), "path", path)
	}

	var deps pluginDependencies
	if err := json.Unmarshal(data, &deps); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrPluginListReadFailed.Error()), "path", path)
	}
	return len(deps.Plugins[webPlatform]) > 0, nil
}
