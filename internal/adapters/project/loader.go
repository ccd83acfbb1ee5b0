// Package project reads project metadata and performs project migrations.
package project

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var validPackageNameRegex = regexp.MustCompile("^[a-z][a-z0-9_]*$")

// Loader implements ports.ProjectLoader using pubspec.yaml.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds the nearest pubspec.yaml at or above dir and reads it.
func (l *Loader) Load(dir string) (*domain.Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrProjectLoadFailed.Error()), "dir", dir)
	}

	root, err := findProjectRoot(abs)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(root, domain.PubspecFileName)
	var pubspec Pubspec
	if err := readAndUnmarshalYAML(path, &pubspec); err != nil {
		return nil, err
	}

	if pubspec.Name == "" {
		return nil, zerr.With(zerr.Wrap(zerr.New("missing 'name'"), domain.ErrProjectLoadFailed.Error()), "path", path)
	}
	if !validPackageNameRegex.MatchString(pubspec.Name) {
		l.Logger.Warn(fmt.Sprintf("package name %q in %s is not a valid Dart identifier", pubspec.Name, domain.PubspecFileName))
	}

	return &domain.Project{
		Dir:          root,
		Name:         pubspec.Name,
		Dependencies: slices.Sorted(maps.Keys(pubspec.Dependencies)),
	}, nil
}

func findProjectRoot(start string) (string, error) {
	current := start
	for {
		if _, err := os.Stat(filepath.Join(current, domain.PubspecFileName)); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", zerr.With(zerr.Wrap(zerr.New("no pubspec.yaml found"), domain.ErrProjectLoadFailed.Error()), "dir", start)
}

func readAndUnmarshalYAML(path string, v any) error {
	//nolint:gosec // path is the manifest of the project being built
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrProjectLoadFailed.Error()), "path", path)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrProjectLoadFailed.Error()), "path", path)
	}
	return nil
}
