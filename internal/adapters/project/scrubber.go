package project

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"github.com/natefinch/atomic"
	"go.trai.ch/zerr"
)

// Scrubber implements ports.PluginRegistryScrubber. It removes the registrant
// older tool versions generated into lib/, along with its .gitignore entry.
type Scrubber struct {
	logger ports.Logger
}

// NewScrubber creates a new Scrubber.
func NewScrubber(logger ports.Logger) *Scrubber {
	return &Scrubber{logger: logger}
}

// Scrub removes the generated registrant if present.
func (s *Scrubber) Scrub(_ context.Context, project *domain.Project) error {
	registrant := filepath.Join(project.Dir, filepath.FromSlash(domain.GeneratedRegistrantPath))
	if _, err := os.Stat(registrant); errors.Is(err, fs.ErrNotExist) {
		s.logger.Trace(filepath.Base(registrant) + " not found. Skipping.")
		return nil
	}

	if err := os.Remove(registrant); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrScrubFailed.Error()), "path", registrant)
	}

	return s.removeGitignoreEntry(project.Dir)
}

func (s *Scrubber) removeGitignoreEntry(dir string) error {
	path := filepath.Join(dir, ".gitignore")
	//nolint:gosec // path is inside the project being built
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrScrubFailed.Error()), "path", path)
	}

	lines := bytes.SplitAfter(data, []byte("\n"))
	kept := make([][]byte, 0, len(lines))
	for _, line := range lines {
		if string(bytes.TrimSpace(line)) == domain.GeneratedRegistrantPath {
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) == len(lines) {
		return nil
	}

	if err := atomic.WriteFile(path, bytes.NewReader(bytes.Join(kept, nil))); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrScrubFailed.Error()), "path", path)
	}
	s.logger.Trace("removed " + domain.GeneratedRegistrantPath + " from .gitignore")
	return nil
}
