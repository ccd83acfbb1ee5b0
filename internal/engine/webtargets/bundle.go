package webtargets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"
	"go.trai.ch/zerr"
)

const (
	indexFileName   = "index.html"
	baseHrefMarker  = "$FLUTTER_BASE_HREF"
	defaultBaseHref = "/"
)

type bundleAction struct {
	logger ports.Logger
	stale  []string
}

// Run removes compiler outputs this build does not produce, then copies web/
// into the output directory. index.html is required and has its base href
// placeholder filled in.
func (a *bundleAction) Run(ctx context.Context, env *domain.Environment) error {
	if err := a.removeStale(env); err != nil {
		return err
	}

	webDir := filepath.Join(env.ProjectDir, domain.WebDirName)
	if _, err := os.Stat(filepath.Join(webDir, indexFileName)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(zerr.New("missing index.html"), domain.ErrAssetCopyFailed.Error()), "dir", webDir)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrAssetCopyFailed.Error()), "dir", webDir)
	}

	var files int
	var size uint64
	err := filepath.WalkDir(webDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(webDir, path)
		if err != nil {
			return err
		}
		n, err := copyAsset(path, filepath.Join(env.OutputDir, rel), rel == indexFileName)
		if err != nil {
			return zerr.With(err, "file", rel)
		}
		files++
		size += n
		return nil
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrAssetCopyFailed.Error())
	}

	a.logger.Trace(fmt.Sprintf("copied %d web assets (%s) to %s", files, humanize.Bytes(size), relativeTo(env.ProjectDir, env.OutputDir)))
	return nil
}

func (a *bundleAction) removeStale(env *domain.Environment) error {
	for _, path := range a.stale {
		err := os.Remove(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrAssetCopyFailed.Error()), "path", path)
		}
		a.logger.Trace("removed stale " + relativeTo(env.ProjectDir, path))
	}
	return nil
}

func copyAsset(src, dst string, isIndex bool) (uint64, error) {
	//nolint:gosec // src is inside the project web directory
	data, err := os.ReadFile(src)
	if err != nil {
		return 0, err
	}
	if isIndex {
		data = bytes.ReplaceAll(data, []byte(baseHrefMarker), []byte(defaultBaseHref))
	}
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return 0, err
	}
	if err := writeFile(dst, data); err != nil {
		return 0, err
	}
	return uint64(len(data)), nil
}

// writeFile replaces path atomically. New files get domain.FilePerm so the
// output directory can be served as is.
func writeFile(path string, data []byte) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return err
	}
	return os.Chmod(path, domain.FilePerm)
}
