// Package shell runs compiler processes.
package shell

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Runner)(nil)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger  ports.Logger
	sdkRoot string
}

// NewRunner creates a new Runner. When sdkRoot is set, the SDK tool
// directories are searched before the system PATH.
func NewRunner(logger ports.Logger, sdkRoot string) *Runner {
	return &Runner{logger: logger, sdkRoot: sdkRoot}
}

// Run executes cmd and waits for it to complete.
// The environment is merged with the following priority (low to high):
// 1. os.Environ()
// 2. SDK tool directories, prepended to PATH
// 3. cmd.Env overrides
//
// Standard output lines are traced and standard error lines are warnings.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) error {
	if len(cmd.Args) == 0 {
		return domain.ErrEmptyCommand
	}

	name := cmd.Args[0]
	env := resolveEnvironment(os.Environ(), r.sdkPaths(), cmd.Env)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args[1:]...) //nolint:gosec // arguments are built by the target graph
	c.Args[0] = name
	c.Dir = cmd.Dir
	c.Env = env

	stdout := &logWriter{emit: r.logger.Trace}
	stderr := &logWriter{emit: r.logger.Warn}
	c.Stdout = stdout
	c.Stderr = stderr

	err := c.Run()
	_ = stdout.Close()
	_ = stderr.Close()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "exit_code", exitCode)
		return zerr.With(wrapped, "command", strings.Join(cmd.Args, " "))
	}

	return nil
}

func (r *Runner) sdkPaths() []string {
	if r.sdkRoot == "" {
		return nil
	}
	return []string{
		filepath.Join(r.sdkRoot, "bin", "cache", "dart-sdk", "bin"),
		filepath.Join(r.sdkRoot, "bin"),
	}
}

// logWriter splits process output into lines. os/exec copies stdout and
// stderr from separate goroutines, so each writer guards its own buffer.
type logWriter struct {
	mu   sync.Mutex
	emit func(string)
	buf  []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	w.emit(strings.TrimSuffix(string(line), "\r"))
}

// resolveEnvironment merges environment variables with the defined priority.
// The result is sorted by key.
func resolveEnvironment(sysEnv, prependPath []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	if len(prependPath) > 0 {
		parts := slices.Clone(prependPath)
		if sysPath := envMap["PATH"]; sysPath != "" {
			parts = append(parts, sysPath)
		}
		envMap["PATH"] = strings.Join(parts, string(os.PathListSeparator))
	}

	maps.Copy(envMap, overrides)

	result := make([]string, 0, len(envMap))
	for _, k := range slices.Sorted(maps.Keys(envMap)) {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env rather than the current process environment.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "PATH="); ok {
			path = after
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
