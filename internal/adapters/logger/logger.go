// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
)

// messager describes an error that can report its own message without the chain.
// zerr.Error implements it.
type messager interface {
	Message() string
}

// metadataer describes an error that carries structured fields.
type metadataer interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
// Status lines go to Info, verbose output to Trace (slog debug level).
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	level    *slog.LevelVar
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger writing pretty output to stderr.
func New() *Logger {
	l := &Logger{
		level:  &slog.LevelVar{},
		output: os.Stderr,
	}
	l.level.Set(slog.LevelInfo)
	l.rebuild()
	return l
}

func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: l.level}
	if l.jsonMode {
		l.logger = slog.New(slog.NewJSONHandler(l.output, opts))
		return
	}
	l.logger = slog.New(NewPrettyHandler(l.output, opts))
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetVerbose shows or hides trace output.
func (l *Logger) SetVerbose(enable bool) {
	if enable {
		l.level.Set(slog.LevelDebug)
		return
	}
	l.level.Set(slog.LevelInfo)
}

// Info logs a status message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Trace logs verbose output. It is hidden unless verbose logging is enabled.
func (l *Logger) Trace(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Error logs an error and its causes.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// errorEntry is one link of an error chain.
type errorEntry struct {
	message string
	fields  []string
}

// collectErrorEntries walks the chain of zerr errors. A standard error ends
// the walk since its Error() already includes its causes.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error()})
			break
		}

		entry := errorEntry{message: m.Message()}
		if md, ok := current.(metadataer); ok {
			meta := md.Metadata()
			for _, k := range slices.Sorted(maps.Keys(meta)) {
				entry.fields = append(entry.fields, fmt.Sprintf("%s=%v", k, meta[k]))
			}
		}
		if entry.message != "" || len(entry.fields) > 0 {
			entries = append(entries, entry)
		}
		current = errors.Unwrap(current)
	}
	return entries
}

// formatErrorEntries renders the head error followed by an indented list of causes.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string
	for i, e := range entries {
		text := e.message
		if len(e.fields) > 0 {
			text = strings.TrimSpace(text + " (" + strings.Join(e.fields, ", ") + ")")
		}
		parts := strings.Split(text, "\n")

		if i == 0 {
			lines = append(lines, parts[0])
			for _, p := range parts[1:] {
				lines = append(lines, "  "+p)
			}
			continue
		}
		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+parts[0])
		for _, p := range parts[1:] {
			lines = append(lines, "      "+p)
		}
	}
	return strings.Join(lines, "\n")
}
