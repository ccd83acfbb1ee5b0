package domain

import (
	"encoding/base64"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Keys of the build environment defines.
const (
	KeyTargetFile            = "TargetFile"
	KeyHasWebPlugins         = "HasWebPlugins"
	KeyServiceWorkerStrategy = "ServiceWorkerStrategy"
	KeyBuildMode             = "BuildMode"
	KeyDartObfuscation       = "DartObfuscation"
	KeyTrackWidgetCreation   = "TrackWidgetCreation"
	KeyTreeShakeIcons        = "TreeShakeIcons"
	KeyDartDefines           = "DartDefines"
)

// ServiceWorkerStrategy controls how the generated service worker caches assets.
type ServiceWorkerStrategy string

const (
	// ServiceWorkerOfflineFirst caches the app shell and serves it before the network.
	ServiceWorkerOfflineFirst ServiceWorkerStrategy = "offline-first"
	// ServiceWorkerNone generates a worker that unregisters itself.
	ServiceWorkerNone ServiceWorkerStrategy = "none"
)

// ParseServiceWorkerStrategy parses a strategy short name.
func ParseServiceWorkerStrategy(name string) (ServiceWorkerStrategy, error) {
	switch s := ServiceWorkerStrategy(name); s {
	case ServiceWorkerOfflineFirst, ServiceWorkerNone:
		return s, nil
	default:
		return "", zerr.With(ErrInvalidServiceWorkerStrategy, "strategy", name)
	}
}

// BuildMode is the optimization profile of a build.
type BuildMode string

const (
	// BuildModeDebug builds with assertions and debugging support.
	BuildModeDebug BuildMode = "debug"
	// BuildModeProfile builds optimized code that keeps profiling hooks.
	BuildModeProfile BuildMode = "profile"
	// BuildModeRelease builds fully optimized code.
	BuildModeRelease BuildMode = "release"
)

// BuildInfo carries the build-mode bundle supplied by the caller.
// It is passed through to the environment unchanged.
type BuildInfo struct {
	Mode                BuildMode
	DartObfuscation     bool
	TrackWidgetCreation bool
	TreeShakeIcons      bool
	DartDefines         []string
}

// Environment is the flat input of the target executor.
type Environment struct {
	Defines                map[string]string
	EngineVersion          string
	GeneratePluginRegistry bool

	ProjectDir string
	OutputDir  string
	BuildDir   string
}

// NewEnvironment merges the project, build-mode and strategy inputs into an
// Environment. It does not depend on which compiler backends are requested.
func NewEnvironment(
	project *Project,
	targetFile string,
	info BuildInfo,
	hasWebPlugins bool,
	strategy ServiceWorkerStrategy,
	engineVersion string,
) *Environment {
	defines := map[string]string{
		KeyTargetFile:            targetFile,
		KeyHasWebPlugins:         strconv.FormatBool(hasWebPlugins),
		KeyServiceWorkerStrategy: string(strategy),
		KeyBuildMode:             string(info.Mode),
		KeyDartObfuscation:       strconv.FormatBool(info.DartObfuscation),
		KeyTrackWidgetCreation:   strconv.FormatBool(info.TrackWidgetCreation),
		KeyTreeShakeIcons:        strconv.FormatBool(info.TreeShakeIcons),
	}
	if len(info.DartDefines) > 0 {
		defines[KeyDartDefines] = EncodeDartDefines(info.DartDefines)
	}

	return &Environment{
		Defines:                defines,
		EngineVersion:          engineVersion,
		GeneratePluginRegistry: hasWebPlugins,
		ProjectDir:             project.Dir,
		OutputDir:              filepath.Join(project.Dir, "build", "web"),
		BuildDir:               filepath.Join(project.Dir, ".dart_tool", "flutter_build"),
	}
}

// DartDefines returns the user dart-defines recorded in the environment.
func (e *Environment) DartDefines() []string {
	return DecodeDartDefines(e.Defines[KeyDartDefines])
}

// EncodeDartDefines joins defines into a single value. Each define is base64
// encoded so values may contain commas.
func EncodeDartDefines(defines []string) string {
	encoded := make([]string, len(defines))
	for i, d := range defines {
		encoded[i] = base64.StdEncoding.EncodeToString([]byte(d))
	}
	return strings.Join(encoded, ",")
}

// DecodeDartDefines reverses EncodeDartDefines. Malformed entries are dropped.
func DecodeDartDefines(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	defines := make([]string, 0, len(parts))
	for _, p := range parts {
		b, err := base64.StdEncoding.DecodeString(p)
		if err != nil {
			continue
		}
		defines = append(defines, string(b))
	}
	return defines
}
