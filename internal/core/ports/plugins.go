package ports

import (
	"context"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=plugins.go -destination=mocks/mock_plugins.go -package=mocks

// PluginRegistryScrubber removes stale generated plugin registrants from a project.
type PluginRegistryScrubber interface {
	// Scrub migrates the project. It is a no-op when nothing needs removing.
	Scrub(ctx context.Context, project *domain.Project) error
}

// PluginDetector reports which plugins a project uses.
type PluginDetector interface {
	// HasWebPlugins reports whether any plugin with a web implementation is registered.
	HasWebPlugins(project *domain.Project) (bool, error)
}
