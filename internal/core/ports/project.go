package ports

import "github.com/AlsoShantanuBorkar/flutter/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=project.go -destination=mocks/mock_project.go -package=mocks

// ProjectLoader defines the interface for loading project metadata.
type ProjectLoader interface {
	// Load reads the project rooted at dir.
	Load(dir string) (*domain.Project, error)
}

// SDK describes the toolchain the build runs with.
type SDK interface {
	// EngineVersion returns the revision of the engine artifacts.
	EngineVersion() (string, error)
}
