package ports

import "github.com/AlsoShantanuBorkar/flutter/internal/core/domain"

// FingerprintStore defines the interface for storing and retrieving target fingerprints.
// root is the build directory of the project being built.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type FingerprintStore interface {
	// Get retrieves the fingerprint for a given target name.
	// Returns nil, nil if not found.
	Get(root, target string) (*domain.Fingerprint, error)

	// Put stores the fingerprint.
	Put(root string, fp domain.Fingerprint) error
}
