package ports

import "github.com/AlsoShantanuBorkar/flutter/internal/core/domain"

// Hasher defines the interface for computing target fingerprints.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeInputHash hashes the target definition, the environment defines
	// and the contents of the target inputs.
	ComputeInputHash(target *domain.Target, env *domain.Environment) (string, error)
}
