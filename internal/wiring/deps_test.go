package wiring_test

import (
	"context"
	"testing"

	"github.com/AlsoShantanuBorkar/flutter/internal/app"
	_ "github.com/AlsoShantanuBorkar/flutter/internal/wiring"
	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
)

// TestGraftDependencies ensures that the dependency injection graph is valid
// at compile/test time. It checks that every node declaring a dependency
// actually uses it, and every used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers the dependency ID from the package name of
	// the interface used in Dep[T]. Every port lives in the shared ports
	// package, so the inferred IDs never match the adapter node IDs.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

func TestComponentsResolve(t *testing.T) {
	t.Setenv("FLUTTER_ROOT", t.TempDir())

	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
	require.NotNil(t, components.Loader)
}
