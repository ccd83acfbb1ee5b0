// Package domain contains the core domain models of the web build: compiler
// configurations, renderer selection, the build environment and the target graph.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph represents a dependency graph of targets.
type Graph struct {
	targets        map[string]Target
	dependents     map[string][]string
	executionOrder []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		targets:    make(map[string]Target),
		dependents: make(map[string][]string),
	}
}

// AddTarget adds a target to the graph.
// It returns an error if a target with the same name already exists.
func (g *Graph) AddTarget(t *Target) error {
	if _, exists := g.targets[t.Name]; exists {
		return zerr.With(ErrTargetAlreadyExists, "target", t.Name)
	}
	g.targets[t.Name] = *t
	return nil
}

// Target returns the target with the given name.
func (g *Graph) Target(name string) (Target, bool) {
	t, ok := g.targets[name]
	return t, ok
}

// TargetCount returns the number of targets in the graph.
func (g *Graph) TargetCount() int {
	return len(g.targets)
}

// Validate checks for missing dependencies and cycles using a topological sort.
// It populates the execution order used by Walk. Targets are visited in name
// order so the order is stable across runs.
func (g *Graph) Validate() error {
	g.executionOrder = make([]string, 0, len(g.targets))
	g.dependents = make(map[string][]string, len(g.targets))
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(u string) error
	visit = func(u string) error {
		visited[u] = 1
		path = append(path, u)

		for _, dep := range g.targets[u].Dependencies {
			if _, exists := g.targets[dep]; !exists {
				err := zerr.With(ErrMissingDependency, "target", u)
				return zerr.With(err, "dependency", dep)
			}
			if visited[dep] == 1 {
				return buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	names := make([]string, 0, len(g.targets))
	for name := range g.targets {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
		for _, dep := range g.targets[name].Dependencies {
			g.dependents[dep] = append(g.dependents[dep], name)
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []string, dep string) error {
	start := slices.Index(path, dep)
	cycle := append(slices.Clone(path[start:]), dep)
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(cycle, " -> "))
}

// Walk returns an iterator that yields targets in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Target] {
	return func(yield func(Target) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.targets[name]) {
				return
			}
		}
	}
}

// Dependents returns the names of the targets that depend directly on name.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Dependents(name string) []string {
	return g.dependents[name]
}
