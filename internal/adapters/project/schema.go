package project

import "gopkg.in/yaml.v3"

// Pubspec is the subset of pubspec.yaml the build reads.
type Pubspec struct {
	Name         string               `yaml:"name"`
	Dependencies map[string]yaml.Node `yaml:"dependencies"`
}

// pluginDependencies mirrors .flutter-plugins-dependencies.
type pluginDependencies struct {
	Plugins map[string][]pluginEntry `json:"plugins"`
}

type pluginEntry struct {
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	Dependencies []string `json:"dependencies"`
}
