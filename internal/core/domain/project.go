package domain

// Project is the handle of the application being built.
type Project struct {
	// Dir is the absolute path of the project root.
	Dir string
	// Name is the package name declared in pubspec.yaml.
	Name string
	// Dependencies lists the package names the project depends on.
	Dependencies []string
}
