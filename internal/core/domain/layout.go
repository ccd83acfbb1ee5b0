package domain

import "path/filepath"

// Project layout.
const (
	// PubspecFileName is the project manifest.
	PubspecFileName = "pubspec.yaml"
	// PluginDependenciesFileName lists the resolved plugins per platform.
	PluginDependenciesFileName = ".flutter-plugins-dependencies"
	// GeneratedRegistrantPath is the legacy generated plugin registrant, relative to the project.
	GeneratedRegistrantPath = "lib/generated_plugin_registrant.dart"
	// WebDirName holds the web entrypoint and static assets.
	WebDirName = "web"
	// ServiceWorkerFileName is the service worker written into the output directory.
	ServiceWorkerFileName = "flutter_service_worker.js"
)

// Permissions for files and directories created by the build.
const (
	DirPerm  = 0o750
	FilePerm = 0o644
)

// FingerprintDir returns the directory holding target fingerprints for buildDir.
func FingerprintDir(buildDir string) string {
	return filepath.Join(buildDir, "fingerprints")
}
