// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/AlsoShantanuBorkar/flutter/internal/adapters/cas"
	_ "github.com/AlsoShantanuBorkar/flutter/internal/adapters/fs"
	_ "github.com/AlsoShantanuBorkar/flutter/internal/adapters/logger"
	_ "github.com/AlsoShantanuBorkar/flutter/internal/adapters/project"
	_ "github.com/AlsoShantanuBorkar/flutter/internal/adapters/shell"
	_ "github.com/AlsoShantanuBorkar/flutter/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/AlsoShantanuBorkar/flutter/internal/app"
	_ "github.com/AlsoShantanuBorkar/flutter/internal/engine/scheduler"
	_ "github.com/AlsoShantanuBorkar/flutter/internal/engine/webtargets"
)
