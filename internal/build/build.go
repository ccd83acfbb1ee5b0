// Package build holds build-time information.
package build

// Version is the application version.
// It defaults to "dev" and can be overwritten by linker flags.
var Version = "dev"

// Commit and Date identify the source revision. They are empty unless set by
// linker flags.
var (
	Commit = ""
	Date   = ""
)
