// Package style holds the colors and icons shared by terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Blue   = lipgloss.Color("#0175C2")
	Sky    = lipgloss.Color("#13B9FD")
	Navy   = lipgloss.Color("#042B59")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "·"
	Arrow   = "→"
)
