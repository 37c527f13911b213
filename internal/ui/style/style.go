// Package style holds the colors and glyphs shared by the console renderer and the logger.
package style

import "github.com/charmbracelet/lipgloss"

// Log colors.
var (
	Slate  = lipgloss.Color("#667085")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Cyan   = lipgloss.Color("#06B6D4")
)

// Component palette, as ANSI color indexes so it follows the terminal theme.
var (
	ANSIBlue    = lipgloss.Color("4")
	ANSIGreen   = lipgloss.Color("2")
	ANSIYellow  = lipgloss.Color("3")
	ANSIMagenta = lipgloss.Color("5")
	ANSIWhite   = lipgloss.Color("7")
	ANSIRed     = lipgloss.Color("1")
	ANSICyan    = lipgloss.Color("6")
)

// Icons.
const (
	Cross   = "✗"
	Warning = "!"
	Dot     = "·"
)
