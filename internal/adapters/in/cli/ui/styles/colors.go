// Package styles provides the lipgloss styles of zprune's terminal output.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette. Adaptive colors keep the report readable on light and dark terminals.
var (
	Green  = lipgloss.AdaptiveColor{Light: "#007a4a", Dark: "#00ff88"}
	Cyan   = lipgloss.AdaptiveColor{Light: "#006d8f", Dark: "#00ccff"}
	Red    = lipgloss.AdaptiveColor{Light: "#c01c28", Dark: "#ff4444"}
	Yellow = lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#fbbf24"}

	Neutral500 = lipgloss.Color("#737373")
	Neutral700 = lipgloss.Color("#404040")

	// Semantic colors
	ColorPrimary = Green
	ColorSuccess = Green
	ColorWarning = Yellow
	ColorError   = Red
	ColorInfo    = Cyan

	ColorText      = lipgloss.AdaptiveColor{Light: "#171717", Dark: "#e5e5e5"}
	ColorTextMuted = Neutral500
	ColorBorder    = Neutral700
)
