// Package tui provides terminal output components for integrityforge.
//
// The style system uses Lip Gloss with AdaptiveColor for light/dark terminal
// support. Status displays keep triple redundancy: icon + color + text.
// Colors are disabled when NO_COLOR is set or TERM=dumb; call CheckNoColor()
// at the start of commands that print styled text.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mrz1836/integrityforge/internal/manifest"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for informational output.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for passed entries.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for warnings and rule violations that do
	// not fail the run.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for failed and errored entries.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for secondary text such as durations.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies dim/faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
}

// NewOutputStyles creates common output styles using AdaptiveColor for
// light/dark terminal support.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Info: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Dim: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// StatusColors returns the semantic color for each validation status.
func StatusColors() map[manifest.Status]lipgloss.AdaptiveColor {
	return map[manifest.Status]lipgloss.AdaptiveColor{
		manifest.StatusPassed:  ColorSuccess,
		manifest.StatusFailed:  ColorError,
		manifest.StatusErrored: ColorWarning,
	}
}

// StatusIcon returns the icon/symbol for a validation status.
func StatusIcon(status manifest.Status) string {
	icons := map[manifest.Status]string{
		manifest.StatusPassed:  "✓",
		manifest.StatusFailed:  "✗",
		manifest.StatusErrored: "⚠",
	}
	if icon, ok := icons[status]; ok {
		return icon
	}
	return "?"
}

// StatusStyle returns a style for rendering a validation status. NO_COLOR
// yields a plain style.
func StatusStyle(status manifest.Status) lipgloss.Style {
	if !HasColorSupport() {
		return lipgloss.NewStyle()
	}
	color, ok := StatusColors()[status]
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(color)
}

// FormatStatusWithIcon formats a status with its icon and text so the
// outcome is readable without color.
func FormatStatusWithIcon(status manifest.Status, text string) string {
	return StatusIcon(status) + " " + text
}

// CheckNoColor respects the NO_COLOR environment variable.
// Call this at the start of commands that output styled text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns true if the terminal supports colors.
// Returns false if NO_COLOR is set (any value including empty string) or
// TERM=dumb. This follows the NO_COLOR standard: https://no-color.org/
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return true
}
