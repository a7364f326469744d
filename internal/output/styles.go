package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: file paths, module titles.
	ColorCyan = lipgloss.Color("14")

	// ColorYellow is used for degraded outcomes (omitted modules, unavailable images).
	ColorYellow = lipgloss.Color("220")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorBorder is used for table borders.
	ColorBorder = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (paths, module titles, URLs).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleWarn styles degraded outcomes.
	StyleWarn = lipgloss.NewStyle().Foreground(ColorYellow)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// FormatNoun renders an identifiable noun.
func FormatNoun(s string) string {
	return StyleNoun.Render(s)
}

// FormatWarn renders a degraded outcome.
func FormatWarn(s string) string {
	return StyleWarn.Render(s)
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
