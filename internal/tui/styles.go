package tui

import "github.com/charmbracelet/lipgloss"

// Colors - using a professional dark theme
var (
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	successColor = lipgloss.Color("#10B981") // Green
	accentColor  = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#EF4444") // Red
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	textColor    = lipgloss.Color("#F3F4F6") // Light gray
	bgColor      = lipgloss.Color("#1F2937") // Dark gray
)

// List item styles
var (
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(textColor)

	dimItemStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// Preview grid styles
var (
	gridHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	gridRuleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// Border title styles
var (
	borderTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textColor)

	focusedBorderTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)
)

// Status bar styles
var (
	statusBarStyle = lipgloss.NewStyle().
			Background(bgColor).
			Foreground(textColor).
			Padding(0, 1)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	statusValueStyle = lipgloss.NewStyle().
				Foreground(textColor)
)

// Selector styles
var (
	selectorLabelStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	selectorActiveStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	selectorValueStyle = lipgloss.NewStyle().
				Foreground(textColor)
)

// Help styles
var (
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// Error styles
var (
	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor)
)

// Modal style for overlays
var modalStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(primaryColor).
	Padding(1, 2)

// Title style
var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(primaryColor)
