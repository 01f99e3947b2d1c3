package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan
	colorSuccess   = lipgloss.Color("#10B981") // Green
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorError     = lipgloss.Color("#EF4444") // Red
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorBorder    = lipgloss.Color("#374151") // Border gray
	colorBar       = lipgloss.Color("#1F2937")
	colorText      = lipgloss.Color("#F9FAFB")

	// Header bar
	brandStyle = lipgloss.NewStyle().
			Background(colorPrimary).
			Foreground(colorText).
			Bold(true).
			Padding(0, 1)

	navBarStyle = lipgloss.NewStyle().
			Background(colorBar).
			Foreground(colorText)

	// Nav items. Every variant keeps the same horizontal padding so the
	// measured widths hold whichever style is drawn.
	navItemStyle = lipgloss.NewStyle().
			Background(colorBar).
			Foreground(colorText).
			Padding(0, 1)

	navItemCursorStyle = navItemStyle.
				Background(colorPrimary).
				Bold(true)

	navItemActiveStyle = navItemStyle.
				Foreground(colorSecondary).
				Underline(true)

	navTriggerStyle = navItemStyle.
			Foreground(colorWarning)

	navPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	navPanelItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	navPanelCursorStyle = navPanelItemStyle.
				Background(colorPrimary).
				Foreground(colorText)

	// Panel styles
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	hrefStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Underline(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Log styles
	logTimestamp = lipgloss.NewStyle().
			Foreground(colorMuted)

	logInfo = lipgloss.NewStyle().
		Foreground(colorSuccess)

	logWarn = lipgloss.NewStyle().
		Foreground(colorWarning)

	logError = lipgloss.NewStyle().
			Foreground(colorError)

	logDebug = lipgloss.NewStyle().
			Foreground(colorMuted)

	logNav = lipgloss.NewStyle().
		Foreground(colorSecondary)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)
)
