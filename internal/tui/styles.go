package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("4")
	ColorSecondary = lipgloss.Color("6")
	ColorSuccess   = lipgloss.Color("2")
	ColorWarning   = lipgloss.Color("3")
	ColorDanger    = lipgloss.Color("1")
	ColorMuted     = lipgloss.Color("8")

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorMuted)

	StatusErrStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
	StatusOkStyle  = lipgloss.NewStyle().Foreground(ColorSuccess)

	NavActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	NavInactiveStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	helpKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
	helpDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	helpBoxStyle  = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)
	helpTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	helpDismissStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
