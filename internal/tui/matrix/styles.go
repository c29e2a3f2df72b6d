package matrix

import "github.com/charmbracelet/lipgloss"

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	panelFocusedStyle = panelStyle.
				BorderForeground(lipgloss.Color("4"))

	quadrantTitleStyles = map[int]lipgloss.Style{
		0: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")), // Do First
		1: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")), // Schedule
		2: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")), // Delegate
		3: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8")), // Eliminate
	}

	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	dueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	overdueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	filterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)
