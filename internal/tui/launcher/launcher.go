package launcher

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deskmate/internal/launcher"
	"deskmate/internal/tui/messages"
)

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	countStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// LauncherModel is a fuzzy application picker.
type LauncherModel struct {
	apps     []launcher.App
	filtered []launcher.App
	selected int

	input textinput.Model

	width  int
	height int
}

func NewLauncherModel() LauncherModel {
	input := textinput.New()
	input.Placeholder = "search applications"
	input.CharLimit = 64
	input.Focus()

	apps := launcher.Discover()
	return LauncherModel{apps: apps, filtered: apps, input: input}
}

func (m *LauncherModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m LauncherModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LauncherModel) Update(msg tea.Msg) (LauncherModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "up", "ctrl+k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "ctrl+j":
		if m.selected < len(m.filtered)-1 {
			m.selected++
		}
		return m, nil

	case "enter":
		if m.selected >= len(m.filtered) {
			return m, nil
		}
		app := m.filtered[m.selected]
		if err := launcher.Launch(app); err != nil {
			return m, messages.StatusError(fmt.Sprintf("could not launch %s: %v", app.Name, err))
		}
		return m, messages.Status(fmt.Sprintf("Launched: %s", app.Name))

	case "esc":
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.applyFilter()
			return m, nil
		}
		return m, messages.SwitchView(messages.ViewMatrix)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *LauncherModel) applyFilter() {
	m.filtered = launcher.Search(m.apps, m.input.Value())
	if m.selected >= len(m.filtered) {
		m.selected = max(0, len(m.filtered)-1)
	}
}

func (m LauncherModel) View() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render("Launch: "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	visible := m.height - 6
	if visible < 1 {
		visible = 10
	}

	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}

	for i := start; i < len(m.filtered) && i < start+visible; i++ {
		app := m.filtered[i]
		if i == m.selected {
			b.WriteString(cursorStyle.Render("> "))
			b.WriteString(selectedStyle.Render(app.Name))
		} else {
			b.WriteString("  ")
			b.WriteString(app.Name)
		}
		if app.Desc != "" {
			b.WriteString(descStyle.Render("  " + app.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d application(s)", len(m.filtered))))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter launch · esc clear/back"))
	return b.String()
}
