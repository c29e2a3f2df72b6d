package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deskmate/internal/config"
	"deskmate/internal/logs"
	"deskmate/internal/todo/service"
	launcherview "deskmate/internal/tui/launcher"
	matrixview "deskmate/internal/tui/matrix"
	"deskmate/internal/tui/messages"
	pomodoroview "deskmate/internal/tui/pomodoro"
)

// Re-export for convenience
type ViewType = messages.ViewType

const (
	ViewMatrix   = messages.ViewMatrix
	ViewPomodoro = messages.ViewPomodoro
	ViewLauncher = messages.ViewLauncher
)

// AppModel is the root model that dispatches to child views
type AppModel struct {
	cfg     *config.Config
	todoSvc service.TodoService

	currentView  ViewType
	matrixView   matrixview.MatrixModel
	pomodoroView pomodoroview.PomodoroModel
	launcherView launcherview.LauncherModel

	// mdChanged signals external edits to the exported Markdown file.
	mdChanged <-chan struct{}

	status    string
	statusErr bool
	showHelp  bool
	width     int
	height    int
	ready     bool
}

// NewAppModel creates the root application model. mdChanged may be nil when
// file watching is unavailable.
func NewAppModel(cfg *config.Config, todoSvc service.TodoService, mdChanged <-chan struct{}) AppModel {
	view := ViewMatrix
	switch cfg.DefaultView {
	case "pomodoro":
		view = ViewPomodoro
	case "launcher":
		view = ViewLauncher
	}

	return AppModel{
		cfg:          cfg,
		todoSvc:      todoSvc,
		currentView:  view,
		matrixView:   matrixview.NewMatrixModel(todoSvc, cfg.MarkdownPath()),
		pomodoroView: pomodoroview.NewPomodoroModel(cfg.Pomodoro, cfg.StatsPath()),
		launcherView: launcherview.NewLauncherModel(),
		mdChanged:    mdChanged,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.waitForMarkdownChange()
}

// waitForMarkdownChange turns the watcher channel into a bubbletea message.
func (m AppModel) waitForMarkdownChange() tea.Cmd {
	if m.mdChanged == nil {
		return nil
	}
	ch := m.mdChanged
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return messages.MarkdownChangedMsg{}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 3 // reserve space for nav + status bar
		m.matrixView.SetSize(msg.Width, contentHeight)
		m.pomodoroView.SetSize(msg.Width, contentHeight)
		m.launcherView.SetSize(msg.Width, contentHeight)
		return m, nil

	case messages.SwitchViewMsg:
		m.currentView = msg.View
		return m, nil

	case messages.StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsErr
		return m, nil

	case messages.MarkdownChangedMsg:
		// The file changed on disk. Our own exports fire this too, so the
		// service skips content it wrote itself.
		changed, err := m.todoSvc.ImportMarkdownIfChanged(m.cfg.MarkdownPath())
		if err != nil {
			logs.Logger.Printf("re-import after external edit failed: %v", err)
			m.status = "External edit detected but import failed (see log)"
			m.statusErr = true
			return m, m.waitForMarkdownChange()
		}
		if !changed {
			return m, m.waitForMarkdownChange()
		}
		m.status = "Re-imported tasks after external edit"
		m.statusErr = false
		return m, tea.Batch(m.waitForMarkdownChange(), messages.RefreshData())

	case messages.DataRefreshMsg:
		var cmd tea.Cmd
		m.matrixView, cmd = m.matrixView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		m.status = ""

		// The launcher owns the keyboard for typing; the matrix does while
		// a modal is open.
		inModal := m.currentView == ViewLauncher ||
			(m.currentView == ViewMatrix && m.matrixView.IsInModalState())

		if !inModal {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1", "t":
				m.currentView = ViewMatrix
				m.matrixView.Refresh()
				return m, nil
			case "2", "p":
				m.currentView = ViewPomodoro
				return m, nil
			case "3", "o":
				m.currentView = ViewLauncher
				return m, nil
			case "?":
				m.showHelp = true
				return m, nil
			}
		}
	}

	// Dispatch to current child view
	var cmd tea.Cmd
	switch m.currentView {
	case ViewMatrix:
		m.matrixView, cmd = m.matrixView.Update(msg)
		return m, cmd
	case ViewPomodoro:
		m.pomodoroView, cmd = m.pomodoroView.Update(msg)
		return m, cmd
	case ViewLauncher:
		m.launcherView, cmd = m.launcherView.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var content string
	switch m.currentView {
	case ViewMatrix:
		content = m.matrixView.View()
	case ViewPomodoro:
		content = m.pomodoroView.View()
	case ViewLauncher:
		content = m.launcherView.View()
	}

	content = lipgloss.NewStyle().Height(m.height - 3).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderNav(), content, m.renderStatusBar())
}

func (m AppModel) renderNav() string {
	entry := func(view ViewType, label string) string {
		if m.currentView == view {
			return NavActiveStyle.Render(label)
		}
		return NavInactiveStyle.Render(label)
	}
	return " " + entry(ViewMatrix, "[1] matrix") + "  " +
		entry(ViewPomodoro, "[2] pomodoro") + "  " +
		entry(ViewLauncher, "[3] launcher")
}

func (m AppModel) renderStatusBar() string {
	text := m.status
	style := StatusOkStyle
	if m.statusErr {
		style = StatusErrStyle
	}
	if text == "" {
		text = "? help · q quit"
		style = lipgloss.NewStyle().Foreground(ColorMuted)
	}
	return StatusBarStyle.Width(m.width).Render(" " + style.Render(text))
}

func (m AppModel) renderHelp() string {
	line := func(key, desc string) string {
		return "  " + helpKeyStyle.Render(lipgloss.NewStyle().Width(12).Render(key)) + helpDescStyle.Render(desc)
	}

	sections := []struct {
		title string
		binds [][2]string
	}{
		{"Views", [][2]string{
			{"1 / t", "task matrix"},
			{"2 / p", "pomodoro timer"},
			{"3 / o", "app launcher"},
		}},
		{"Matrix", [][2]string{
			{"hjkl / arrows", "move between tasks and quadrants"},
			{"space/enter", "toggle completed"},
			{"a / e / d", "add / edit / delete task"},
			{"/", "fuzzy filter"},
			{"x / i", "export / import Markdown"},
		}},
		{"Pomodoro", [][2]string{
			{"s", "start"},
			{"space", "pause / resume"},
			{"n / x", "skip phase / stop"},
		}},
	}

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(helpTitleStyle.Render(s.title) + "\n")
		for _, bind := range s.binds {
			b.WriteString(line(bind[0], bind[1]) + "\n")
		}
	}
	b.WriteString("\n" + helpDismissStyle.Render("Press any key to close"))

	box := helpBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
