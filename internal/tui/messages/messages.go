package messages

import tea "github.com/charmbracelet/bubbletea"

// ViewType represents the different views in the application
type ViewType int

const (
	ViewMatrix ViewType = iota
	ViewPomodoro
	ViewLauncher
)

// SwitchViewMsg is sent by child views to switch to a different view
type SwitchViewMsg struct {
	View ViewType
}

// DataRefreshMsg signals that task data changed and views should reload
type DataRefreshMsg struct{}

// StatusMsg flashes a line of text in the status bar
type StatusMsg struct {
	Text  string
	IsErr bool
}

// MarkdownChangedMsg signals that the exported Markdown file was modified
// outside the app
type MarkdownChangedMsg struct{}

func SwitchView(v ViewType) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{View: v}
	}
}

func RefreshData() tea.Cmd {
	return func() tea.Msg {
		return DataRefreshMsg{}
	}
}

func Status(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text}
	}
}

func StatusError(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, IsErr: true}
	}
}
