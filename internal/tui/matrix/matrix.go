package matrix

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"deskmate/internal/todo/data"
	"deskmate/internal/todo/service"
	"deskmate/internal/todo/store"
	"deskmate/internal/tui/messages"
)

// MatrixModel renders the four-quadrant task board: Do First and Schedule on
// the top row, Delegate and Eliminate below.
type MatrixModel struct {
	svc        service.TodoService
	exportPath string

	quads  [4][]data.Task // display order per quadrant, filter applied
	focus  int            // focused quadrant, indexes data.Quadrants
	cursor int            // selected task within the focused quadrant

	filterInput textinput.Model
	filtering   bool

	editor *EditorModel

	width  int
	height int
}

// NewMatrixModel creates the matrix view backed by the given service.
func NewMatrixModel(svc service.TodoService, exportPath string) MatrixModel {
	fi := textinput.New()
	fi.Placeholder = "filter tasks"
	fi.CharLimit = 64

	m := MatrixModel{svc: svc, exportPath: exportPath, filterInput: fi}
	m.Refresh()
	return m
}

func (m *MatrixModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Refresh reloads the quadrant lists from the service, re-applying the
// active filter.
func (m *MatrixModel) Refresh() {
	for i, q := range data.Quadrants {
		tasks := m.svc.ByQuadrant(q)
		if query := m.filterInput.Value(); query != "" {
			tasks = filterTasks(tasks, query)
		}
		m.quads[i] = tasks
	}
	m.clampCursor()
}

// IsInModalState reports whether a modal (editor or filter input) owns the
// keyboard.
func (m MatrixModel) IsInModalState() bool {
	return m.editor != nil || m.filtering
}

func (m MatrixModel) Init() tea.Cmd {
	return nil
}

func (m MatrixModel) Update(msg tea.Msg) (MatrixModel, tea.Cmd) {
	switch msg := msg.(type) {
	case EditorResultMsg:
		return m.handleEditorResult(msg)

	case messages.DataRefreshMsg:
		m.Refresh()
		return m, nil

	case tea.KeyMsg:
		if m.editor != nil {
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m MatrixModel) handleKey(msg tea.KeyMsg) (MatrixModel, tea.Cmd) {
	switch msg.String() {
	case "left", "h", "right", "l":
		m.focus ^= 1
		m.clampCursor()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.focus ^= 2
			m.clampCursor()
		}
	case "down", "j":
		if m.cursor < len(m.quads[m.focus])-1 {
			m.cursor++
		} else {
			m.focus ^= 2
			m.cursor = 0
			m.clampCursor()
		}
	case "tab":
		m.focus = (m.focus + 1) % 4
		m.clampCursor()

	case " ", "enter":
		if t := m.current(); t != nil {
			if _, err := m.svc.Toggle(t.ID); err != nil {
				return m, messages.StatusError(err.Error())
			}
			m.Refresh()
		}
	case "d":
		if t := m.current(); t != nil {
			if err := m.svc.Delete(t.ID); err != nil {
				return m, messages.StatusError(err.Error())
			}
			m.Refresh()
			return m, messages.Status(fmt.Sprintf("Deleted: %s", t.Title))
		}
	case "a":
		urgent, important := quadrantDefaults(m.focus)
		editor := NewEditor(urgent, important)
		m.editor = &editor
		return m, m.editor.Init()
	case "e":
		if t := m.current(); t != nil {
			editor := NewEditorForTask(*t)
			m.editor = &editor
			return m, m.editor.Init()
		}

	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink
	case "esc":
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.Refresh()
		}

	case "x":
		if err := m.svc.ExportMarkdown(m.exportPath); err != nil {
			return m, messages.StatusError(err.Error())
		}
		return m, messages.Status(fmt.Sprintf("Exported to %s", m.exportPath))
	case "i":
		if err := m.svc.ImportMarkdown(m.exportPath); err != nil {
			return m, messages.StatusError(err.Error())
		}
		m.Refresh()
		return m, messages.Status(fmt.Sprintf("Imported from %s", m.exportPath))
	}

	return m, nil
}

func (m MatrixModel) updateFilter(msg tea.KeyMsg) (MatrixModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.Refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.Refresh()
	return m, cmd
}

func (m MatrixModel) handleEditorResult(msg EditorResultMsg) (MatrixModel, tea.Cmd) {
	m.editor = nil
	if msg.Cancelled {
		return m, nil
	}

	if msg.ID == "" {
		if _, err := m.svc.Add(msg.Title, msg.Urgent, msg.Important, msg.Tags, msg.Due); err != nil {
			return m, messages.StatusError(err.Error())
		}
		m.Refresh()
		return m, messages.Status(fmt.Sprintf("Added: %s", msg.Title))
	}

	patch := store.TaskPatch{
		Title:        &msg.Title,
		Urgent:       &msg.Urgent,
		Important:    &msg.Important,
		Tags:         msg.Tags,
		DueDate:      msg.Due,
		ClearDueDate: msg.Due == nil,
	}
	if patch.Tags == nil {
		patch.Tags = []string{}
	}
	if _, err := m.svc.Update(msg.ID, patch); err != nil {
		return m, messages.StatusError(err.Error())
	}
	m.Refresh()
	return m, messages.Status(fmt.Sprintf("Updated: %s", msg.Title))
}

func (m MatrixModel) View() string {
	if m.editor != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.editor.View())
	}

	panelWidth := m.width/2 - 2
	panelHeight := m.height/2 - 2
	if m.filtering || m.filterInput.Value() != "" {
		panelHeight--
	}

	panels := make([]string, 4)
	for i := range data.Quadrants {
		panels[i] = m.renderQuadrant(i, panelWidth, panelHeight)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, panels[0], panels[1])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, panels[2], panels[3])
	grid := lipgloss.JoinVertical(lipgloss.Left, top, bottom)

	if m.filtering || m.filterInput.Value() != "" {
		return lipgloss.JoinVertical(lipgloss.Left, grid, filterStyle.Render("/"+m.filterInput.Value()))
	}
	return grid
}

func (m MatrixModel) renderQuadrant(i, width, height int) string {
	q := data.Quadrants[i]

	var b strings.Builder
	b.WriteString(quadrantTitleStyles[i].Render(q.String()))
	b.WriteString(emptyStyle.Render(fmt.Sprintf("  %d", len(m.quads[i]))))
	b.WriteString("\n")

	visible := height - 2
	if visible < 1 {
		visible = 1
	}

	if len(m.quads[i]) == 0 {
		b.WriteString(emptyStyle.Render("no tasks"))
	}

	start := 0
	if i == m.focus && m.cursor >= visible {
		start = m.cursor - visible + 1
	}

	for j := start; j < len(m.quads[i]) && j < start+visible; j++ {
		t := m.quads[i][j]
		selected := i == m.focus && j == m.cursor
		b.WriteString(m.renderTaskLine(t, selected, width-4))
		b.WriteString("\n")
	}

	style := panelStyle
	if i == m.focus {
		style = panelFocusedStyle
	}
	return style.Width(width).Height(height).Render(strings.TrimRight(b.String(), "\n"))
}

func (m MatrixModel) renderTaskLine(t data.Task, selected bool, width int) string {
	prefix := "  "
	if selected {
		prefix = cursorStyle.Render("> ")
	}

	check := "[ ] "
	if t.Completed {
		check = "[x] "
	}

	title := t.Title
	if t.Completed {
		title = doneStyle.Render(title)
	}

	line := prefix + check + title
	if t.DueDate != nil {
		label := t.DueDate.Format("Jan 2")
		style := dueStyle
		if !t.Completed && t.DueDate.Before(time.Now()) {
			style = overdueStyle
		}
		line += " " + style.Render(label)
	}
	for _, tag := range t.Tags {
		line += " " + tagStyle.Render("#"+tag)
	}

	if width > 0 && lipgloss.Width(line) > width {
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}

func (m MatrixModel) current() *data.Task {
	tasks := m.quads[m.focus]
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return nil
	}
	t := tasks[m.cursor]
	return &t
}

func (m *MatrixModel) clampCursor() {
	if n := len(m.quads[m.focus]); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// quadrantDefaults returns the urgency/importance flags implied by the
// quadrant index, so "add" pre-fills the quadrant under the cursor.
func quadrantDefaults(i int) (urgent, important bool) {
	if i < 0 || i >= len(data.Quadrants) {
		return false, false
	}
	switch data.Quadrants[i] {
	case data.QuadrantDoFirst:
		return true, true
	case data.QuadrantSchedule:
		return false, true
	case data.QuadrantDelegate:
		return true, false
	}
	return false, false
}

// filterTasks fuzzy-matches the query against task titles, preserving the
// incoming order of matched tasks.
func filterTasks(tasks []data.Task, query string) []data.Task {
	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
	}
	matches := fuzzy.Find(query, titles)

	matched := make(map[int]bool, len(matches))
	for _, match := range matches {
		matched[match.Index] = true
	}

	var out []data.Task
	for i, t := range tasks {
		if matched[i] {
			out = append(out, t)
		}
	}
	return out
}
