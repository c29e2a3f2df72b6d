package matrix

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deskmate/internal/todo/data"
)

const (
	fieldTitle = iota
	fieldDue
	fieldTags
	fieldUrgent
	fieldImportant
	fieldCount
)

var (
	editorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("4")).
			Padding(1, 2)
	editorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	editorLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	editorFocusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	editorErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	editorHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// EditorModel is the add/edit task form.
type EditorModel struct {
	id string // empty when adding

	title textinput.Model
	due   textinput.Model
	tags  textinput.Model

	urgent    bool
	important bool

	focus int
	err   string
}

// EditorResultMsg is sent when the form is confirmed or cancelled.
type EditorResultMsg struct {
	ID        string
	Title     string
	Urgent    bool
	Important bool
	Tags      []string
	Due       *time.Time
	Cancelled bool
}

// NewEditor creates an empty form with the given quadrant flags pre-set.
func NewEditor(urgent, important bool) EditorModel {
	e := newEditorInputs()
	e.urgent = urgent
	e.important = important
	return e
}

// NewEditorForTask creates a form pre-filled from an existing task.
func NewEditorForTask(t data.Task) EditorModel {
	e := newEditorInputs()
	e.id = t.ID
	e.title.SetValue(t.Title)
	if t.DueDate != nil {
		e.due.SetValue(t.DueDate.Format("2006-01-02"))
	}
	e.tags.SetValue(strings.Join(t.Tags, " "))
	e.urgent = t.Urgent
	e.important = t.Important
	return e
}

func newEditorInputs() EditorModel {
	title := textinput.New()
	title.Placeholder = "task title"
	title.CharLimit = 256
	title.Focus()

	due := textinput.New()
	due.Placeholder = "yyyy-mm-dd"
	due.CharLimit = 10

	tags := textinput.New()
	tags.Placeholder = "tags, space separated"
	tags.CharLimit = 128

	return EditorModel{title: title, due: due, tags: tags}
}

func (e *EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (e *EditorModel) Update(msg tea.Msg) (*EditorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, e.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return e, func() tea.Msg { return EditorResultMsg{Cancelled: true} }

	case "enter":
		return e, e.submit()

	case "tab", "down":
		e.setFocus((e.focus + 1) % fieldCount)
		return e, nil
	case "shift+tab", "up":
		e.setFocus((e.focus + fieldCount - 1) % fieldCount)
		return e, nil

	case " ":
		switch e.focus {
		case fieldUrgent:
			e.urgent = !e.urgent
			return e, nil
		case fieldImportant:
			e.important = !e.important
			return e, nil
		}
	}

	e.err = ""
	return e, e.updateInputs(msg)
}

func (e *EditorModel) submit() tea.Cmd {
	title := strings.TrimSpace(e.title.Value())
	if title == "" {
		e.err = "title must not be empty"
		return nil
	}

	var due *time.Time
	if v := strings.TrimSpace(e.due.Value()); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			e.err = "due date must be yyyy-mm-dd"
			return nil
		}
		due = &parsed
	}

	var tags []string
	for _, tag := range strings.Fields(e.tags.Value()) {
		tags = append(tags, strings.TrimPrefix(tag, "#"))
	}

	result := EditorResultMsg{
		ID:        e.id,
		Title:     title,
		Urgent:    e.urgent,
		Important: e.important,
		Tags:      tags,
		Due:       due,
	}
	return func() tea.Msg { return result }
}

func (e *EditorModel) setFocus(focus int) {
	e.focus = focus
	e.title.Blur()
	e.due.Blur()
	e.tags.Blur()
	switch focus {
	case fieldTitle:
		e.title.Focus()
	case fieldDue:
		e.due.Focus()
	case fieldTags:
		e.tags.Focus()
	}
}

func (e *EditorModel) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch e.focus {
	case fieldTitle:
		e.title, cmd = e.title.Update(msg)
	case fieldDue:
		e.due, cmd = e.due.Update(msg)
	case fieldTags:
		e.tags, cmd = e.tags.Update(msg)
	}
	return cmd
}

func (e *EditorModel) View() string {
	heading := "New Task"
	if e.id != "" {
		heading = "Edit Task"
	}

	checkbox := func(label string, value bool, focused bool) string {
		mark := "[ ]"
		if value {
			mark = "[x]"
		}
		line := mark + " " + label
		if focused {
			return editorFocusStyle.Render(line)
		}
		return line
	}

	quadrant := data.ClassifyQuadrant(e.urgent, e.important)

	var b strings.Builder
	b.WriteString(editorTitleStyle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(editorLabelStyle.Render("Title ") + e.title.View() + "\n")
	b.WriteString(editorLabelStyle.Render("Due   ") + e.due.View() + "\n")
	b.WriteString(editorLabelStyle.Render("Tags  ") + e.tags.View() + "\n\n")
	b.WriteString(checkbox("urgent", e.urgent, e.focus == fieldUrgent))
	b.WriteString("   ")
	b.WriteString(checkbox("important", e.important, e.focus == fieldImportant))
	b.WriteString("   → " + quadrant.String() + "\n")

	if e.err != "" {
		b.WriteString("\n" + editorErrStyle.Render(e.err) + "\n")
	}

	b.WriteString("\n" + editorHelpStyle.Render("enter save · esc cancel · tab next field · space toggle"))
	return editorBoxStyle.Render(b.String())
}
