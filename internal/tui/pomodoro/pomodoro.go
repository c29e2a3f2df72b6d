package pomodoro

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deskmate/internal/logs"
	"deskmate/internal/pomodoro"
)

var (
	stateStyles = map[pomodoro.State]lipgloss.Style{
		pomodoro.StateIdle:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		pomodoro.StateWorking:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		pomodoro.StateShortBreak: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		pomodoro.StateLongBreak:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
	}

	clockStyle    = lipgloss.NewStyle().Bold(true)
	pausedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	barFillStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	barEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("4")).
			Padding(1, 4)
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// PomodoroModel drives the pomodoro timer from the TUI tick loop and renders
// the countdown.
type PomodoroModel struct {
	timer     *pomodoro.Timer
	stats     *pomodoro.Stats
	statsPath string
	ticking   bool

	width  int
	height int
}

// NewPomodoroModel wires the timer to the stats file: every finished work
// session is recorded and saved.
func NewPomodoroModel(cfg pomodoro.Config, statsPath string) PomodoroModel {
	timer := pomodoro.NewTimer(cfg)
	stats := pomodoro.LoadStats(statsPath)

	timer.OnPhaseDone(func(finished pomodoro.State) {
		if finished != pomodoro.StateWorking {
			return
		}
		longCycle := timer.State() == pomodoro.StateLongBreak
		stats.RecordWorkSession(cfg.WorkDuration, longCycle)
		if err := stats.Save(statsPath); err != nil {
			logs.Logger.Printf("could not save pomodoro stats: %v", err)
		}
	})

	return PomodoroModel{timer: timer, stats: stats, statsPath: statsPath}
}

func (m *PomodoroModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m PomodoroModel) Init() tea.Cmd {
	return nil
}

func (m PomodoroModel) Update(msg tea.Msg) (PomodoroModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.timer.State() == pomodoro.StateIdle {
			m.ticking = false
			return m, nil
		}
		m.timer.Tick(time.Second)
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			if m.timer.State() == pomodoro.StateIdle {
				m.timer.Start()
				if !m.ticking {
					m.ticking = true
					return m, tick()
				}
			}
		case " ", "p":
			if m.timer.Paused() {
				m.timer.Resume()
				if !m.ticking {
					m.ticking = true
					return m, tick()
				}
			} else {
				m.timer.Pause()
			}
		case "n":
			m.timer.Skip()
		case "x":
			m.timer.Stop()
		}
	}

	return m, nil
}

func (m PomodoroModel) View() string {
	state := m.timer.State()

	var b strings.Builder
	b.WriteString(stateStyles[state].Render(strings.ToUpper(state.String())))
	if m.timer.Paused() && state != pomodoro.StateIdle {
		b.WriteString(pausedStyle.Render("  (paused)"))
	}
	b.WriteString("\n\n")

	if state == pomodoro.StateIdle {
		b.WriteString(clockStyle.Render(formatClock(m.timer.Config().WorkDuration)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("press s to start a work session"))
	} else {
		b.WriteString(clockStyle.Render(formatClock(m.timer.Remaining())))
		b.WriteString("\n")
		b.WriteString(renderBar(m.timer, 30))
		b.WriteString("\n")
		b.WriteString(statsStyle.Render(fmt.Sprintf("session %d of %d before long break",
			m.timer.Sessions()%m.timer.Config().CyclesBeforeLongBreak+1,
			m.timer.Config().CyclesBeforeLongBreak)))
	}

	b.WriteString("\n\n")
	today := m.stats.Daily[time.Now().Format("2006-01-02")]
	b.WriteString(statsStyle.Render(fmt.Sprintf("today: %d sessions · all time: %d sessions, %s focused",
		today, m.stats.TotalWorkSessions, formatTotal(m.stats.TotalWorkSeconds))))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("s start · space pause/resume · n skip phase · x stop"))

	box := boxStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func formatTotal(seconds int) string {
	h := seconds / 3600
	min := seconds % 3600 / 60
	if h == 0 {
		return fmt.Sprintf("%dm", min)
	}
	return fmt.Sprintf("%dh%02dm", h, min)
}

func renderBar(t *pomodoro.Timer, width int) string {
	phase := t.PhaseDuration()
	if phase <= 0 {
		return ""
	}
	done := float64(phase-t.Remaining()) / float64(phase)
	if done < 0 {
		done = 0
	}
	if done > 1 {
		done = 1
	}
	filled := int(done * float64(width))
	return barFillStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}
