// Package pomodoro implements the work/break countdown cycle. The timer has
// no clock of its own: the caller feeds it elapsed time via Tick, which keeps
// it trivially testable and lets the TUI drive it from its own tick loop.
package pomodoro

import "time"

// State is the current phase of the cycle.
type State int

const (
	StateIdle State = iota
	StateWorking
	StateShortBreak
	StateLongBreak
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWorking:
		return "working"
	case StateShortBreak:
		return "short break"
	case StateLongBreak:
		return "long break"
	}
	return "unknown"
}

// Config holds the cycle durations.
type Config struct {
	WorkDuration          time.Duration `json:"work_duration"`
	ShortBreak            time.Duration `json:"short_break"`
	LongBreak             time.Duration `json:"long_break"`
	CyclesBeforeLongBreak int           `json:"cycles_before_long_break"`
	AutoStartBreaks       bool          `json:"auto_start_breaks"`
	AutoStartWork         bool          `json:"auto_start_work"`
}

func DefaultConfig() Config {
	return Config{
		WorkDuration:          25 * time.Minute,
		ShortBreak:            5 * time.Minute,
		LongBreak:             15 * time.Minute,
		CyclesBeforeLongBreak: 4,
		AutoStartBreaks:       true,
		AutoStartWork:         false,
	}
}

// Timer is the pomodoro state machine: work, short break, work, ... long
// break after every Nth work session. Not safe for concurrent use.
type Timer struct {
	cfg       Config
	state     State
	paused    bool
	remaining time.Duration
	// sessions counts finished work sessions; every CyclesBeforeLongBreak-th
	// one ends in a long break.
	sessions int

	onPhaseDone func(finished State)
}

func NewTimer(cfg Config) *Timer {
	if cfg.CyclesBeforeLongBreak <= 0 {
		cfg.CyclesBeforeLongBreak = DefaultConfig().CyclesBeforeLongBreak
	}
	return &Timer{cfg: cfg, state: StateIdle}
}

// OnPhaseDone registers a callback invoked whenever a phase finishes.
func (t *Timer) OnPhaseDone(fn func(finished State)) {
	t.onPhaseDone = fn
}

func (t *Timer) State() State             { return t.state }
func (t *Timer) Paused() bool             { return t.paused }
func (t *Timer) Remaining() time.Duration { return t.remaining }
func (t *Timer) Sessions() int            { return t.sessions }
func (t *Timer) Config() Config           { return t.cfg }

// PhaseDuration returns the full length of the current phase.
func (t *Timer) PhaseDuration() time.Duration {
	switch t.state {
	case StateWorking:
		return t.cfg.WorkDuration
	case StateShortBreak:
		return t.cfg.ShortBreak
	case StateLongBreak:
		return t.cfg.LongBreak
	}
	return 0
}

// Start begins a work session. No-op unless idle.
func (t *Timer) Start() {
	if t.state != StateIdle {
		return
	}
	t.state = StateWorking
	t.remaining = t.cfg.WorkDuration
	t.paused = false
}

// Pause freezes the countdown.
func (t *Timer) Pause() {
	if t.state != StateIdle {
		t.paused = true
	}
}

// Resume continues a paused countdown.
func (t *Timer) Resume() {
	t.paused = false
}

// Stop abandons the cycle and returns to idle. The session counter resets,
// matching a fresh start.
func (t *Timer) Stop() {
	t.state = StateIdle
	t.paused = false
	t.remaining = 0
	t.sessions = 0
}

// Skip ends the current phase immediately, as if the countdown ran out.
func (t *Timer) Skip() {
	if t.state == StateIdle {
		return
	}
	t.finishPhase()
}

// Tick advances the countdown by elapsed. It does nothing while idle or
// paused. A phase that reaches zero rolls over into the next one.
func (t *Timer) Tick(elapsed time.Duration) {
	if t.state == StateIdle || t.paused {
		return
	}
	t.remaining -= elapsed
	if t.remaining > 0 {
		return
	}
	t.finishPhase()
}

func (t *Timer) finishPhase() {
	finished := t.state

	switch t.state {
	case StateWorking:
		t.sessions++
		if t.sessions%t.cfg.CyclesBeforeLongBreak == 0 {
			t.state = StateLongBreak
			t.remaining = t.cfg.LongBreak
		} else {
			t.state = StateShortBreak
			t.remaining = t.cfg.ShortBreak
		}
		t.paused = !t.cfg.AutoStartBreaks
	case StateShortBreak, StateLongBreak:
		t.state = StateWorking
		t.remaining = t.cfg.WorkDuration
		t.paused = !t.cfg.AutoStartWork
	}

	if t.onPhaseDone != nil {
		t.onPhaseDone(finished)
	}
}
