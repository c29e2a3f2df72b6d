package pomodoro

import (
	"encoding/json"
	"os"
	"time"
)

// Stats accumulates completed work sessions across runs. Stored as JSON next
// to the database.
type Stats struct {
	TotalWorkSessions int            `json:"total_work_sessions"`
	TotalWorkSeconds  int            `json:"total_work_seconds"`
	CompletedCycles   int            `json:"completed_cycles"`
	Daily             map[string]int `json:"daily_stats"`
	LastUpdated       time.Time      `json:"last_updated"`
}

// LoadStats reads stats from path, returning zeroed stats if the file is
// missing or unreadable.
func LoadStats(path string) *Stats {
	s := &Stats{Daily: map[string]int{}}
	content, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(content, s); err != nil {
		return &Stats{Daily: map[string]int{}}
	}
	if s.Daily == nil {
		s.Daily = map[string]int{}
	}
	return s
}

// RecordWorkSession counts one finished work session of the given length.
func (s *Stats) RecordWorkSession(d time.Duration, completedLongCycle bool) {
	s.TotalWorkSessions++
	s.TotalWorkSeconds += int(d.Seconds())
	if completedLongCycle {
		s.CompletedCycles++
	}
	s.Daily[time.Now().Format("2006-01-02")]++
	s.LastUpdated = time.Now()
}

// Save writes the stats to path.
func (s *Stats) Save(path string) error {
	content, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}
