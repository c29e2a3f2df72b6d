package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"deskmate/internal/pomodoro"
)

// Config holds the unified application configuration
type Config struct {
	DataDir     string
	DefaultView string
	Pomodoro    pomodoro.Config
}

// Settings represents the config file structure. Durations are minutes,
// matching what a human edits by hand.
type Settings struct {
	DataDir               string `json:"data_dir,omitempty"`
	DefaultView           string `json:"default_view,omitempty"`
	WorkMinutes           int    `json:"work_minutes,omitempty"`
	ShortBreakMinutes     int    `json:"short_break_minutes,omitempty"`
	LongBreakMinutes      int    `json:"long_break_minutes,omitempty"`
	CyclesBeforeLongBreak int    `json:"cycles_before_long_break,omitempty"`
	AutoStartBreaks       *bool  `json:"auto_start_breaks,omitempty"`
	AutoStartWork         *bool  `json:"auto_start_work,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	DataDir string
	View    string
}

var globalConfig *Config

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	defaultDir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:     defaultDir,
		DefaultView: "matrix",
		Pomodoro:    pomodoro.DefaultConfig(),
	}

	// Config file supplies base values
	if configPath, err := getConfigPath(); err == nil {
		if settings, err := loadConfigFile(configPath); err == nil {
			applySettings(cfg, settings)
		}
	}

	// Environment variables override the file
	if dir := os.Getenv("DESKMATE_DATA_DIR"); dir != "" {
		cfg.DataDir = expandPath(dir)
	}
	if view := os.Getenv("DESKMATE_VIEW"); view != "" {
		cfg.DefaultView = view
	}

	// CLI flags override everything
	if flags.DataDir != "" {
		cfg.DataDir = expandPath(flags.DataDir)
	}
	if flags.View != "" {
		cfg.DefaultView = flags.View
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the loaded config
func Get() *Config {
	return globalConfig
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "deskmate"), nil
}

// EnsureDataDir creates the data directory if missing
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0o755)
}

// DBPath returns the path to the todo database
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "todo.db")
}

// MarkdownPath returns the path of the Markdown export file
func (c *Config) MarkdownPath() string {
	return filepath.Join(c.DataDir, "todo.md")
}

// StatsPath returns the path of the pomodoro stats file
func (c *Config) StatsPath() string {
	return filepath.Join(c.DataDir, "pomodoro_stats.json")
}

func applySettings(cfg *Config, s *Settings) {
	if s.DataDir != "" {
		cfg.DataDir = expandPath(s.DataDir)
	}
	if s.DefaultView != "" {
		cfg.DefaultView = s.DefaultView
	}
	if s.WorkMinutes > 0 {
		cfg.Pomodoro.WorkDuration = time.Duration(s.WorkMinutes) * time.Minute
	}
	if s.ShortBreakMinutes > 0 {
		cfg.Pomodoro.ShortBreak = time.Duration(s.ShortBreakMinutes) * time.Minute
	}
	if s.LongBreakMinutes > 0 {
		cfg.Pomodoro.LongBreak = time.Duration(s.LongBreakMinutes) * time.Minute
	}
	if s.CyclesBeforeLongBreak > 0 {
		cfg.Pomodoro.CyclesBeforeLongBreak = s.CyclesBeforeLongBreak
	}
	if s.AutoStartBreaks != nil {
		cfg.Pomodoro.AutoStartBreaks = *s.AutoStartBreaks
	}
	if s.AutoStartWork != nil {
		cfg.Pomodoro.AutoStartWork = *s.AutoStartWork
	}
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "deskmate", "config.json"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(content, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	defaults := pomodoro.DefaultConfig()
	settings := Settings{
		DefaultView:           "matrix",
		WorkMinutes:           int(defaults.WorkDuration.Minutes()),
		ShortBreakMinutes:     int(defaults.ShortBreak.Minutes()),
		LongBreakMinutes:      int(defaults.LongBreak.Minutes()),
		CyclesBeforeLongBreak: defaults.CyclesBeforeLongBreak,
	}

	content, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, content, 0o644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
