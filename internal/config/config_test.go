package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME at a temp dir so tests never touch the real config.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DESKMATE_DATA_DIR", "")
	t.Setenv("DESKMATE_VIEW", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	want := filepath.Join(home, ".local", "share", "deskmate")
	if cfg.DataDir != want {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, want)
	}
	if cfg.DefaultView != "matrix" {
		t.Errorf("DefaultView = %q, want matrix", cfg.DefaultView)
	}
	if cfg.Pomodoro.WorkDuration != 25*time.Minute {
		t.Errorf("WorkDuration = %v, want 25m", cfg.Pomodoro.WorkDuration)
	}
}

func TestLoadPrecedence(t *testing.T) {
	home := isolate(t)

	// Config file sets one view, env and flags each override in turn.
	configDir := filepath.Join(home, ".config", "deskmate")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	fileContent := `{"default_view": "pomodoro", "work_minutes": 50}`
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte(fileContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DefaultView != "pomodoro" {
		t.Errorf("file value ignored, DefaultView = %q", cfg.DefaultView)
	}
	if cfg.Pomodoro.WorkDuration != 50*time.Minute {
		t.Errorf("file work_minutes ignored, got %v", cfg.Pomodoro.WorkDuration)
	}

	t.Setenv("DESKMATE_VIEW", "launcher")
	cfg, err = Load(CLIFlags{})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DefaultView != "launcher" {
		t.Errorf("env must beat the file, DefaultView = %q", cfg.DefaultView)
	}

	cfg, err = Load(CLIFlags{View: "matrix"})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DefaultView != "matrix" {
		t.Errorf("flags must beat env, DefaultView = %q", cfg.DefaultView)
	}
}

func TestLoadEnvDataDir(t *testing.T) {
	isolate(t)
	custom := t.TempDir()
	t.Setenv("DESKMATE_DATA_DIR", custom)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DataDir != custom {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, custom)
	}
	if cfg.DBPath() != filepath.Join(custom, "todo.db") {
		t.Errorf("DBPath = %q", cfg.DBPath())
	}
	if cfg.MarkdownPath() != filepath.Join(custom, "todo.md") {
		t.Errorf("MarkdownPath = %q", cfg.MarkdownPath())
	}
	if cfg.StatsPath() != filepath.Join(custom, "pomodoro_stats.json") {
		t.Errorf("StatsPath = %q", cfg.StatsPath())
	}
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)

	if got := expandPath("~/notes"); got != filepath.Join(home, "notes") {
		t.Errorf("expandPath(~/notes) = %q", got)
	}
	if got := expandPath("/absolute/path"); got != "/absolute/path" {
		t.Errorf("expandPath must leave absolute paths alone, got %q", got)
	}
}

func TestEnsureConfigFile(t *testing.T) {
	home := isolate(t)

	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}

	path := filepath.Join(home, ".config", "deskmate", "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}

	// A second call must not clobber user edits.
	if err := os.WriteFile(path, []byte(`{"default_view": "launcher"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != `{"default_view": "launcher"}` {
		t.Errorf("existing config was overwritten: %s", content)
	}
}
