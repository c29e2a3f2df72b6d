package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"deskmate/internal/cli"
	"deskmate/internal/config"
	"deskmate/internal/logs"
	"deskmate/internal/todo/service"
	"deskmate/internal/tui"
)

func main() {
	// Parse CLI flags
	dataFlag := flag.String("data", "", "Data directory")
	viewFlag := flag.String("view", "", "Initial view: matrix, pomodoro, launcher")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(config.CLIFlags{DataDir: *dataFlag, View: *viewFlag})
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure config file exists
	if err := config.EnsureConfigFile(); err != nil {
		log.Printf("Warning: could not create config file: %v", err)
	}

	// Ensure the data directory exists
	if err := cfg.EnsureDataDir(); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Reinitialize logger into the data directory
	if err := logs.Initialize(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
	}
	defer logs.Close()

	// Open the todo service (loads the SQLite-backed task collection)
	todoSvc, err := service.NewTodoService(cfg.DBPath())
	if err != nil {
		log.Fatalf("Failed to open todo database: %v", err)
	}
	defer todoSvc.Close()

	// Check for CLI subcommands
	if args := flag.Args(); len(args) > 0 {
		code := cli.Run(args, todoSvc, cfg)
		todoSvc.Close()
		logs.Close()
		os.Exit(code)
	}

	// Watch the exported Markdown file for external edits
	mdChanged, stopWatcher, err := service.WatchMarkdown(cfg.MarkdownPath())
	if err != nil {
		logs.Logger.Printf("Warning: could not watch %s: %v", cfg.MarkdownPath(), err)
		mdChanged = nil
	} else {
		defer stopWatcher()
	}

	// TUI mode
	logs.Logger.Println("Starting app in TUI mode")
	appModel := tui.NewAppModel(cfg, todoSvc, mdChanged)
	p := tea.NewProgram(appModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}
