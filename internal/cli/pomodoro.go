package cli

import (
	"fmt"
	"os"
	"sort"

	"deskmate/internal/config"
	"deskmate/internal/pomodoro"
)

func runPomodoroCommand(args []string, cfg *config.Config) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printPomodoroUsage()
		if len(args) == 0 {
			return 1
		}
		return 0
	}

	switch args[0] {
	case "stats":
		return runPomodoroStats(cfg)
	default:
		fmt.Fprintf(os.Stderr, "Unknown pomodoro command: %s\n", args[0])
		printPomodoroUsage()
		return 1
	}
}

func runPomodoroStats(cfg *config.Config) int {
	stats := pomodoro.LoadStats(cfg.StatsPath())

	fmt.Printf("Work sessions: %d\n", stats.TotalWorkSessions)
	fmt.Printf("Focused time:  %dh%02dm\n", stats.TotalWorkSeconds/3600, stats.TotalWorkSeconds%3600/60)
	fmt.Printf("Full cycles:   %d\n", stats.CompletedCycles)

	if len(stats.Daily) > 0 {
		days := make([]string, 0, len(stats.Daily))
		for day := range stats.Daily {
			days = append(days, day)
		}
		sort.Strings(days)

		// Most recent week only; the full history stays in the stats file.
		if len(days) > 7 {
			days = days[len(days)-7:]
		}
		fmt.Println("\nRecent days:")
		for _, day := range days {
			fmt.Printf("  %s  %d session(s)\n", day, stats.Daily[day])
		}
	}
	return 0
}

func printPomodoroUsage() {
	fmt.Println(`deskmate pomodoro - Pomodoro timer commands

Usage: deskmate pomodoro <command>

Commands:
  stats       Show accumulated focus statistics

The interactive timer lives in the TUI (deskmate --view pomodoro).`)
}
