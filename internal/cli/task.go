package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"deskmate/internal/config"
	"deskmate/internal/todo/data"
	"deskmate/internal/todo/service"
)

func runAdd(args []string, svc service.TodoService) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	urgent := fs.Bool("u", false, "Mark the task urgent")
	important := fs.Bool("i", false, "Mark the task important")
	tagsFlag := fs.String("t", "", "Comma-separated tags")
	dueFlag := fs.String("d", "", "Due date (yyyy-mm-dd)")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	title := strings.Join(fs.Args(), " ")
	if title == "" {
		fmt.Fprintln(os.Stderr, "Error: task title required")
		fmt.Fprintln(os.Stderr, "Usage: deskmate task add \"Task title\" [-u] [-i] [-t tags] [-d yyyy-mm-dd]")
		return 1
	}

	var due *time.Time
	if *dueFlag != "" {
		parsed, err := time.Parse("2006-01-02", *dueFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid due date %q (want yyyy-mm-dd)\n", *dueFlag)
			return 1
		}
		due = &parsed
	}

	task, err := svc.Add(title, *urgent, *important, parseCommaSeparated(*tagsFlag), due)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding task: %v\n", err)
		return 1
	}

	fmt.Printf("Added to %s: %s\n", task.Quadrant(), task.Title)
	fmt.Printf("ID: %s\n", task.ID)
	return 0
}

func runList(args []string, svc service.TodoService) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	quadrantFlag := fs.String("q", "", "Single quadrant: dofirst, schedule, delegate, eliminate")
	showAll := fs.Bool("all", false, "Include completed tasks")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	quadrants := data.Quadrants
	if *quadrantFlag != "" {
		q, ok := quadrantByName(*quadrantFlag)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown quadrant %q\n", *quadrantFlag)
			return 1
		}
		quadrants = []data.Quadrant{q}
	}

	count := 0
	for _, q := range quadrants {
		tasks := svc.ByQuadrant(q)
		if !*showAll {
			tasks = pendingOnly(tasks)
		}
		if len(tasks) == 0 {
			continue
		}

		fmt.Printf("%s:\n", q)
		for _, t := range tasks {
			printTask(t)
			count++
		}
		fmt.Println()
	}

	if count == 0 {
		fmt.Println("No tasks found.")
		return 0
	}
	fmt.Printf("%d task(s)\n", count)
	return 0
}

func runDone(args []string, svc service.TodoService) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: task ID required")
		fmt.Fprintln(os.Stderr, "Usage: deskmate task done <task-id-prefix>")
		return 1
	}

	task, err := findTaskByPartialID(svc, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	updated, err := svc.Toggle(task.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error completing task: %v\n", err)
		return 1
	}

	if updated.Completed {
		fmt.Printf("Completed: %s\n", updated.Title)
	} else {
		fmt.Printf("Reopened: %s\n", updated.Title)
	}
	return 0
}

func runDelete(args []string, svc service.TodoService) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: task ID required")
		fmt.Fprintln(os.Stderr, "Usage: deskmate task delete <task-id-prefix>")
		return 1
	}

	task, err := findTaskByPartialID(svc, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := svc.Delete(task.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting task: %v\n", err)
		return 1
	}

	fmt.Printf("Deleted: %s\n", task.Title)
	return 0
}

func runExport(args []string, svc service.TodoService, cfg *config.Config) int {
	path := cfg.MarkdownPath()
	if len(args) > 0 {
		path = args[0]
	}

	if err := svc.ExportMarkdown(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting tasks: %v\n", err)
		return 1
	}

	fmt.Printf("Exported %d task(s) to %s\n", len(svc.Tasks()), path)
	return 0
}

func runImport(args []string, svc service.TodoService, cfg *config.Config) int {
	path := cfg.MarkdownPath()
	if len(args) > 0 {
		path = args[0]
	}

	if err := svc.ImportMarkdown(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing tasks: %v\n", err)
		return 1
	}

	fmt.Printf("Imported %d task(s) from %s\n", len(svc.Tasks()), path)
	return 0
}

func printTask(t data.Task) {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	line := fmt.Sprintf("  %s %s %s", shortID(t.ID), check, t.Title)
	if t.DueDate != nil {
		line += fmt.Sprintf(" (due: %s)", t.DueDate.Format("2006-01-02"))
	}
	for _, tag := range t.Tags {
		line += " #" + tag
	}
	fmt.Println(line)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// findTaskByPartialID resolves an ID prefix to exactly one task.
func findTaskByPartialID(svc service.TodoService, prefix string) (*data.Task, error) {
	var found *data.Task
	for _, t := range svc.Tasks() {
		if strings.HasPrefix(t.ID, prefix) {
			if found != nil {
				return nil, fmt.Errorf("ambiguous task ID prefix: %s", prefix)
			}
			task := t
			found = &task
		}
	}
	if found == nil {
		return nil, fmt.Errorf("no task matches ID prefix: %s", prefix)
	}
	return found, nil
}

func pendingOnly(tasks []data.Task) []data.Task {
	var out []data.Task
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

func quadrantByName(name string) (data.Quadrant, bool) {
	switch strings.ToLower(strings.ReplaceAll(name, " ", "")) {
	case "dofirst":
		return data.QuadrantDoFirst, true
	case "schedule":
		return data.QuadrantSchedule, true
	case "delegate":
		return data.QuadrantDelegate, true
	case "eliminate":
		return data.QuadrantEliminate, true
	}
	return 0, false
}

func parseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
