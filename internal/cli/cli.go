package cli

import (
	"fmt"
	"os"

	"deskmate/internal/config"
	"deskmate/internal/todo/service"
)

// Run executes the CLI with the given arguments.
// The first argument should be the namespace ("task" or "pomodoro").
func Run(args []string, svc service.TodoService, cfg *config.Config) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	namespace := args[0]
	subArgs := args[1:]

	switch namespace {
	case "task":
		return runTaskCommand(subArgs, svc, cfg)
	case "pomodoro":
		return runPomodoroCommand(subArgs, cfg)
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", namespace)
		printUsage()
		return 1
	}
}

func runTaskCommand(args []string, svc service.TodoService, cfg *config.Config) int {
	if len(args) == 0 {
		printTaskUsage()
		return 1
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "add", "a":
		return runAdd(cmdArgs, svc)
	case "list", "ls", "l":
		return runList(cmdArgs, svc)
	case "done", "do", "d":
		return runDone(cmdArgs, svc)
	case "delete", "rm", "del":
		return runDelete(cmdArgs, svc)
	case "export":
		return runExport(cmdArgs, svc, cfg)
	case "import":
		return runImport(cmdArgs, svc, cfg)
	case "help", "-h", "--help":
		printTaskUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown task command: %s\n", command)
		printTaskUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println(`deskmate - terminal personal assistant

Usage: deskmate [flags] [command] [arguments]

Commands:
  task        Task management commands
  pomodoro    Pomodoro timer commands

Flags:
  -data <dir>        Data directory (default ~/.local/share/deskmate)
  --view <name>      Initial view: matrix, pomodoro, launcher

Running deskmate without arguments launches the interactive TUI.
Use "deskmate task help" for task subcommands.`)
}

func printTaskUsage() {
	fmt.Println(`deskmate task - Task management commands

Usage: deskmate task <command> [arguments]

Commands:
  add, a      Add a new task
              deskmate task add "Write report" -u -i -t "work,q3" -d 2026-09-01

  list, ls, l List tasks grouped by quadrant
              deskmate task list              # List pending tasks
              deskmate task list --all        # Include completed tasks
              deskmate task list -q dofirst   # Single quadrant

  done, do, d Toggle a task's completed state
              deskmate task done <task-id-prefix>

  delete, rm  Delete a task
              deskmate task delete <task-id-prefix>

  export      Write tasks to a Markdown file
              deskmate task export [file]     # default: todo.md in data dir

  import      Replace tasks from a Markdown file
              deskmate task import [file]

  help        Show this help message`)
}
