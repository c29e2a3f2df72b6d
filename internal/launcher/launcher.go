// Package launcher discovers runnable applications and starts them detached
// from the shell. Discovery covers freedesktop .desktop entries plus
// executables on $PATH, which covers Linux and most unixy setups.
package launcher

import (
	"bufio"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"deskmate/internal/logs"
)

// App is a launchable application.
type App struct {
	Name string
	Exec string // command line, field codes stripped
	Desc string
}

// apps implements fuzzy.Source over the app names.
type apps []App

func (a apps) String(i int) string { return a[i].Name }
func (a apps) Len() int            { return len(a) }

// Discover scans the standard application directories and $PATH. Results are
// deduped by name, .desktop entries winning over bare executables, and
// sorted by name.
func Discover() []App {
	byName := make(map[string]App)

	for _, exe := range scanPath() {
		byName[exe] = App{Name: exe, Exec: exe}
	}
	for _, dir := range desktopDirs() {
		for _, app := range scanDesktopDir(dir) {
			byName[app.Name] = app
		}
	}

	out := make([]App, 0, len(byName))
	for _, app := range byName {
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Search fuzzy-matches query against app names, best matches first. An empty
// query returns everything.
func Search(all []App, query string) []App {
	if query == "" {
		return all
	}
	matches := fuzzy.FindFrom(query, apps(all))
	out := make([]App, len(matches))
	for i, m := range matches {
		out[i] = all[m.Index]
	}
	return out
}

// Launch starts the app detached, so it outlives the process.
func Launch(app App) error {
	parts := strings.Fields(app.Exec)
	if len(parts) == 0 {
		return &exec.Error{Name: app.Name, Err: exec.ErrNotFound}
	}
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	logs.Logger.Printf("launched %s (pid %d)", app.Name, cmd.Process.Pid)
	// Reap the child in the background so it doesn't linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

func desktopDirs() []string {
	dirs := []string{"/usr/share/applications", "/usr/local/share/applications"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "applications"))
	}
	return dirs
}

func scanDesktopDir(dir string) []App {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var found []App
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".desktop") {
			continue
		}
		app, ok := parseDesktopFile(filepath.Join(dir, entry.Name()))
		if ok {
			found = append(found, app)
		}
	}
	return found
}

// parseDesktopFile reads the [Desktop Entry] section of a .desktop file.
// Hidden and NoDisplay entries are skipped.
func parseDesktopFile(path string) (App, bool) {
	file, err := os.Open(path)
	if err != nil {
		return App{}, false
	}
	defer file.Close()

	var app App
	inEntry := false

	s := bufio.NewScanner(file)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if strings.HasPrefix(line, "[") {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "Name":
			if app.Name == "" {
				app.Name = value
			}
		case "Exec":
			app.Exec = stripFieldCodes(value)
		case "Comment":
			app.Desc = value
		case "NoDisplay", "Hidden":
			if value == "true" {
				return App{}, false
			}
		}
	}

	if app.Name == "" || app.Exec == "" {
		return App{}, false
	}
	return app, true
}

// stripFieldCodes removes %f/%u style placeholders from an Exec line.
func stripFieldCodes(cmd string) string {
	fields := strings.Fields(cmd)
	var kept []string
	for _, f := range fields {
		if strings.HasPrefix(f, "%") {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func scanPath() []string {
	seen := make(map[string]bool)
	var names []string
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || seen[entry.Name()] {
				continue
			}
			info, err := entry.Info()
			if err != nil || info.Mode()&0o111 == 0 {
				continue
			}
			seen[entry.Name()] = true
			names = append(names, entry.Name())
		}
	}
	return names
}
