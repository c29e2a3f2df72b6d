package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"deskmate/internal/todo/data"
	"deskmate/internal/todo/store"
)

func newTestService(t *testing.T) (TodoService, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := NewTodoService(filepath.Join(dir, "todo.db"))
	if err != nil {
		t.Fatalf("open service: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc, dir
}

func TestServicePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "todo.db")

	svc, err := NewTodoService(dbPath)
	if err != nil {
		t.Fatalf("open service: %v", err)
	}

	added, err := svc.Add("Call plumber", true, false, []string{"home"}, nil)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := NewTodoService(dbPath)
	if err != nil {
		t.Fatalf("reopen service: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(added.ID)
	if err != nil {
		t.Fatalf("task lost across reopen: %v", err)
	}
	if got.Title != "Call plumber" || got.Quadrant() != data.QuadrantDelegate {
		t.Errorf("unexpected task after reopen: %+v", got)
	}
}

func TestServiceUpdateAndDelete(t *testing.T) {
	svc, _ := newTestService(t)

	task, err := svc.Add("Draft", false, false, nil, nil)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	title := "Final"
	yes := true
	updated, err := svc.Update(task.ID, store.TaskPatch{Title: &title, Important: &yes})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Final" || updated.Quadrant() != data.QuadrantSchedule {
		t.Errorf("unexpected task after update: %+v", updated)
	}

	if err := svc.Delete(task.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(task.ID); err == nil {
		t.Error("expected not-found after delete")
	}
}

func TestServiceExportImportMarkdown(t *testing.T) {
	svc, dir := newTestService(t)

	due := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Add("Review budget", true, true, []string{"finance"}, &due); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.Add("Unsubscribe from lists", false, false, nil, nil); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	mdPath := filepath.Join(dir, "todo.md")
	if err := svc.ExportMarkdown(mdPath); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	content, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if !strings.Contains(string(content), "- [ ] Review budget (due: 2026-09-10) #finance") {
		t.Errorf("unexpected export content:\n%s", content)
	}

	// An import replaces the collection wholesale.
	var resets int
	svc.Subscribe(func(ev store.Event) {
		if ev.Kind == store.EventReset {
			resets++
		}
	})

	if err := svc.ImportMarkdown(mdPath); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if resets != 1 {
		t.Errorf("expected one reset event, got %d", resets)
	}

	tasks := svc.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks after import, got %d", len(tasks))
	}
	var found bool
	for _, task := range tasks {
		if task.Title == "Review budget" && task.Quadrant() == data.QuadrantDoFirst {
			found = true
		}
	}
	if !found {
		t.Errorf("imported tasks missing expectation: %+v", tasks)
	}
}

func TestImportMarkdownIfChangedSkipsOwnExport(t *testing.T) {
	svc, dir := newTestService(t)

	added, err := svc.Add("Stable identity", true, true, nil, nil)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	mdPath := filepath.Join(dir, "todo.md")
	if err := svc.ExportMarkdown(mdPath); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	// The watcher fires for our own export; the content is ours, so the
	// import is skipped and the task keeps its ID.
	changed, err := svc.ImportMarkdownIfChanged(mdPath)
	if err != nil {
		t.Fatalf("conditional import failed: %v", err)
	}
	if changed {
		t.Error("own export must not trigger a re-import")
	}
	if _, err := svc.Get(added.ID); err != nil {
		t.Errorf("task ID regenerated by own export: %v", err)
	}

	// A genuine external edit does get imported.
	external := "## Do First\n\n- [ ] Edited outside the app\n"
	if err := os.WriteFile(mdPath, []byte(external), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	changed, err = svc.ImportMarkdownIfChanged(mdPath)
	if err != nil {
		t.Fatalf("conditional import failed: %v", err)
	}
	if !changed {
		t.Fatal("external edit must trigger a re-import")
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Edited outside the app" {
		t.Errorf("unexpected collection after external edit: %+v", tasks)
	}

	// The imported content is now ours too; a repeat event is a no-op.
	changed, err = svc.ImportMarkdownIfChanged(mdPath)
	if err != nil {
		t.Fatalf("conditional import failed: %v", err)
	}
	if changed {
		t.Error("unchanged file must not re-import twice")
	}
}

func TestServiceImportMissingFile(t *testing.T) {
	svc, dir := newTestService(t)

	if _, err := svc.Add("Keep me", false, false, nil, nil); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := svc.ImportMarkdown(filepath.Join(dir, "missing.md")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if len(svc.Tasks()) != 1 {
		t.Errorf("failed import must not change the collection, got %d tasks", len(svc.Tasks()))
	}
}

func TestServiceKnownTags(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Add("Tagged", false, true, []string{"deep-work"}, nil); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	tags := svc.KnownTags()
	if len(tags) != 1 || tags[0] != "deep-work" {
		t.Errorf("expected [deep-work], got %v", tags)
	}
}
