package persist

import (
	"path/filepath"
	"testing"
	"time"

	"deskmate/internal/todo/data"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSaveAllAndLoadRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tasks := []data.Task{
		data.NewTask("Ship release", true, true, []string{"work", "q3"}, &due),
		data.NewTask("Water plants", false, false, nil, nil),
	}
	tasks[1].Completed = true

	if err := s.SaveAll(tasks); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(loaded))
	}

	byID := make(map[string]data.Task)
	for _, task := range loaded {
		byID[task.ID] = task
	}

	for _, want := range tasks {
		got, ok := byID[want.ID]
		if !ok {
			t.Fatalf("task %s missing after reload", want.ID)
		}
		if got.Title != want.Title || got.Urgent != want.Urgent ||
			got.Important != want.Important || got.Completed != want.Completed {
			t.Errorf("task %s round trip mismatch: %+v vs %+v", want.ID, got, want)
		}
		if (got.DueDate == nil) != (want.DueDate == nil) {
			t.Errorf("task %s: due date presence mismatch", want.ID)
		} else if got.DueDate != nil && !got.DueDate.Equal(*want.DueDate) {
			t.Errorf("task %s: due %v, want %v", want.ID, got.DueDate, want.DueDate)
		}
		if len(got.Tags) != len(want.Tags) {
			t.Errorf("task %s: tags %v, want %v", want.ID, got.Tags, want.Tags)
		}
		if !got.CreatedAt.Equal(want.CreatedAt) {
			t.Errorf("task %s: created %v, want %v", want.ID, got.CreatedAt, want.CreatedAt)
		}
	}
}

func TestSaveAllReplacesPreviousSnapshot(t *testing.T) {
	s, _ := openTestStore(t)

	first := []data.Task{data.NewTask("first", false, false, nil, nil)}
	if err := s.SaveAll(first); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	second := []data.Task{data.NewTask("second", false, false, nil, nil)}
	if err := s.SaveAll(second); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Title != "second" {
		t.Errorf("expected only the latest snapshot, got %+v", loaded)
	}
}

func TestKnownTagsAccumulate(t *testing.T) {
	s, _ := openTestStore(t)

	if err := s.SaveAll([]data.Task{data.NewTask("a", false, false, []string{"home", "work"}, nil)}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	// Tags survive even after the tasks carrying them are gone.
	if err := s.SaveAll([]data.Task{data.NewTask("b", false, false, []string{"errand"}, nil)}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	tags, err := s.KnownTags()
	if err != nil {
		t.Fatalf("known tags failed: %v", err)
	}

	want := []string{"errand", "home", "work"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, tags)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := s.SaveAll([]data.Task{data.NewTask("persist me", true, false, nil, nil)}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Title != "persist me" {
		t.Errorf("expected the saved task after reopen, got %+v", loaded)
	}
}
