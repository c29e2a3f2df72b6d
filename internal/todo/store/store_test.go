package store

import (
	"testing"
	"time"

	"deskmate/internal/todo/data"
)

func TestAddAndGet(t *testing.T) {
	s := NewStore()

	task, err := s.Add("Write report", true, true, []string{"work"}, nil)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if task.ID == "" {
		t.Fatal("expected a generated ID")
	}

	got, err := s.Get(task.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "Write report" || got.Quadrant() != data.QuadrantDoFirst {
		t.Errorf("unexpected task: %+v", got)
	}
}

func TestAddEmptyTitleRejected(t *testing.T) {
	s := NewStore()

	var events []Event
	s.Subscribe(func(ev Event) { events = append(events, ev) })

	if _, err := s.Add("", false, false, nil, nil); err == nil {
		t.Fatal("expected a validation error")
	} else if _, ok := err.(*data.ValidationError); !ok {
		t.Errorf("expected *data.ValidationError, got %T", err)
	}

	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d tasks", s.Len())
	}
	if len(events) != 0 {
		t.Errorf("failed add must not notify, got %v", events)
	}
}

func TestRemoveRestoresPriorState(t *testing.T) {
	s := NewStore()
	task, err := s.Add("Temp", false, false, nil, nil)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := s.Remove(task.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store after remove, got %d", s.Len())
	}
	if err := s.Remove(task.ID); err == nil {
		t.Error("expected not-found error on second remove")
	}
}

func TestUpdatePatchSemantics(t *testing.T) {
	s := NewStore()
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	task, err := s.Add("Original", true, false, []string{"a"}, &due)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// Only Important set; everything else must survive.
	yes := true
	updated, err := s.Update(task.ID, TaskPatch{Important: &yes})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Original" || !updated.Urgent || !updated.Important {
		t.Errorf("unexpected task after patch: %+v", updated)
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(due) {
		t.Errorf("due date should be untouched, got %v", updated.DueDate)
	}
	if updated.Quadrant() != data.QuadrantDoFirst {
		t.Errorf("expected DoFirst after patch, got %s", updated.Quadrant())
	}

	// Clearing the due date wins even with DueDate set in the same patch.
	other := due.AddDate(0, 1, 0)
	updated, err = s.Update(task.ID, TaskPatch{DueDate: &other, ClearDueDate: true})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.DueDate != nil {
		t.Errorf("expected cleared due date, got %v", updated.DueDate)
	}

	// Empty tag slice clears, nil leaves alone.
	updated, err = s.Update(task.ID, TaskPatch{Tags: []string{}})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Tags) != 0 {
		t.Errorf("expected cleared tags, got %v", updated.Tags)
	}
}

func TestUpdateEmptyTitleRejected(t *testing.T) {
	s := NewStore()
	task, _ := s.Add("Keep me", false, false, nil, nil)

	empty := ""
	if _, err := s.Update(task.ID, TaskPatch{Title: &empty}); err == nil {
		t.Fatal("expected a validation error")
	}

	got, err := s.Get(task.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "Keep me" {
		t.Errorf("failed update must not mutate, title is %q", got.Title)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	s := NewStore()
	if _, err := s.Update("nope", TaskPatch{}); err == nil {
		t.Fatal("expected not-found error")
	} else if _, ok := err.(*data.NotFoundError); !ok {
		t.Errorf("expected *data.NotFoundError, got %T", err)
	}
}

func TestToggleCompleted(t *testing.T) {
	s := NewStore()
	task, _ := s.Add("Flip me", false, false, nil, nil)

	toggled, err := s.ToggleCompleted(task.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !toggled.Completed {
		t.Error("expected completed after first toggle")
	}

	toggled, err = s.ToggleCompleted(task.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled.Completed {
		t.Error("expected pending after second toggle")
	}
}

func TestListByQuadrantPartitions(t *testing.T) {
	s := NewStore()
	s.Add("q1", true, true, nil, nil)
	s.Add("q2", false, true, nil, nil)
	s.Add("q3", true, false, nil, nil)
	s.Add("q4", false, false, nil, nil)
	s.Add("q4 again", false, false, nil, nil)

	total := 0
	for _, q := range data.Quadrants {
		for _, task := range s.ListByQuadrant(q) {
			if task.Quadrant() != q {
				t.Errorf("task %q listed under wrong quadrant %s", task.Title, q)
			}
			total++
		}
	}
	if total != s.Len() {
		t.Errorf("quadrant lists cover %d tasks, store has %d", total, s.Len())
	}
}

func TestReplace(t *testing.T) {
	s := NewStore()
	s.Add("old", false, false, nil, nil)

	var events []Event
	s.Subscribe(func(ev Event) { events = append(events, ev) })

	next := []data.Task{
		data.NewTask("new one", true, true, nil, nil),
		data.NewTask("new two", false, false, nil, nil),
	}
	if err := s.Replace(next); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	if s.Len() != 2 {
		t.Errorf("expected 2 tasks after replace, got %d", s.Len())
	}
	if len(events) != 1 || events[0].Kind != EventReset {
		t.Errorf("expected a single reset event, got %v", events)
	}
}

func TestReplaceDuplicateIDRejected(t *testing.T) {
	s := NewStore()
	s.Add("survivor", false, false, nil, nil)

	dup := data.NewTask("a", false, false, nil, nil)
	clone := dup
	clone.Title = "b"

	var fired bool
	s.Subscribe(func(Event) { fired = true })

	if err := s.Replace([]data.Task{dup, clone}); err == nil {
		t.Fatal("expected duplicate-ID error")
	}
	if s.Len() != 1 {
		t.Errorf("failed replace must keep the old collection, got %d tasks", s.Len())
	}
	if fired {
		t.Error("failed replace must not notify")
	}
}

func TestNotifierOrderAndUnsubscribe(t *testing.T) {
	s := NewStore()

	var order []string
	first := s.Subscribe(func(Event) { order = append(order, "first") })
	s.Subscribe(func(Event) { order = append(order, "second") })

	s.Add("one", false, false, nil, nil)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("expected registration order, got %v", order)
	}

	s.Unsubscribe(first)
	s.Unsubscribe(first) // second removal is a no-op

	order = nil
	s.Add("two", false, false, nil, nil)
	if len(order) != 1 || order[0] != "second" {
		t.Errorf("expected only the remaining handler, got %v", order)
	}
}

func TestNotifierSurvivesPanickingHandler(t *testing.T) {
	s := NewStore()

	s.Subscribe(func(Event) { panic("boom") })
	var reached bool
	s.Subscribe(func(Event) { reached = true })

	if _, err := s.Add("still fine", false, false, nil, nil); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !reached {
		t.Error("handler after the panicking one never ran")
	}
}
