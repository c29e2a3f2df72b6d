package store

import (
	"fmt"
	"time"

	"deskmate/internal/todo/data"
)

// Store holds the canonical in-memory task collection, keyed by ID. All
// operations run synchronously to completion; callers that need access from
// multiple goroutines must serialize externally. Failed operations leave the
// collection untouched and fire no events.
type Store struct {
	tasks    map[string]data.Task
	notifier Notifier
}

func NewStore() *Store {
	return &Store{tasks: make(map[string]data.Task)}
}

// Subscribe registers an observer for mutation events.
func (s *Store) Subscribe(h Handler) Subscription {
	return s.notifier.Subscribe(h)
}

func (s *Store) Unsubscribe(token Subscription) {
	s.notifier.Unsubscribe(token)
}

// TaskPatch describes a partial update. Nil fields are left unchanged, so
// "absent" and "set to zero value" stay distinguishable.
type TaskPatch struct {
	Title     *string
	Urgent    *bool
	Important *bool
	Tags      []string // nil leaves tags unchanged; an empty slice clears them
	DueDate   *time.Time
	// ClearDueDate removes the due date. It wins over DueDate when both are set.
	ClearDueDate bool
	Completed    *bool
}

// Add creates a task and notifies observers.
func (s *Store) Add(title string, urgent, important bool, tags []string, due *time.Time) (*data.Task, error) {
	if title == "" {
		return nil, &data.ValidationError{Msg: "task title must not be empty"}
	}
	t := data.NewTask(title, urgent, important, tags, due)
	s.tasks[t.ID] = t
	s.notifier.notify(Event{Kind: EventAdded, ID: t.ID})
	return &t, nil
}

// Update applies a partial update to an existing task.
func (s *Store) Update(id string, patch TaskPatch) (*data.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, &data.NotFoundError{ID: id}
	}
	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, &data.ValidationError{Msg: "task title must not be empty"}
		}
		t.Title = *patch.Title
	}
	if patch.Urgent != nil {
		t.Urgent = *patch.Urgent
	}
	if patch.Important != nil {
		t.Important = *patch.Important
	}
	if patch.Tags != nil {
		t.Tags = data.NormalizeTags(patch.Tags)
	}
	if patch.ClearDueDate {
		t.DueDate = nil
	} else if patch.DueDate != nil {
		due := *patch.DueDate
		t.DueDate = &due
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	s.tasks[id] = t
	s.notifier.notify(Event{Kind: EventUpdated, ID: id})
	return &t, nil
}

// Remove deletes a task.
func (s *Store) Remove(id string) error {
	if _, ok := s.tasks[id]; !ok {
		return &data.NotFoundError{ID: id}
	}
	delete(s.tasks, id)
	s.notifier.notify(Event{Kind: EventRemoved, ID: id})
	return nil
}

// ToggleCompleted flips a task's completion state.
func (s *Store) ToggleCompleted(id string) (*data.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, &data.NotFoundError{ID: id}
	}
	t.Completed = !t.Completed
	s.tasks[id] = t
	s.notifier.notify(Event{Kind: EventUpdated, ID: id})
	return &t, nil
}

// Get returns a copy of the task with the given ID.
func (s *Store) Get(id string) (*data.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, &data.NotFoundError{ID: id}
	}
	return &t, nil
}

// All returns a snapshot of the full collection in display order.
func (s *Store) All() []data.Task {
	out := make([]data.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	data.SortTasks(out)
	return out
}

// ListByQuadrant returns the tasks classified into q, in display order.
func (s *Store) ListByQuadrant(q data.Quadrant) []data.Task {
	var out []data.Task
	for _, t := range s.tasks {
		if t.Quadrant() == q {
			out = append(out, t)
		}
	}
	data.SortTasks(out)
	return out
}

// Len reports the number of tasks in the store.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Replace atomically swaps the entire collection, firing a single reset
// event. Duplicate IDs reject the whole replacement.
func (s *Store) Replace(tasks []data.Task) error {
	next := make(map[string]data.Task, len(tasks))
	for _, t := range tasks {
		if _, dup := next[t.ID]; dup {
			return &data.ValidationError{Msg: fmt.Sprintf("duplicate task id: %s", t.ID)}
		}
		next[t.ID] = t
	}
	s.tasks = next
	s.notifier.notify(Event{Kind: EventReset})
	return nil
}
