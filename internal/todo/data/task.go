package data

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Quadrant is one of the four Eisenhower prioritization buckets derived from
// a task's urgency/importance flags. It is always computed from the flags and
// never stored alongside them.
type Quadrant int

const (
	QuadrantDoFirst Quadrant = iota
	QuadrantSchedule
	QuadrantDelegate
	QuadrantEliminate
)

// Quadrants lists all quadrants in canonical display order.
var Quadrants = []Quadrant{
	QuadrantDoFirst,
	QuadrantSchedule,
	QuadrantDelegate,
	QuadrantEliminate,
}

func (q Quadrant) String() string {
	switch q {
	case QuadrantDoFirst:
		return "Do First"
	case QuadrantSchedule:
		return "Schedule"
	case QuadrantDelegate:
		return "Delegate"
	case QuadrantEliminate:
		return "Eliminate"
	}
	return "Unknown"
}

// ClassifyQuadrant maps the urgency/importance flags to a quadrant.
func ClassifyQuadrant(urgent, important bool) Quadrant {
	switch {
	case urgent && important:
		return QuadrantDoFirst
	case !urgent && important:
		return QuadrantSchedule
	case urgent && !important:
		return QuadrantDelegate
	}
	return QuadrantEliminate
}

// Task is a single to-do item.
type Task struct {
	ID        string
	Title     string
	Urgent    bool
	Important bool
	Tags      []string
	DueDate   *time.Time
	Completed bool
	CreatedAt time.Time
}

// NewTask creates a task with a fresh ID and creation timestamp.
func NewTask(title string, urgent, important bool, tags []string, due *time.Time) Task {
	return Task{
		ID:        uuid.NewString(),
		Title:     title,
		Urgent:    urgent,
		Important: important,
		Tags:      NormalizeTags(tags),
		DueDate:   due,
		CreatedAt: time.Now(),
	}
}

// Quadrant returns the prioritization bucket this task falls into.
func (t Task) Quadrant() Quadrant {
	return ClassifyQuadrant(t.Urgent, t.Important)
}

func (t Task) HasTag(tag string) bool {
	for _, x := range t.Tags {
		if x == tag {
			return true
		}
	}
	return false
}

// SortTasks orders tasks for display: incomplete before completed, then by
// due date ascending with undated tasks last, ties broken by creation time.
// The undated-last rule is a deliberate policy choice, not inherent ordering.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		switch {
		case a.DueDate == nil && b.DueDate != nil:
			return false
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate != nil && b.DueDate != nil:
			if !a.DueDate.Equal(*b.DueDate) {
				return a.DueDate.Before(*b.DueDate)
			}
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// NormalizeTags dedupes and sorts tags. Tag order carries no meaning, so a
// canonical order keeps comparisons and serialized output stable.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
