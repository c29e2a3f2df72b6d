package service

import (
	"crypto/sha256"
	"fmt"
	"os"
	"time"

	"deskmate/internal/logs"
	"deskmate/internal/todo/data"
	"deskmate/internal/todo/persist"
	"deskmate/internal/todo/store"
)

// TodoService defines the interface for todo operations. It ties the
// in-memory store to its collaborators: the SQLite database and the Markdown
// export/import files.
type TodoService interface {
	Tasks() []data.Task
	ByQuadrant(q data.Quadrant) []data.Task
	Get(id string) (*data.Task, error)
	Add(title string, urgent, important bool, tags []string, due *time.Time) (*data.Task, error)
	Update(id string, patch store.TaskPatch) (*data.Task, error)
	Toggle(id string) (*data.Task, error)
	Delete(id string) error
	ExportMarkdown(path string) error
	ImportMarkdown(path string) error
	ImportMarkdownIfChanged(path string) (bool, error)
	KnownTags() []string
	Subscribe(h store.Handler) store.Subscription
	Unsubscribe(token store.Subscription)
	Close() error
}

type todoServiceImpl struct {
	store *store.Store
	db    *persist.Store

	// lastMarkdown is the hash of the Markdown content this service last
	// wrote or read, so file-watcher events caused by our own export are
	// told apart from genuine external edits.
	lastMarkdown    [sha256.Size]byte
	hasLastMarkdown bool
}

// NewTodoService opens the database at dbPath and loads the stored tasks
// into a fresh store.
func NewTodoService(dbPath string) (TodoService, error) {
	db, err := persist.Open(dbPath)
	if err != nil {
		return nil, err
	}

	tasks, err := db.Load()
	if err != nil {
		db.Close()
		return nil, err
	}

	svc := &todoServiceImpl{store: store.NewStore(), db: db}
	if err := svc.store.Replace(tasks); err != nil {
		db.Close()
		return nil, err
	}
	return svc, nil
}

func (s *todoServiceImpl) Tasks() []data.Task {
	return s.store.All()
}

func (s *todoServiceImpl) ByQuadrant(q data.Quadrant) []data.Task {
	return s.store.ListByQuadrant(q)
}

func (s *todoServiceImpl) Get(id string) (*data.Task, error) {
	return s.store.Get(id)
}

func (s *todoServiceImpl) Add(title string, urgent, important bool, tags []string, due *time.Time) (*data.Task, error) {
	t, err := s.store.Add(title, urgent, important, tags, due)
	if err != nil {
		return nil, err
	}
	return t, s.save()
}

func (s *todoServiceImpl) Update(id string, patch store.TaskPatch) (*data.Task, error) {
	t, err := s.store.Update(id, patch)
	if err != nil {
		return nil, err
	}
	return t, s.save()
}

func (s *todoServiceImpl) Toggle(id string) (*data.Task, error) {
	t, err := s.store.ToggleCompleted(id)
	if err != nil {
		return nil, err
	}
	return t, s.save()
}

func (s *todoServiceImpl) Delete(id string) error {
	if err := s.store.Remove(id); err != nil {
		return err
	}
	return s.save()
}

// ExportMarkdown writes the current snapshot to a Markdown file.
func (s *todoServiceImpl) ExportMarkdown(path string) error {
	content := data.EncodeMarkdown(s.store.All())
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %v", path, err)
	}
	s.rememberMarkdown(content)
	logs.Logger.Printf("exported %d tasks to %s", s.store.Len(), path)
	return nil
}

// ImportMarkdown reads a Markdown file and replaces the collection with its
// tasks. Imported tasks get fresh IDs; the swap fires a single reset event.
func (s *todoServiceImpl) ImportMarkdown(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %v", path, err)
	}
	return s.importContent(path, content)
}

// ImportMarkdownIfChanged imports path only when its content differs from the
// Markdown this service last wrote or read. The file watcher cannot tell an
// export of our own apart from an external edit; re-importing our own export
// would needlessly regenerate every task ID.
func (s *todoServiceImpl) ImportMarkdownIfChanged(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %v", path, err)
	}
	if s.hasLastMarkdown && sha256.Sum256(content) == s.lastMarkdown {
		return false, nil
	}
	if err := s.importContent(path, content); err != nil {
		return false, err
	}
	return true, nil
}

func (s *todoServiceImpl) importContent(path string, content []byte) error {
	tasks, err := data.DecodeMarkdown(content)
	if err != nil {
		return err
	}
	if err := s.store.Replace(tasks); err != nil {
		return err
	}
	s.rememberMarkdown(content)
	logs.Logger.Printf("imported %d tasks from %s", len(tasks), path)
	return s.save()
}

func (s *todoServiceImpl) rememberMarkdown(content []byte) {
	s.lastMarkdown = sha256.Sum256(content)
	s.hasLastMarkdown = true
}

func (s *todoServiceImpl) KnownTags() []string {
	tags, err := s.db.KnownTags()
	if err != nil {
		logs.Logger.Printf("could not load known tags: %v", err)
		return nil
	}
	return tags
}

func (s *todoServiceImpl) Subscribe(h store.Handler) store.Subscription {
	return s.store.Subscribe(h)
}

func (s *todoServiceImpl) Unsubscribe(token store.Subscription) {
	s.store.Unsubscribe(token)
}

func (s *todoServiceImpl) Close() error {
	return s.db.Close()
}

func (s *todoServiceImpl) save() error {
	return s.db.SaveAll(s.store.All())
}
