// Package persist is the durable side of the todo module: a SQLite database
// holding the task collection between runs. The in-memory store never touches
// it directly; the service layer saves snapshots after each mutation.
package persist

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"deskmate/internal/todo/data"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	urgent     INTEGER NOT NULL DEFAULT 0,
	important  INTEGER NOT NULL DEFAULT 0,
	tags       TEXT,
	due_date   TEXT,
	completed  INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tags (
	name  TEXT PRIMARY KEY,
	color TEXT NOT NULL DEFAULT '#2A9D8F'
);
`

// Store wraps the SQLite database holding tasks and known tags.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and initializes the
// schema. A single connection is enough; all access is serialized by the
// caller anyway.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite3: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the full task collection from disk.
func (s *Store) Load() ([]data.Task, error) {
	rows, err := s.db.Query(
		"SELECT id, title, urgent, important, tags, due_date, completed, created_at FROM tasks")
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []data.Task
	for rows.Next() {
		var (
			t         data.Task
			urgent    int
			important int
			completed int
			tags      sql.NullString
			due       sql.NullString
			created   string
		)
		if err := rows.Scan(&t.ID, &t.Title, &urgent, &important, &tags, &due, &completed, &created); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Urgent = urgent != 0
		t.Important = important != 0
		t.Completed = completed != 0
		if tags.Valid && tags.String != "" {
			t.Tags = data.NormalizeTags(strings.Split(tags.String, ","))
		}
		if due.Valid && due.String != "" {
			if parsed, err := time.Parse(time.RFC3339, due.String); err == nil {
				t.DueDate = &parsed
			}
		}
		if parsed, err := time.Parse(time.RFC3339Nano, created); err == nil {
			t.CreatedAt = parsed
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// SaveAll replaces the stored collection with the given snapshot in a single
// transaction, and records every tag it sees.
func (s *Store) SaveAll(tasks []data.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	insert, err := tx.Prepare(
		"INSERT INTO tasks (id, title, urgent, important, tags, due_date, completed, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer insert.Close()

	for _, t := range tasks {
		var due string
		if t.DueDate != nil {
			due = t.DueDate.Format(time.RFC3339)
		}
		_, err := insert.Exec(
			t.ID, t.Title, boolInt(t.Urgent), boolInt(t.Important),
			strings.Join(t.Tags, ","), due, boolInt(t.Completed),
			t.CreatedAt.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
		for _, tag := range t.Tags {
			if _, err := tx.Exec("INSERT OR IGNORE INTO tags (name) VALUES (?)", tag); err != nil {
				return fmt.Errorf("record tag %s: %w", tag, err)
			}
		}
	}

	return tx.Commit()
}

// KnownTags returns every tag ever saved, sorted by name.
func (s *Store) KnownTags() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM tags ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
