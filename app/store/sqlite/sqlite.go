// Package sqlite implements the store interface on an embedded SQLite
// database. This is the default backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"todo-api/app/models"
)

// Store holds the database handle. Safe for concurrent use; database/sql
// pools connections per call.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and runs the
// schema migration.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// migrate creates the two tables. The UNIQUE constraint on
// dones.task_id backs the one-marker-per-task invariant at the storage
// layer; a duplicate insert surfaces as models.ErrDoneExists, so the
// invariant holds even when two concurrent marks pass the service-level
// existence check.
func (s *Store) migrate(ctx context.Context) error {
	createTasks := `CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL
	)`
	if _, err := s.db.ExecContext(ctx, createTasks); err != nil {
		return fmt.Errorf("migrate tasks: %w", err)
	}
	createDones := `CREATE TABLE IF NOT EXISTS dones (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id INTEGER NOT NULL UNIQUE
	)`
	if _, err := s.db.ExecContext(ctx, createDones); err != nil {
		return fmt.Errorf("migrate dones: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error { return s.db.Close() }

// CreateTask persists a new task with the given title. The title is
// stored as-is; empty titles are accepted.
func (s *Store) CreateTask(ctx context.Context, title string) (models.Task, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO tasks (title) VALUES (?)`, title)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: last insert id: %w", err)
	}
	return models.Task{ID: id, Title: title}, nil
}

// ListTasks returns all tasks in insertion order, each with its done
// flag derived from the presence of a marker row.
func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.title, d.id IS NOT NULL
		FROM tasks t
		LEFT JOIN dones d ON d.task_id = t.id
		ORDER BY t.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var out []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Done); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: iterate: %w", err)
	}
	return out, nil
}

func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task
	err := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.title, d.id IS NOT NULL
		FROM tasks t
		LEFT JOIN dones d ON d.task_id = t.id
		WHERE t.id = ?`, id).Scan(&t.ID, &t.Title, &t.Done)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, models.ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// UpdateTaskTitle overwrites the title and returns the updated record
// with its current done flag.
func (s *Store) UpdateTaskTitle(ctx context.Context, id int64, title string) (models.Task, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET title = ? WHERE id = ?`, title, id)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: rows affected: %w", err)
	}
	if n == 0 {
		return models.Task{}, models.ErrTaskNotFound
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes the task and cascades to its done marker in one
// transaction.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete task: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: rows affected: %w", err)
	}
	if n == 0 {
		return models.ErrTaskNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM dones WHERE task_id = ?`, id); err != nil {
		return fmt.Errorf("delete task marker: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete task: commit: %w", err)
	}
	return nil
}

func (s *Store) GetDone(ctx context.Context, taskID int64) (models.Done, error) {
	var d models.Done
	err := s.db.QueryRowContext(ctx,
		`SELECT id, task_id FROM dones WHERE task_id = ?`, taskID).Scan(&d.ID, &d.TaskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Done{}, models.ErrDoneNotFound
		}
		return models.Done{}, fmt.Errorf("get done: %w", err)
	}
	return d, nil
}

// CreateDone inserts a marker for the task id. A concurrent mark that
// slipped in between the caller's existence check and this insert hits
// the UNIQUE constraint and is reported as models.ErrDoneExists. Task
// existence is not checked; markers for unknown task ids are allowed.
func (s *Store) CreateDone(ctx context.Context, taskID int64) (models.Done, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO dones (task_id) VALUES (?)`, taskID)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return models.Done{}, models.ErrDoneExists
		}
		return models.Done{}, fmt.Errorf("create done: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Done{}, fmt.Errorf("create done: last insert id: %w", err)
	}
	return models.Done{ID: id, TaskID: taskID}, nil
}

// DeleteDone deletes the marker record the caller previously fetched,
// by its own id.
func (s *Store) DeleteDone(ctx context.Context, done models.Done) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM dones WHERE id = ?`, done.ID)
	if err != nil {
		return fmt.Errorf("delete done: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete done: rows affected: %w", err)
	}
	if n == 0 {
		return models.ErrDoneNotFound
	}
	return nil
}
