// Package store defines the persistence interface consumed by the
// service layer. Two backends implement it: sqlite (default) and neo4j.
package store

import (
	"context"

	"todo-api/app/models"
)

// Store is the persistence contract for tasks and done markers.
//
// GetDone returns models.ErrDoneNotFound when no marker exists for the
// task id; it never returns a partially populated marker, so callers
// can rely on the error alone to distinguish the two states.
//
// DeleteDone takes the marker record previously returned by GetDone and
// deletes that record by its own id, not by task id.
type Store interface {
	CreateTask(ctx context.Context, title string) (models.Task, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id int64) (models.Task, error)
	UpdateTaskTitle(ctx context.Context, id int64, title string) (models.Task, error)
	// DeleteTask removes the task and, if present, its done marker.
	DeleteTask(ctx context.Context, id int64) error

	GetDone(ctx context.Context, taskID int64) (models.Done, error)
	CreateDone(ctx context.Context, taskID int64) (models.Done, error)
	DeleteDone(ctx context.Context, done models.Done) error

	Close(ctx context.Context) error
}
