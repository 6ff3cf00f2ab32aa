package services

import (
	"context"

	"todo-api/app/models"
	"todo-api/app/store"
)

// TaskService handles task-related operations.
type TaskService struct {
	store store.Store
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(s store.Store) *TaskService {
	return &TaskService{store: s}
}

// GetTasks retrieves all tasks, each with its derived done flag.
func (s *TaskService) GetTasks(ctx context.Context) ([]models.Task, error) {
	return s.store.ListTasks(ctx)
}

// GetTaskByID retrieves a single task by its ID.
func (s *TaskService) GetTaskByID(ctx context.Context, id int64) (models.Task, error) {
	return s.store.GetTask(ctx, id)
}

// CreateTask adds a new task with the given title. The title is taken
// as-is; validating it is out of scope here.
func (s *TaskService) CreateTask(ctx context.Context, title string) (models.Task, error) {
	return s.store.CreateTask(ctx, title)
}

// UpdateTask overwrites the task's title and returns the updated
// record. Returns models.ErrTaskNotFound for an unknown id.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, title string) (models.Task, error) {
	return s.store.UpdateTaskTitle(ctx, id, title)
}

// DeleteTask deletes a task along with its done marker, if any.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	return s.store.DeleteTask(ctx, id)
}
