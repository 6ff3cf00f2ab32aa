package services

import (
	"context"
	"errors"

	"todo-api/app/models"
	"todo-api/app/store"
)

// DoneService handles the done marker sub-resource. Per task id the
// marker is in one of two states, absent or marked, and both Mark and
// Unmark are check-then-act: they read the current state first and
// decide from what they observed. The read and the write are separate
// store calls on purpose; the 400-vs-404 distinction comes from the
// state seen at check time.
type DoneService struct {
	store store.Store
}

// NewDoneService creates a new instance of DoneService.
func NewDoneService(s store.Store) *DoneService {
	return &DoneService{store: s}
}

// GetDone returns the marker for the task id, or models.ErrDoneNotFound.
func (s *DoneService) GetDone(ctx context.Context, taskID int64) (models.Done, error) {
	return s.store.GetDone(ctx, taskID)
}

// Mark creates a done marker for the task id. If a marker already
// exists, returns models.ErrDoneExists. The task itself is not required
// to exist; marking an unknown task id succeeds.
func (s *DoneService) Mark(ctx context.Context, taskID int64) (models.Done, error) {
	_, err := s.store.GetDone(ctx, taskID)
	if err == nil {
		return models.Done{}, models.ErrDoneExists
	}
	if !errors.Is(err, models.ErrDoneNotFound) {
		return models.Done{}, err
	}
	return s.store.CreateDone(ctx, taskID)
}

// Unmark removes the task's done marker. If no marker exists, returns
// models.ErrDoneNotFound. The delete targets the exact record returned
// by the lookup, not a fresh query by task id.
func (s *DoneService) Unmark(ctx context.Context, taskID int64) error {
	done, err := s.store.GetDone(ctx, taskID)
	if err != nil {
		return err
	}
	return s.store.DeleteDone(ctx, done)
}
