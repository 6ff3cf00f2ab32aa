package models

import "errors"

// Domain errors shared by all storage backends. The message text of the
// done errors is part of the HTTP contract and must not change.
var (
	ErrTaskNotFound = errors.New("Task not found")
	ErrDoneNotFound = errors.New("Done not found")
	ErrDoneExists   = errors.New("Done already exists")
)
