package models

// Task represents a to-do item. The Done flag is not stored on the task
// record itself; it is derived from the presence of a Done marker for
// the task's id.
type Task struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Done marks a task as complete. At most one marker exists per task id.
type Done struct {
	ID     int64 `json:"id"`
	TaskID int64 `json:"task_id"`
}
