package controllers

import (
	"net/http"

	"todo-api/app/models"
	"todo-api/app/services"
)

// DoneController handles HTTP requests for the done marker sub-resource.
type DoneController struct {
	Service *services.DoneService
}

// NewDoneController creates a new DoneController.
func NewDoneController(service *services.DoneService) *DoneController {
	return &DoneController{Service: service}
}

// MarkDone handles PUT /tasks/{taskID}/done. Responds 400 "Done already
// exists" when the task is already marked.
func (c *DoneController) MarkDone(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		http.Error(w, models.ErrTaskNotFound.Error(), http.StatusNotFound)
		return
	}
	done, err := c.Service.Mark(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, struct {
		TaskID int64 `json:"task_id"`
		Done   bool  `json:"done"`
	}{TaskID: done.TaskID, Done: true})
}

// UnmarkDone handles DELETE /tasks/{taskID}/done. Responds 404 "Done
// not found" when the task is not marked.
func (c *DoneController) UnmarkDone(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		http.Error(w, models.ErrTaskNotFound.Error(), http.StatusNotFound)
		return
	}
	if err := c.Service.Unmark(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
