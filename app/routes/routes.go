package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"todo-api/app/controllers"
)

// RegisterRoutes sets up all routes for the application. The taskID
// variable is constrained to digits so non-numeric ids never reach the
// handlers.
func RegisterRoutes(router *mux.Router, taskController *controllers.TaskController, doneController *controllers.DoneController) {
	router.Use(RequestLogger)

	router.HandleFunc("/tasks", taskController.GetTasks).Methods(http.MethodGet)
	router.HandleFunc("/tasks", taskController.CreateTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{taskID:[0-9]+}", taskController.GetTaskByID).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{taskID:[0-9]+}", taskController.UpdateTask).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{taskID:[0-9]+}", taskController.DeleteTask).Methods(http.MethodDelete)
	router.HandleFunc("/tasks/{taskID:[0-9]+}/done", doneController.MarkDone).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{taskID:[0-9]+}/done", doneController.UnmarkDone).Methods(http.MethodDelete)
}
