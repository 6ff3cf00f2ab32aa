package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"todo-api/app/models"
)

// taskID parses the taskID path variable. The routes constrain it to
// digits, so a parse failure only happens on a misregistered route.
func taskID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["taskID"], 10, 64)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to the HTTP status codes of the
// contract. Anything unclassified is a 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrDoneExists):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrTaskNotFound), errors.Is(err, models.ErrDoneNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
