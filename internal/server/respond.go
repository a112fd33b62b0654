package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ukaji3/rostergrid/pkg/rostergrid"
)

type messageResponse struct {
	Message string `json:"message"`
}

type warningResponse struct {
	Warning string `json:"warning"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, format string, args ...interface{}) {
	writeJSON(w, status, messageResponse{Message: fmt.Sprintf(format, args...)})
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// writeStoreError maps store errors onto HTTP statuses. Validation
// warnings become 422 with a user-facing message.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case rostergrid.IsWarning(err):
		writeJSON(w, http.StatusUnprocessableEntity, warningResponse{Warning: warningMessage(err)})
	case errors.Is(err, rostergrid.ErrInvalidFormat), errors.Is(err, rostergrid.ErrFileNotFound):
		writeBadRequest(w, err)
	case errors.Is(err, rostergrid.ErrNoTable):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: internalServerError})
	}
}

// warningMessage renders a validation error the way the editor shows it.
func warningMessage(err error) string {
	var opErr *rostergrid.OperationError
	column := ""
	if errors.As(err, &opErr) {
		column = opErr.Column
	}

	switch {
	case errors.Is(err, rostergrid.ErrNoSelection):
		return "Please select at least one row to delete."
	case errors.Is(err, rostergrid.ErrDuplicateColumn):
		return fmt.Sprintf("Column '%s' already exists.", column)
	case errors.Is(err, rostergrid.ErrInvalidName) && opErr != nil && opErr.Op == "add_column":
		return "Please enter a valid column name."
	case errors.Is(err, rostergrid.ErrUnknownColumn) && column != "":
		return fmt.Sprintf("Column '%s' does not exist.", column)
	default:
		return err.Error()
	}
}
