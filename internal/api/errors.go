package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hyperengineering/statefacts/internal/states"
	"github.com/hyperengineering/statefacts/internal/types"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError writes a {"message": ...} error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, types.ErrorResponse{Message: message})
}

// MapError converts fact operation errors to HTTP error responses.
func MapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, states.ErrValidation):
		WriteError(w, http.StatusBadRequest, states.Message(err, "Bad Request"))
	case errors.Is(err, states.ErrIndex):
		WriteError(w, http.StatusBadRequest, states.Message(err, "Bad Request"))
	case errors.Is(err, states.ErrNotFound):
		WriteError(w, http.StatusNotFound, states.Message(err, "Not Found"))
	default:
		// Never expose internal error details to client
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
