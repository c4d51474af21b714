package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-ovsyannikov/promisetrack/internal/errs"
)

// errorBody is the uniform error envelope: {"error": message}.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError maps sentinel errors to HTTP status codes at the boundary.
// Validation and ownership failures carry structured messages; anything else
// surfaces as a 500 with the raw message.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidSignature), errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}
