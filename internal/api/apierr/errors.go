package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/highwayhustle/backend/internal/model"
)

// ErrorResponse is the wire shape for failed requests. The game
// client only inspects success and the error string.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// httpError combines an HTTP status code with a client-facing message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.message})
}

// toHTTPError converts an error to an httpError. Unrecognized errors
// collapse to a generic 500 so internal details never reach clients.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrMissingIdentifier):
		return &httpError{http.StatusBadRequest, "Missing identifier information (wallet/email/discord)"}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, "Player not found"}
	default:
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewInvalidRequestError creates a 400 error with a client-facing
// message
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewNotFoundError creates a 404 error with a client-facing message
func NewNotFoundError(message string) error {
	return &httpError{http.StatusNotFound, message}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
