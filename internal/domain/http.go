package domain

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// StatusOf maps the error taxonomy onto HTTP codes.
func StatusOf(err error) int {
	var (
		ve *ValidationError
		ce *CollaboratorError
		se *StorageError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnavailable):
		return http.StatusBadRequest
	case errors.As(err, &ce):
		return http.StatusBadGateway
	case errors.As(err, &se):
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusOf(err), map[string]any{"error": err.Error()})
}
