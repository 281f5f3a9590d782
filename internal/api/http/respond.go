package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"bloodbridge-backend/internal/logger"
	"bloodbridge-backend/internal/repository"
	"bloodbridge-backend/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// respondError writes the uniform {"error": <message>} body.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service/repository failures onto HTTP
// status codes. notFoundMsg lets each endpoint keep its own wording
// for a missing entity. Anything unrecognized becomes an opaque 500;
// internals are never exposed to the client.
func respondServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	var ve service.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrNotPermitted):
		respondError(w, http.StatusForbidden, "Insufficient permissions")
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, repository.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, "User with this email already exists")
	default:
		logger.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
