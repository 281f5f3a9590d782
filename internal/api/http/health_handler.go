package http

import (
	"net/http"

	"bloodbridge-backend/internal/repository"
)

type HealthHandler struct {
	store repository.Store
}

func NewHealthHandler(store repository.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health reflects the storage backend's liveness: 200 when the probe
// passes, 503 otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.HealthCheck(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "unhealthy",
			"service":  "BloodBridge API",
			"database": "disconnected",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"service":  "BloodBridge API",
		"database": "connected",
	})
}

func (h *HealthHandler) Index(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "BloodBridge API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"auth":      "/api/auth",
			"requests":  "/api/requests",
			"inventory": "/api/inventory",
			"donor":     "/api/donor",
		},
	})
}
