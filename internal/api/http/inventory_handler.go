package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"bloodbridge-backend/internal/service"
)

type InventoryHandler struct {
	inventory service.InventoryService
}

func NewInventoryHandler(inventory service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.List(r.Context())
	if err != nil {
		respondServiceError(w, err, "Inventory not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"inventory": items})
}

func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	bloodType := mux.Vars(r)["bloodType"]

	item, err := h.inventory.Get(r.Context(), bloodType)
	if err != nil {
		respondServiceError(w, err, "Blood type not found")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

type updateInventoryRequest struct {
	BloodType      string `json:"blood_type"`
	UnitsAvailable *int   `json:"units_available"`
}

func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var body updateInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if body.BloodType == "" || body.UnitsAvailable == nil {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := h.inventory.Update(r.Context(), body.BloodType, *body.UnitsAvailable, claims.UserID); err != nil {
		respondServiceError(w, err, "Blood type not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Inventory updated successfully",
	})
}

func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := 0
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid threshold value")
			return
		}
		threshold = parsed
	}

	items, err := h.inventory.LowStock(r.Context(), threshold)
	if err != nil {
		respondServiceError(w, err, "Inventory not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"low_stock_items": items})
}
