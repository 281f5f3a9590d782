package http

import (
	"encoding/json"
	"net/http"
	"time"

	"bloodbridge-backend/internal/service"
)

type DonorHandler struct {
	donor service.DonorService
}

func NewDonorHandler(donor service.DonorService) *DonorHandler {
	return &DonorHandler{donor: donor}
}

func (h *DonorHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	result, err := h.donor.CheckEligibility(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, err, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

type scheduleRequest struct {
	RequestID     string `json:"request_id"`
	ScheduledDate string `json:"scheduled_date"`
}

func (h *DonorHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var body scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if body.RequestID == "" {
		respondError(w, http.StatusBadRequest, "Request ID required")
		return
	}

	var scheduledDate *time.Time
	if body.ScheduledDate != "" {
		t, err := parseTime(body.ScheduledDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid scheduled_date")
			return
		}
		scheduledDate = &t
	}

	scheduled, err := h.donor.ScheduleDonation(r.Context(), claims.UserID, body.RequestID, scheduledDate)
	if err != nil {
		respondServiceError(w, err, "Request not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":        "Donation scheduled successfully",
		"request_id":     body.RequestID,
		"scheduled_date": scheduled,
	})
}

func (h *DonorHandler) MatchingRequests(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	bloodType, requests, err := h.donor.MatchingRequests(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, err, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"blood_type":        bloodType,
		"matching_requests": requests,
		"count":             len(requests),
	})
}

type updateLastDonationRequest struct {
	UserID       string `json:"user_id"`
	LastDonation string `json:"last_donation"`
}

func (h *DonorHandler) UpdateLastDonation(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var body updateLastDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if body.LastDonation == "" {
		respondError(w, http.StatusBadRequest, "Last donation date required")
		return
	}
	lastDonation, err := parseTime(body.LastDonation)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid last_donation date")
		return
	}

	if err := h.donor.UpdateLastDonation(r.Context(), claims.UserID, claims.Role, body.UserID, lastDonation); err != nil {
		respondServiceError(w, err, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Last donation date updated successfully",
	})
}
