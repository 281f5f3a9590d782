package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/service"
)

type RequestHandler struct {
	requests service.RequestService
}

func NewRequestHandler(requests service.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

type createRequestBody struct {
	BloodType    string `json:"blood_type"`
	Quantity     int    `json:"quantity"`
	Urgency      string `json:"urgency"`
	HospitalName string `json:"hospital_name"`
	Location     string `json:"location"`
	Notes        string `json:"notes"`
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var body createRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	req, err := h.requests.Create(r.Context(), claims.UserID, service.CreateRequestInput{
		BloodType:    body.BloodType,
		Quantity:     body.Quantity,
		Urgency:      domain.Urgency(body.Urgency),
		HospitalName: body.HospitalName,
		Location:     body.Location,
		Notes:        body.Notes,
	})
	if err != nil {
		respondServiceError(w, err, "Request not found")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message":    "Request created successfully",
		"request_id": req.RequestID,
	})
}

func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.RequestStatus(r.URL.Query().Get("status"))
	bloodType := r.URL.Query().Get("blood_type")

	requests, err := h.requests.List(r.Context(), bloodType, status)
	if err != nil {
		respondServiceError(w, err, "Request not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.requests.Get(r.Context(), mux.Vars(r)["requestID"])
	if err != nil {
		respondServiceError(w, err, "Request not found")
		return
	}
	respondJSON(w, http.StatusOK, req)
}

type updateRequestBody struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

func (h *RequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body updateRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	in := service.UpdateRequestInput{Notes: body.Notes}
	if body.Status != nil {
		status := domain.RequestStatus(*body.Status)
		in.Status = &status
	}

	if err := h.requests.Update(r.Context(), mux.Vars(r)["requestID"], in); err != nil {
		respondServiceError(w, err, "Request not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Request updated successfully",
	})
}

func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.requests.Cancel(r.Context(), mux.Vars(r)["requestID"]); err != nil {
		respondServiceError(w, err, "Request not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Request cancelled successfully",
	})
}
