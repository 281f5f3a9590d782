package http

import (
	"encoding/json"
	"net/http"
	"time"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/service"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	Phone        string `json:"phone"`
	BloodType    string `json:"blood_type"`
	LastDonation string `json:"last_donation"`
	HospitalName string `json:"hospital_name"`
	Location     string `json:"location"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	var lastDonation *time.Time
	if body.LastDonation != "" {
		t, err := parseTime(body.LastDonation)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid last_donation date")
			return
		}
		lastDonation = &t
	}

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Name:         body.Name,
		Email:        body.Email,
		Password:     body.Password,
		Role:         domain.Role(body.Role),
		Phone:        body.Phone,
		BloodType:    body.BloodType,
		LastDonation: lastDonation,
		HospitalName: body.HospitalName,
		Location:     body.Location,
	})
	if err != nil {
		respondServiceError(w, err, "User not found")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
		"user_id": user.UserID,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	token, user, err := h.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		respondServiceError(w, err, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// parseTime accepts RFC 3339 timestamps or bare dates.
func parseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
