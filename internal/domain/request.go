package domain

import "time"

type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
)

func IsValidUrgency(u Urgency) bool {
	return u == UrgencyNormal || u == UrgencyHigh
}

type RequestStatus string

const (
	RequestStatusOpen      RequestStatus = "open"
	RequestStatusFulfilled RequestStatus = "fulfilled"
	RequestStatusCancelled RequestStatus = "cancelled"
)

func IsValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusOpen, RequestStatusFulfilled, RequestStatusCancelled:
		return true
	}
	return false
}

// BloodRequest is a hospital's standing request for units of a given
// blood type. Deleting a request never removes the record; it only
// moves the status to cancelled.
type BloodRequest struct {
	RequestID     string        `json:"request_id"`
	BloodType     string        `json:"blood_type"`
	Quantity      int           `json:"quantity"`
	Urgency       Urgency       `json:"urgency"`
	Status        RequestStatus `json:"status"`
	CreatedBy     string        `json:"created_by"`
	CreatedByName string        `json:"created_by_name,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
	HospitalName  string        `json:"hospital_name,omitempty"`
	Location      string        `json:"location,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}
