package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/logger"
	"bloodbridge-backend/internal/repository"
)

var (
	errInvalidUrgency  = ValidationError("Urgency must be normal or high")
	errInvalidStatus   = ValidationError("Invalid status")
	errInvalidQuantity = ValidationError("Quantity cannot be negative")
	errNothingToUpdate = ValidationError("No valid fields to update")
)

type requestService struct {
	store repository.Store
}

func NewRequestService(store repository.Store) RequestService {
	return &requestService{store: store}
}

func (s *requestService) Create(ctx context.Context, createdBy string, in CreateRequestInput) (*domain.BloodRequest, error) {
	if in.BloodType == "" || in.Urgency == "" {
		return nil, errMissingFields
	}
	if !domain.IsValidBloodType(in.BloodType) {
		return nil, errInvalidBloodType
	}
	if !domain.IsValidUrgency(in.Urgency) {
		return nil, errInvalidUrgency
	}
	if in.Quantity < 0 {
		return nil, errInvalidQuantity
	}

	req := &domain.BloodRequest{
		RequestID:    uuid.NewString(),
		BloodType:    in.BloodType,
		Quantity:     in.Quantity,
		Urgency:      in.Urgency,
		Status:       domain.RequestStatusOpen,
		CreatedBy:    createdBy,
		Timestamp:    time.Now().UTC(),
		HospitalName: in.HospitalName,
		Location:     in.Location,
		Notes:        in.Notes,
	}
	if err := s.store.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	logger.Info("blood request created", "request_id", req.RequestID, "blood_type", req.BloodType, "urgency", req.Urgency)
	return req, nil
}

func (s *requestService) Get(ctx context.Context, id string) (*domain.BloodRequest, error) {
	return s.store.GetRequestByID(ctx, id)
}

func (s *requestService) List(ctx context.Context, bloodType string, status domain.RequestStatus) ([]domain.BloodRequest, error) {
	var requests []domain.BloodRequest
	var err error
	if bloodType != "" {
		requests, err = s.store.GetRequestsByBloodType(ctx, bloodType, status)
	} else {
		requests, err = s.store.GetAllRequests(ctx, status)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].Timestamp.After(requests[j].Timestamp)
	})
	return requests, nil
}

// Update merges the allow-listed fields {status, notes}. Status
// transitions are not restricted: a fulfilled request may be reopened
// by an explicit status update.
func (s *requestService) Update(ctx context.Context, id string, in UpdateRequestInput) error {
	fields := map[string]any{}
	if in.Status != nil {
		if !domain.IsValidRequestStatus(*in.Status) {
			return errInvalidStatus
		}
		fields["status"] = *in.Status
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	if len(fields) == 0 {
		return errNothingToUpdate
	}
	return s.store.UpdateRequest(ctx, id, fields)
}

// Cancel is idempotent: cancelling an already-cancelled request
// succeeds and leaves the status cancelled.
func (s *requestService) Cancel(ctx context.Context, id string) error {
	if _, err := s.store.GetRequestByID(ctx, id); err != nil {
		return err
	}
	return s.store.UpdateRequest(ctx, id, map[string]any{"status": domain.RequestStatusCancelled})
}
