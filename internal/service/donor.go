package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/repository"
)

// ErrNotPermitted is returned when a non-manager tries to act on
// another user's record.
var ErrNotPermitted = errors.New("insufficient permissions")

var (
	errRequestClosed     = ValidationError("Request is no longer open")
	errBloodTypeMismatch = ValidationError("Blood type mismatch")
	errNoBloodType       = ValidationError("Blood type not set")
)

type donorService struct {
	store        repository.Store
	intervalDays int
}

func NewDonorService(store repository.Store, donationIntervalDays int) DonorService {
	return &donorService{store: store, intervalDays: donationIntervalDays}
}

func (s *donorService) CheckEligibility(ctx context.Context, userID string) (*EligibilityResult, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.LastDonation == nil {
		return &EligibilityResult{
			Eligible: true,
			Message:  "You are eligible to donate!",
		}, nil
	}

	nextEligible := user.LastDonation.Add(time.Duration(s.intervalDays) * 24 * time.Hour)
	now := time.Now().UTC()
	if !now.Before(nextEligible) {
		return &EligibilityResult{
			Eligible:         true,
			LastDonation:     user.LastDonation,
			NextEligibleDate: &nextEligible,
			Message:          "You are eligible to donate!",
		}, nil
	}

	days := int(math.Ceil(nextEligible.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}
	return &EligibilityResult{
		Eligible:          false,
		LastDonation:      user.LastDonation,
		NextEligibleDate:  &nextEligible,
		DaysUntilEligible: days,
		Message:           fmt.Sprintf("You can donate again in %d days", days),
	}, nil
}

func (s *donorService) MatchingRequests(ctx context.Context, userID string) (string, []domain.BloodRequest, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	if user.BloodType == "" {
		return "", nil, errNoBloodType
	}

	requests, err := s.store.GetRequestsByBloodType(ctx, user.BloodType, domain.RequestStatusOpen)
	if err != nil {
		return "", nil, err
	}

	// High urgency first; newest first within the same urgency.
	sort.SliceStable(requests, func(i, j int) bool {
		if requests[i].Urgency != requests[j].Urgency {
			return requests[i].Urgency == domain.UrgencyHigh
		}
		return requests[i].Timestamp.After(requests[j].Timestamp)
	})
	return user.BloodType, requests, nil
}

func (s *donorService) ScheduleDonation(ctx context.Context, userID, requestID string, scheduledDate *time.Time) (time.Time, error) {
	req, err := s.store.GetRequestByID(ctx, requestID)
	if err != nil {
		return time.Time{}, err
	}
	if req.Status != domain.RequestStatusOpen {
		return time.Time{}, errRequestClosed
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return time.Time{}, err
	}
	if user.BloodType != req.BloodType {
		return time.Time{}, errBloodTypeMismatch
	}

	if scheduledDate != nil {
		return *scheduledDate, nil
	}
	return time.Now().UTC(), nil
}

func (s *donorService) UpdateLastDonation(ctx context.Context, actorID string, actorRole domain.Role, targetID string, lastDonation time.Time) error {
	if targetID == "" {
		targetID = actorID
	}
	if targetID != actorID && actorRole != domain.RoleManager {
		return ErrNotPermitted
	}
	return s.store.UpdateUser(ctx, targetID, map[string]any{"last_donation": lastDonation})
}
