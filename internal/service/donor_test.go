package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/repository"
	"bloodbridge-backend/internal/service"
)

const donationInterval = 90

func donorWithLastDonation(last *time.Time) *domain.User {
	return &domain.User{
		UserID:       "u1",
		Role:         domain.RoleDonor,
		BloodType:    "O-",
		LastDonation: last,
	}
}

func TestCheckEligibility_NeverDonated(t *testing.T) {
	store := new(MockStore)
	store.On("GetUserByID", mock.Anything, "u1").Return(donorWithLastDonation(nil), nil)

	svc := service.NewDonorService(store, donationInterval)
	result, err := svc.CheckEligibility(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, result.Eligible)
	assert.Nil(t, result.LastDonation)
	assert.Equal(t, "You are eligible to donate!", result.Message)
}

func TestCheckEligibility_PastInterval(t *testing.T) {
	last := time.Now().UTC().AddDate(0, 0, -91)
	store := new(MockStore)
	store.On("GetUserByID", mock.Anything, "u1").Return(donorWithLastDonation(&last), nil)

	svc := service.NewDonorService(store, donationInterval)
	result, err := svc.CheckEligibility(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, result.Eligible)
	require.NotNil(t, result.NextEligibleDate)
	assert.Equal(t, 0, result.DaysUntilEligible)
}

func TestCheckEligibility_WithinInterval(t *testing.T) {
	last := time.Now().UTC().AddDate(0, 0, -10)
	store := new(MockStore)
	store.On("GetUserByID", mock.Anything, "u1").Return(donorWithLastDonation(&last), nil)

	svc := service.NewDonorService(store, donationInterval)
	result, err := svc.CheckEligibility(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, 80, result.DaysUntilEligible)
	assert.Equal(t, "You can donate again in 80 days", result.Message)
}

func TestCheckEligibility_UserNotFound(t *testing.T) {
	store := new(MockStore)
	store.On("GetUserByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	svc := service.NewDonorService(store, donationInterval)
	_, err := svc.CheckEligibility(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMatchingRequests_SortedByUrgencyThenRecency(t *testing.T) {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	store := new(MockStore)
	store.On("GetUserByID", mock.Anything, "u1").Return(donorWithLastDonation(nil), nil)
	store.On("GetRequestsByBloodType", mock.Anything, "O-", domain.RequestStatusOpen).Return([]domain.BloodRequest{
		{RequestID: "old-normal", Urgency: domain.UrgencyNormal, Timestamp: base},
		{RequestID: "old-high", Urgency: domain.UrgencyHigh, Timestamp: base.Add(time.Hour)},
		{RequestID: "new-normal", Urgency: domain.UrgencyNormal, Timestamp: base.Add(3 * time.Hour)},
		{RequestID: "new-high", Urgency: domain.UrgencyHigh, Timestamp: base.Add(2 * time.Hour)},
	}, nil)

	svc := service.NewDonorService(store, donationInterval)
	bloodType, requests, err := svc.MatchingRequests(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "O-", bloodType)

	ids := make([]string, len(requests))
	for i, r := range requests {
		ids[i] = r.RequestID
	}
	assert.Equal(t, []string{"new-high", "old-high", "new-normal", "old-normal"}, ids)
}

func TestMatchingRequests_NoBloodType(t *testing.T) {
	store := new(MockStore)
	store.On("GetUserByID", mock.Anything, "m1").Return(&domain.User{
		UserID: "m1",
		Role:   domain.RoleManager,
	}, nil)

	svc := service.NewDonorService(store, donationInterval)
	_, _, err := svc.MatchingRequests(context.Background(), "m1")

	var verr service.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestScheduleDonation(t *testing.T) {
	store := new(MockStore)
	store.On("GetRequestByID", mock.Anything, "r1").Return(&domain.BloodRequest{
		RequestID: "r1",
		BloodType: "O-",
		Status:    domain.RequestStatusOpen,
	}, nil)
	store.On("GetUserByID", mock.Anything, "u1").Return(donorWithLastDonation(nil), nil)

	svc := service.NewDonorService(store, donationInterval)

	when := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	scheduled, err := svc.ScheduleDonation(context.Background(), "u1", "r1", &when)
	require.NoError(t, err)
	assert.True(t, scheduled.Equal(when))

	// No date given: defaults to now.
	scheduled, err = svc.ScheduleDonation(context.Background(), "u1", "r1", nil)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), scheduled, 5*time.Second)
}

func TestScheduleDonation_RequestClosed(t *testing.T) {
	store := new(MockStore)
	store.On("GetRequestByID", mock.Anything, "r1").Return(&domain.BloodRequest{
		RequestID: "r1",
		BloodType: "O-",
		Status:    domain.RequestStatusCancelled,
	}, nil)

	svc := service.NewDonorService(store, donationInterval)
	_, err := svc.ScheduleDonation(context.Background(), "u1", "r1", nil)

	var verr service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Request is no longer open", verr.Error())
}

func TestScheduleDonation_BloodTypeMismatch(t *testing.T) {
	store := new(MockStore)
	store.On("GetRequestByID", mock.Anything, "r1").Return(&domain.BloodRequest{
		RequestID: "r1",
		BloodType: "A+",
		Status:    domain.RequestStatusOpen,
	}, nil)
	store.On("GetUserByID", mock.Anything, "u1").Return(donorWithLastDonation(nil), nil)

	svc := service.NewDonorService(store, donationInterval)
	_, err := svc.ScheduleDonation(context.Background(), "u1", "r1", nil)

	var verr service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Blood type mismatch", verr.Error())
}

func TestUpdateLastDonation_SelfDefault(t *testing.T) {
	donated := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	store := new(MockStore)
	store.On("UpdateUser", mock.Anything, "u1", map[string]any{"last_donation": donated}).Return(nil)

	svc := service.NewDonorService(store, donationInterval)
	err := svc.UpdateLastDonation(context.Background(), "u1", domain.RoleDonor, "", donated)
	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUpdateLastDonation_CrossUser(t *testing.T) {
	donated := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	store := new(MockStore)
	store.On("UpdateUser", mock.Anything, "u2", map[string]any{"last_donation": donated}).Return(nil)

	svc := service.NewDonorService(store, donationInterval)

	// A donor may not touch another user's record.
	err := svc.UpdateLastDonation(context.Background(), "u1", domain.RoleDonor, "u2", donated)
	assert.ErrorIs(t, err, service.ErrNotPermitted)

	// A manager may.
	err = svc.UpdateLastDonation(context.Background(), "m1", domain.RoleManager, "u2", donated)
	assert.NoError(t, err)
	store.AssertExpectations(t)
}
