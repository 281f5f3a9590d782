package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/repository"
)

// MockStore is a testify mock over the storage contract.
type MockStore struct {
	mock.Mock
}

var _ repository.Store = (*MockStore)(nil)

func (m *MockStore) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockStore) UpdateUser(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockStore) CreateRequest(ctx context.Context, req *domain.BloodRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockStore) GetRequestByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BloodRequest), args.Error(1)
}

func (m *MockStore) GetRequestsByBloodType(ctx context.Context, bloodType string, status domain.RequestStatus) ([]domain.BloodRequest, error) {
	args := m.Called(ctx, bloodType, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BloodRequest), args.Error(1)
}

func (m *MockStore) GetAllRequests(ctx context.Context, status domain.RequestStatus) ([]domain.BloodRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BloodRequest), args.Error(1)
}

func (m *MockStore) UpdateRequest(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockStore) GetInventory(ctx context.Context, bloodType string) (*domain.InventoryRecord, error) {
	args := m.Called(ctx, bloodType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryRecord), args.Error(1)
}

func (m *MockStore) ListInventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryRecord), args.Error(1)
}

func (m *MockStore) UpdateInventory(ctx context.Context, bloodType string, units int, updatedBy string) error {
	args := m.Called(ctx, bloodType, units, updatedBy)
	return args.Error(0)
}

func (m *MockStore) GetLowStockItems(ctx context.Context, threshold int) ([]domain.InventoryRecord, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryRecord), args.Error(1)
}

func (m *MockStore) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
