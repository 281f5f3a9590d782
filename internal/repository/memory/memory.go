// Package memory implements the storage contract on in-process maps.
// It backs local development and tests where no database is running.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/repository"
)

// Store keeps every entity in maps guarded by one mutex per logical
// table, so concurrent requests never observe torn records or lose
// writes. All returned values are copies.
type Store struct {
	usersMu      sync.RWMutex
	users        map[string]domain.User
	usersByEmail map[string]string

	requestsMu sync.RWMutex
	requests   map[string]domain.BloodRequest

	inventoryMu sync.RWMutex
	inventory   map[string]domain.InventoryRecord
}

const initialUnits = 10

func NewStore() *Store {
	s := &Store{
		users:        make(map[string]domain.User),
		usersByEmail: make(map[string]string),
		requests:     make(map[string]domain.BloodRequest),
		inventory:    make(map[string]domain.InventoryRecord, len(domain.BloodTypes)),
	}
	now := time.Now().UTC()
	for _, bt := range domain.BloodTypes {
		s.inventory[bt] = domain.InventoryRecord{
			BloodType:      bt,
			UnitsAvailable: initialUnits,
			LastUpdated:    now,
			UpdatedBy:      "system",
		}
	}
	return s
}

func (s *Store) CreateUser(_ context.Context, user *domain.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if _, exists := s.usersByEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	s.users[user.UserID] = *user
	s.usersByEmail[user.Email] = user.UserID
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	id, ok := s.usersByEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) UpdateUser(_ context.Context, id string, fields map[string]any) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	// Apply onto a copy first so a bad field leaves the record untouched.
	for key, value := range fields {
		if err := applyUserField(&u, key, value); err != nil {
			return err
		}
	}
	s.users[id] = u
	return nil
}

func applyUserField(u *domain.User, key string, value any) error {
	switch key {
	case "name":
		u.Name = value.(string)
	case "phone":
		u.Phone = value.(string)
	case "blood_type":
		u.BloodType = value.(string)
	case "last_donation":
		switch v := value.(type) {
		case nil:
			u.LastDonation = nil
		case time.Time:
			u.LastDonation = &v
		case *time.Time:
			u.LastDonation = v
		default:
			return fmt.Errorf("last_donation: unsupported value type %T", value)
		}
	case "hospital_name":
		u.HospitalName = value.(string)
	case "location":
		u.Location = value.(string)
	default:
		return fmt.Errorf("unsupported user field: %q", key)
	}
	return nil
}

func (s *Store) CreateRequest(_ context.Context, req *domain.BloodRequest) error {
	s.requestsMu.Lock()
	defer s.requestsMu.Unlock()

	s.requests[req.RequestID] = *req
	return nil
}

func (s *Store) GetRequestByID(_ context.Context, id string) (*domain.BloodRequest, error) {
	s.requestsMu.RLock()
	defer s.requestsMu.RUnlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (s *Store) GetRequestsByBloodType(_ context.Context, bloodType string, status domain.RequestStatus) ([]domain.BloodRequest, error) {
	s.requestsMu.RLock()
	defer s.requestsMu.RUnlock()

	results := []domain.BloodRequest{}
	for _, r := range s.requests {
		if r.BloodType != bloodType {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *Store) GetAllRequests(_ context.Context, status domain.RequestStatus) ([]domain.BloodRequest, error) {
	s.requestsMu.RLock()
	defer s.requestsMu.RUnlock()

	results := []domain.BloodRequest{}
	for _, r := range s.requests {
		if status != "" && r.Status != status {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *Store) UpdateRequest(_ context.Context, id string, fields map[string]any) error {
	s.requestsMu.Lock()
	defer s.requestsMu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "status":
			switch v := value.(type) {
			case domain.RequestStatus:
				r.Status = v
			case string:
				r.Status = domain.RequestStatus(v)
			default:
				return fmt.Errorf("status: unsupported value type %T", value)
			}
		case "notes":
			r.Notes = value.(string)
		case "quantity":
			r.Quantity = value.(int)
		default:
			return fmt.Errorf("unsupported request field: %q", key)
		}
	}
	s.requests[id] = r
	return nil
}

func (s *Store) GetInventory(_ context.Context, bloodType string) (*domain.InventoryRecord, error) {
	s.inventoryMu.RLock()
	defer s.inventoryMu.RUnlock()

	rec, ok := s.inventory[bloodType]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (s *Store) ListInventory(_ context.Context) ([]domain.InventoryRecord, error) {
	s.inventoryMu.RLock()
	defer s.inventoryMu.RUnlock()

	records := make([]domain.InventoryRecord, 0, len(domain.BloodTypes))
	for _, bt := range domain.BloodTypes {
		if rec, ok := s.inventory[bt]; ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (s *Store) UpdateInventory(_ context.Context, bloodType string, units int, updatedBy string) error {
	s.inventoryMu.Lock()
	defer s.inventoryMu.Unlock()

	if _, ok := s.inventory[bloodType]; !ok {
		return repository.ErrNotFound
	}
	s.inventory[bloodType] = domain.InventoryRecord{
		BloodType:      bloodType,
		UnitsAvailable: units,
		LastUpdated:    time.Now().UTC(),
		UpdatedBy:      updatedBy,
	}
	return nil
}

func (s *Store) GetLowStockItems(_ context.Context, threshold int) ([]domain.InventoryRecord, error) {
	s.inventoryMu.RLock()
	defer s.inventoryMu.RUnlock()

	items := []domain.InventoryRecord{}
	for _, bt := range domain.BloodTypes {
		if rec, ok := s.inventory[bt]; ok && rec.UnitsAvailable < threshold {
			items = append(items, rec)
		}
	}
	return items, nil
}

func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}

var _ repository.Store = (*Store)(nil)
