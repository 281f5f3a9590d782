package repository

import (
	"context"
	"errors"

	"bloodbridge-backend/internal/domain"
)

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned by CreateUser when the email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store is the uniform data-access contract. Domain operations are
// written once against this interface; the backing engine (in-memory,
// PostgreSQL or Firestore) is chosen once at startup. Every backend
// must satisfy the same observable semantics:
//
//   - CreateUser is atomic with respect to the email-uniqueness check:
//     under concurrent callers at most one create per email succeeds.
//   - Update* merge the given fields into the existing record as a
//     single application; a failed update never leaves an entity
//     half-written.
//   - List operations return empty slices, not nil errors, when no
//     rows match. Absent single entities return ErrNotFound.
type Store interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, fields map[string]any) error

	CreateRequest(ctx context.Context, req *domain.BloodRequest) error
	GetRequestByID(ctx context.Context, id string) (*domain.BloodRequest, error)
	// GetRequestsByBloodType filters by exact blood-type match and, when
	// status is non-empty, exact status match.
	GetRequestsByBloodType(ctx context.Context, bloodType string, status domain.RequestStatus) ([]domain.BloodRequest, error)
	GetAllRequests(ctx context.Context, status domain.RequestStatus) ([]domain.BloodRequest, error)
	UpdateRequest(ctx context.Context, id string, fields map[string]any) error

	GetInventory(ctx context.Context, bloodType string) (*domain.InventoryRecord, error)
	// ListInventory returns one record per blood type in canonical order.
	ListInventory(ctx context.Context) ([]domain.InventoryRecord, error)
	// UpdateInventory replaces the record wholesale: units, timestamp
	// and updated_by are all overwritten.
	UpdateInventory(ctx context.Context, bloodType string, units int, updatedBy string) error
	GetLowStockItems(ctx context.Context, threshold int) ([]domain.InventoryRecord, error)

	// HealthCheck probes the backing store. It returns nil when the
	// store is reachable and an error otherwise; it never panics.
	HealthCheck(ctx context.Context) error
	Close() error
}
