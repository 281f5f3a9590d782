package service

import (
	"context"
	"time"

	"bloodbridge-backend/internal/domain"
)

// ValidationError marks input the caller can correct. The HTTP layer
// maps it to a 400 response carrying the message verbatim.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Role         domain.Role
	Phone        string
	BloodType    string
	LastDonation *time.Time
	HospitalName string
	Location     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// EligibilityResult reports whether a donor may donate now and, if
// not, how long until they can.
type EligibilityResult struct {
	Eligible          bool       `json:"eligible"`
	LastDonation      *time.Time `json:"last_donation"`
	NextEligibleDate  *time.Time `json:"next_eligible_date"`
	DaysUntilEligible int        `json:"days_until_eligible"`
	Message           string     `json:"message"`
}

type DonorService interface {
	CheckEligibility(ctx context.Context, userID string) (*EligibilityResult, error)
	// MatchingRequests returns open requests for the donor's blood type,
	// most urgent first, newest first within the same urgency.
	MatchingRequests(ctx context.Context, userID string) (string, []domain.BloodRequest, error)
	ScheduleDonation(ctx context.Context, userID, requestID string, scheduledDate *time.Time) (time.Time, error)
	// UpdateLastDonation updates targetID's last donation date. Only
	// managers may update a user other than themselves.
	UpdateLastDonation(ctx context.Context, actorID string, actorRole domain.Role, targetID string, lastDonation time.Time) error
}

// InventoryItem is an inventory record annotated with the derived
// stock health fields.
type InventoryItem struct {
	domain.InventoryRecord
	StockStatus string `json:"stock_status"`
	IsLowStock  bool   `json:"is_low_stock"`
}

// LowStockItem is a below-threshold record annotated with severity.
type LowStockItem struct {
	domain.InventoryRecord
	Severity string `json:"severity"`
}

type InventoryService interface {
	List(ctx context.Context) ([]InventoryItem, error)
	Get(ctx context.Context, bloodType string) (*InventoryItem, error)
	Update(ctx context.Context, bloodType string, units int, updatedBy string) error
	// LowStock uses the configured low-stock threshold when threshold <= 0.
	LowStock(ctx context.Context, threshold int) ([]LowStockItem, error)
}

type CreateRequestInput struct {
	BloodType    string
	Quantity     int
	Urgency      domain.Urgency
	HospitalName string
	Location     string
	Notes        string
}

type UpdateRequestInput struct {
	Status *domain.RequestStatus
	Notes  *string
}

type RequestService interface {
	Create(ctx context.Context, createdBy string, in CreateRequestInput) (*domain.BloodRequest, error)
	Get(ctx context.Context, id string) (*domain.BloodRequest, error)
	// List filters by blood type and/or status when given; results are
	// newest first.
	List(ctx context.Context, bloodType string, status domain.RequestStatus) ([]domain.BloodRequest, error)
	Update(ctx context.Context, id string, in UpdateRequestInput) error
	// Cancel soft-deletes: the record stays, its status becomes cancelled.
	Cancel(ctx context.Context, id string) error
}
