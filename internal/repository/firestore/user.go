package firestore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/repository"
)

type userDoc struct {
	UserID       string     `firestore:"user_id"`
	Name         string     `firestore:"name"`
	Email        string     `firestore:"email"`
	PasswordHash string     `firestore:"password_hash"`
	Role         string     `firestore:"role"`
	Phone        string     `firestore:"phone"`
	CreatedAt    time.Time  `firestore:"created_at"`
	BloodType    string     `firestore:"blood_type"`
	LastDonation *time.Time `firestore:"last_donation"`
	HospitalName string     `firestore:"hospital_name"`
	Location     string     `firestore:"location"`
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		UserID:       u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Phone:        u.Phone,
		CreatedAt:    u.CreatedAt,
		BloodType:    u.BloodType,
		LastDonation: u.LastDonation,
		HospitalName: u.HospitalName,
		Location:     u.Location,
	}
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		UserID:       d.UserID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		Phone:        d.Phone,
		CreatedAt:    d.CreatedAt,
		BloodType:    d.BloodType,
		LastDonation: d.LastDonation,
		HospitalName: d.HospitalName,
		Location:     d.Location,
	}
}

// CreateUser runs the email-uniqueness check and the write in one
// transaction so concurrent registrations with the same email admit
// at most one winner.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	users := s.client.Collection(usersCollection)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(users.Where("email", "==", user.Email).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return repository.ErrDuplicateEmail
		}
		return tx.Create(users.Doc(user.UserID), toUserDoc(user))
	})
	return err
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	snap, err := s.client.Collection(usersCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var d userDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	return d.toDomain(), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	iter := s.client.Collection(usersCollection).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var d userDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	return d.toDomain(), nil
}

// UpdateUser expresses the merge as a single Update call; Firestore
// applies the field set atomically on the server.
func (s *Store) UpdateUser(ctx context.Context, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for key, value := range fields {
		updates = append(updates, firestore.Update{Path: key, Value: value})
	}
	_, err := s.client.Collection(usersCollection).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return repository.ErrNotFound
	}
	return err
}
