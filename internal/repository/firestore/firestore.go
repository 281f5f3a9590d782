// Package firestore implements the storage contract on Google Cloud
// Firestore. It leans on the store's per-document atomicity: merges are
// single Update calls and the email-uniqueness check runs inside a
// transaction, so no client-side locking is needed.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/logger"
	"bloodbridge-backend/internal/repository"
)

const (
	usersCollection     = "users"
	requestsCollection  = "blood_requests"
	inventoryCollection = "inventory"

	initialUnits = 10
)

type Store struct {
	client *firestore.Client
}

// NewStore connects to Firestore and seeds any missing inventory
// documents so the fixed population of 8 records holds from the start.
func NewStore(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	s := &Store{client: client}
	if err := s.seedInventory(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to seed inventory: %w", err)
	}
	return s, nil
}

func (s *Store) seedInventory(ctx context.Context) error {
	now := time.Now().UTC()
	for _, bt := range domain.BloodTypes {
		_, err := s.client.Collection(inventoryCollection).Doc(bt).Create(ctx, inventoryDoc{
			BloodType:      bt,
			UnitsAvailable: initialUnits,
			LastUpdated:    now,
			UpdatedBy:      "system",
		})
		if err != nil && status.Code(err) != codes.AlreadyExists {
			return err
		}
	}
	return nil
}

func (s *Store) HealthCheck(ctx context.Context) error {
	_, err := s.client.Collection(inventoryCollection).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		logger.Error("firestore health check failed", "error", err)
	}
	return err
}

func (s *Store) Close() error {
	return s.client.Close()
}

var _ repository.Store = (*Store)(nil)
