package firestore

import (
	"context"
	"sort"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/repository"
)

type inventoryDoc struct {
	BloodType      string    `firestore:"blood_type"`
	UnitsAvailable int       `firestore:"units_available"`
	LastUpdated    time.Time `firestore:"last_updated"`
	UpdatedBy      string    `firestore:"updated_by"`
}

func (d inventoryDoc) toDomain() domain.InventoryRecord {
	return domain.InventoryRecord{
		BloodType:      d.BloodType,
		UnitsAvailable: d.UnitsAvailable,
		LastUpdated:    d.LastUpdated,
		UpdatedBy:      d.UpdatedBy,
	}
}

func (s *Store) GetInventory(ctx context.Context, bloodType string) (*domain.InventoryRecord, error) {
	snap, err := s.client.Collection(inventoryCollection).Doc(bloodType).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var d inventoryDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	rec := d.toDomain()
	return &rec, nil
}

func (s *Store) ListInventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	snaps, err := s.client.Collection(inventoryCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	records := make([]domain.InventoryRecord, 0, len(snaps))
	for _, snap := range snaps {
		var d inventoryDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		records = append(records, d.toDomain())
	}
	sort.Slice(records, func(i, j int) bool {
		return domain.BloodTypeRank(records[i].BloodType) < domain.BloodTypeRank(records[j].BloodType)
	})
	return records, nil
}

// UpdateInventory replaces the document wholesale, mirroring the
// full-record overwrite the contract promises.
func (s *Store) UpdateInventory(ctx context.Context, bloodType string, units int, updatedBy string) error {
	if !domain.IsValidBloodType(bloodType) {
		return repository.ErrNotFound
	}
	_, err := s.client.Collection(inventoryCollection).Doc(bloodType).Set(ctx, inventoryDoc{
		BloodType:      bloodType,
		UnitsAvailable: units,
		LastUpdated:    time.Now().UTC(),
		UpdatedBy:      updatedBy,
	})
	return err
}

func (s *Store) GetLowStockItems(ctx context.Context, threshold int) ([]domain.InventoryRecord, error) {
	snaps, err := s.client.Collection(inventoryCollection).
		Where("units_available", "<", threshold).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	items := make([]domain.InventoryRecord, 0, len(snaps))
	for _, snap := range snaps {
		var d inventoryDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		items = append(items, d.toDomain())
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].UnitsAvailable < items[j].UnitsAvailable
	})
	return items, nil
}
