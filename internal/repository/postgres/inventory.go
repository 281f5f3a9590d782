package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/logger"
	"bloodbridge-backend/internal/repository"
)

func (s *Store) GetInventory(ctx context.Context, bloodType string) (*domain.InventoryRecord, error) {
	query := `SELECT blood_type, units_available, last_updated, updated_by FROM inventory WHERE blood_type = $1`
	rec := &domain.InventoryRecord{}
	err := s.db.QueryRowContext(ctx, query, bloodType).
		Scan(&rec.BloodType, &rec.UnitsAvailable, &rec.LastUpdated, &rec.UpdatedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) ListInventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	query := `SELECT blood_type, units_available, last_updated, updated_by FROM inventory`
	records, err := s.queryInventory(ctx, query)
	if err != nil {
		return nil, err
	}
	// Canonical blood-type order, not the engine's collation order.
	sort.Slice(records, func(i, j int) bool {
		return domain.BloodTypeRank(records[i].BloodType) < domain.BloodTypeRank(records[j].BloodType)
	})
	return records, nil
}

func (s *Store) UpdateInventory(ctx context.Context, bloodType string, units int, updatedBy string) error {
	query := `UPDATE inventory SET units_available = $1, last_updated = CURRENT_TIMESTAMP, updated_by = $2 WHERE blood_type = $3`
	res, err := s.db.ExecContext(ctx, query, units, updatedBy, bloodType)
	if err != nil {
		logger.Error("failed to update inventory", "error", err, "blood_type", bloodType)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) GetLowStockItems(ctx context.Context, threshold int) ([]domain.InventoryRecord, error) {
	query := `SELECT blood_type, units_available, last_updated, updated_by FROM inventory WHERE units_available < $1 ORDER BY units_available ASC`
	return s.queryInventory(ctx, query, threshold)
}

func (s *Store) queryInventory(ctx context.Context, query string, args ...any) ([]domain.InventoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("failed to query inventory", "error", err)
		return nil, err
	}
	defer rows.Close()

	records := []domain.InventoryRecord{}
	for rows.Next() {
		var rec domain.InventoryRecord
		if err := rows.Scan(&rec.BloodType, &rec.UnitsAvailable, &rec.LastUpdated, &rec.UpdatedBy); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
