package service

import (
	"context"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/logger"
	"bloodbridge-backend/internal/repository"
)

// Stock health labels derived from the configured thresholds.
const (
	StockStatusCritical = "critical"
	StockStatusLow      = "low"
	StockStatusGood     = "good"
)

var (
	errInvalidBloodType = ValidationError("Invalid blood type")
	errNegativeUnits    = ValidationError("Units cannot be negative")
)

type inventoryService struct {
	store             repository.Store
	lowThreshold      int
	criticalThreshold int
}

func NewInventoryService(store repository.Store, lowThreshold, criticalThreshold int) InventoryService {
	return &inventoryService{
		store:             store,
		lowThreshold:      lowThreshold,
		criticalThreshold: criticalThreshold,
	}
}

func (s *inventoryService) annotate(rec domain.InventoryRecord) InventoryItem {
	item := InventoryItem{InventoryRecord: rec}
	switch {
	case rec.UnitsAvailable < s.criticalThreshold:
		item.StockStatus = StockStatusCritical
	case rec.UnitsAvailable < s.lowThreshold:
		item.StockStatus = StockStatusLow
	default:
		item.StockStatus = StockStatusGood
	}
	item.IsLowStock = rec.UnitsAvailable < s.lowThreshold
	return item
}

func (s *inventoryService) List(ctx context.Context) ([]InventoryItem, error) {
	records, err := s.store.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]InventoryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, s.annotate(rec))
	}
	return items, nil
}

func (s *inventoryService) Get(ctx context.Context, bloodType string) (*InventoryItem, error) {
	rec, err := s.store.GetInventory(ctx, bloodType)
	if err != nil {
		return nil, err
	}
	item := s.annotate(*rec)
	return &item, nil
}

func (s *inventoryService) Update(ctx context.Context, bloodType string, units int, updatedBy string) error {
	if !domain.IsValidBloodType(bloodType) {
		return errInvalidBloodType
	}
	if units < 0 {
		return errNegativeUnits
	}
	if err := s.store.UpdateInventory(ctx, bloodType, units, updatedBy); err != nil {
		return err
	}
	logger.Info("inventory updated", "blood_type", bloodType, "units", units, "updated_by", updatedBy)
	return nil
}

func (s *inventoryService) LowStock(ctx context.Context, threshold int) ([]LowStockItem, error) {
	if threshold <= 0 {
		threshold = s.lowThreshold
	}
	records, err := s.store.GetLowStockItems(ctx, threshold)
	if err != nil {
		return nil, err
	}
	items := make([]LowStockItem, 0, len(records))
	for _, rec := range records {
		severity := StockStatusLow
		if rec.UnitsAvailable < s.criticalThreshold {
			severity = StockStatusCritical
		}
		items = append(items, LowStockItem{InventoryRecord: rec, Severity: severity})
	}
	return items, nil
}
