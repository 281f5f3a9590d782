package domain

import "time"

// InventoryRecord tracks the available units for one blood type. The
// population is fixed at one record per blood type; records are seeded
// at initialization and never created or deleted afterwards.
type InventoryRecord struct {
	BloodType      string    `json:"blood_type"`
	UnitsAvailable int       `json:"units_available"`
	LastUpdated    time.Time `json:"last_updated"`
	UpdatedBy      string    `json:"updated_by"`
}
