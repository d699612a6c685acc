// backend-go/internal/domain/inventory.go
package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Location is the storage location of an inventory item.
type Location string

const (
	LocationPantry  Location = "pantry"
	LocationFridge  Location = "fridge"
	LocationFreezer Location = "freezer"
	LocationOther   Location = "other"
)

var locations = map[string]Location{
	"pantry":  LocationPantry,
	"fridge":  LocationFridge,
	"freezer": LocationFreezer,
	"other":   LocationOther,
}

// ParseLocation returns the Location for a given label (case-insensitive).
func ParseLocation(label string) (Location, bool) {
	loc, ok := locations[strings.ToLower(strings.TrimSpace(label))]

	return loc, ok
}

// ExpirationStatus classifies how close an item is to its expiration date.
type ExpirationStatus string

const (
	ExpirationUnknown  ExpirationStatus = "unknown"
	ExpirationExpired  ExpirationStatus = "expired"
	ExpirationCritical ExpirationStatus = "critical"
	ExpirationWarning  ExpirationStatus = "warning"
	ExpirationGood     ExpirationStatus = "good"
)

// InventoryItem represents a pantry/fridge/freezer row owned by a user.
type InventoryItem struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	IngredientID   *uuid.UUID `json:"ingredient_id,omitempty" db:"ingredient_id"`
	IngredientName string     `json:"ingredient_name" db:"ingredient_name"`
	Quantity       float64    `json:"quantity" db:"quantity"`
	Unit           string     `json:"unit,omitempty" db:"unit"`
	Location       Location   `json:"location" db:"location"`
	ExpiresAt      *time.Time `json:"expires_at" db:"expires_at"`
	MinQuantity    *float64   `json:"min_quantity" db:"min_quantity"`
	Notes          string     `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`

	// Derived on read, never stored.
	ExpirationStatus    ExpirationStatus `json:"expiration_status" db:"-"`
	DaysUntilExpiration *int             `json:"days_until_expiration" db:"-"`
	IsLowStock          bool             `json:"is_low_stock" db:"-"`
}

// Classify fills the derived fields of the item as of today.
func (i *InventoryItem) Classify(today time.Time) {
	i.ExpirationStatus, i.DaysUntilExpiration = ClassifyExpiration(i.ExpiresAt, today)
	i.IsLowStock = IsLowStock(i.Quantity, i.MinQuantity)
}

// ClassifyExpiration maps a nullable expiration date to a status bucket plus
// the number of whole days until expiration. Both endpoints are truncated to
// midnight so the time of day never skews the bucket. A nil date yields
// (ExpirationUnknown, nil).
func ClassifyExpiration(expiresAt *time.Time, today time.Time) (ExpirationStatus, *int) {
	if expiresAt == nil {
		return ExpirationUnknown, nil
	}

	days := int(math.Ceil(midnight(*expiresAt).Sub(midnight(today)).Hours() / 24))

	status := ExpirationGood
	switch {
	case days < 0:
		status = ExpirationExpired
	case days <= 2:
		status = ExpirationCritical
	case days <= 7:
		status = ExpirationWarning
	}

	return status, &days
}

// IsLowStock reports whether quantity has fallen to or below the configured
// minimum. Items without a minimum are never low stock.
func IsLowStock(quantity float64, minQuantity *float64) bool {
	return minQuantity != nil && quantity <= *minQuantity
}

// InventorySummary aggregates classified inventory items for dashboards.
// ExpiringSoon collapses the critical and warning buckets.
type InventorySummary struct {
	Total        int              `json:"total"`
	Expired      int              `json:"expired"`
	ExpiringSoon int              `json:"expiring_soon"`
	Good         int              `json:"good"`
	Unknown      int              `json:"unknown"`
	LowStock     int              `json:"low_stock"`
	ByLocation   map[Location]int `json:"by_location"`
}

// SummarizeInventory folds a list of classified items into counts by status
// and location. The input is not mutated and its order does not matter.
func SummarizeInventory(items []InventoryItem) InventorySummary {
	summary := InventorySummary{
		Total:      len(items),
		ByLocation: make(map[Location]int, len(locations)),
	}

	for _, item := range items {
		switch item.ExpirationStatus {
		case ExpirationExpired:
			summary.Expired++
		case ExpirationCritical, ExpirationWarning:
			summary.ExpiringSoon++
		case ExpirationGood:
			summary.Good++
		default:
			summary.Unknown++
		}

		if item.IsLowStock {
			summary.LowStock++
		}

		summary.ByLocation[item.Location]++
	}

	return summary
}

// midnight truncates t to 00:00:00 UTC of its calendar date. Expiration and
// activity timestamps are stored as UTC midnights and compared by calendar
// day, so day arithmetic stays exact regardless of wall-clock time or DST.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
