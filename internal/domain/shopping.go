package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// ShoppingList represents a user-owned list of groceries to buy.
type ShoppingList struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Derived on read.
	Items    []ShoppingListItem `json:"items,omitempty" db:"-"`
	Progress *ListProgress      `json:"progress,omitempty" db:"-"`
}

// ShoppingListItem is one ordered, categorized entry of a list.
type ShoppingListItem struct {
	ID             uuid.UUID `json:"id" db:"id"`
	ListID         uuid.UUID `json:"list_id" db:"list_id"`
	IngredientName string    `json:"ingredient_name" db:"ingredient_name"`
	Quantity       float64   `json:"quantity" db:"quantity"`
	Unit           string    `json:"unit,omitempty" db:"unit"`
	Category       string    `json:"category,omitempty" db:"category"`
	Checked        bool      `json:"checked" db:"checked"`
	Position       int       `json:"position" db:"position"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// ListProgress is the derived checked/total pair shown next to a list.
type ListProgress struct {
	Checked    int `json:"checked"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ProgressOf folds a list's items into the derived progress pair.
func ProgressOf(items []ShoppingListItem) ListProgress {
	progress := ListProgress{Total: len(items)}
	for _, item := range items {
		if item.Checked {
			progress.Checked++
		}
	}

	if progress.Total > 0 {
		progress.Percentage = int(math.Round(float64(progress.Checked) / float64(progress.Total) * 100))
	}

	return progress
}
