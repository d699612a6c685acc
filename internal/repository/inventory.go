// backend-go/internal/repository/inventory.go
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/domain"
)

type InventoryRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error)
	GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.InventoryItem, error)
	// FindMatch looks up the row the add-merge rule folds into: same user,
	// same ingredient name, same location. Returns domain.ErrNotFound when
	// no such row exists.
	FindMatch(ctx context.Context, userID uuid.UUID, ingredientName string, location domain.Location) (*domain.InventoryItem, error)
	Create(ctx context.Context, item *domain.InventoryItem) error
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}
