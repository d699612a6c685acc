package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/domain"
)

type ShoppingListRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingList, error)
	GetByID(ctx context.Context, userID, listID uuid.UUID) (*domain.ShoppingList, error)
	Create(ctx context.Context, list *domain.ShoppingList) error
	Rename(ctx context.Context, userID, listID uuid.UUID, name string) error
	Delete(ctx context.Context, userID, listID uuid.UUID) error

	ListItems(ctx context.Context, listID uuid.UUID) ([]domain.ShoppingListItem, error)
	AddItem(ctx context.Context, item *domain.ShoppingListItem) error
	UpdateItem(ctx context.Context, item *domain.ShoppingListItem) error
	DeleteItem(ctx context.Context, listID, itemID uuid.UUID) error
	// ToggleItem flips the checked flag in place and returns the new row.
	ToggleItem(ctx context.Context, listID, itemID uuid.UUID) (*domain.ShoppingListItem, error)
}
