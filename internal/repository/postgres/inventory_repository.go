// backend-go/internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `
	id, user_id, ingredient_id, ingredient_name, quantity, unit,
	location, expires_at, min_quantity, notes, created_at, updated_at
`

func (r *inventoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items
		WHERE user_id = $1
		ORDER BY expires_at ASC NULLS LAST, ingredient_name ASC
	`

	var items []domain.InventoryItem
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	return items, nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items
		WHERE id = $1 AND user_id = $2
	`

	var item domain.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, itemID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	return &item, nil
}

func (r *inventoryRepository) FindMatch(ctx context.Context, userID uuid.UUID, ingredientName string, location domain.Location) (*domain.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items
		WHERE user_id = $1 AND lower(ingredient_name) = lower($2) AND location = $3
	`

	var item domain.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, userID, ingredientName, location); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find matching inventory item: %w", err)
	}

	return &item, nil
}

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (
			id, user_id, ingredient_id, ingredient_name, quantity, unit,
			location, expires_at, min_quantity, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.UserID, item.IngredientID, item.IngredientName,
		item.Quantity, item.Unit, item.Location, item.ExpiresAt,
		item.MinQuantity, item.Notes,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert inventory item: %w", err)
	}

	return nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET ingredient_name = $3, quantity = $4, unit = $5, location = $6,
			expires_at = $7, min_quantity = $8, notes = $9, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.UserID, item.IngredientName, item.Quantity, item.Unit,
		item.Location, item.ExpiresAt, item.MinQuantity, item.Notes,
	).Scan(&item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update inventory item: %w", err)
	}

	return nil
}

func (r *inventoryRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM inventory_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}
