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

type shoppingRepository struct {
	db *DB
}

func NewShoppingListRepository(db *DB) repository.ShoppingListRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingList, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM shopping_lists
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	var lists []domain.ShoppingList
	if err := r.db.SelectContext(ctx, &lists, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}

	return lists, nil
}

func (r *shoppingRepository) GetByID(ctx context.Context, userID, listID uuid.UUID) (*domain.ShoppingList, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM shopping_lists
		WHERE id = $1 AND user_id = $2
	`

	var list domain.ShoppingList
	if err := r.db.GetContext(ctx, &list, query, listID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	items, err := r.ListItems(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	list.Items = items

	return &list, nil
}

// Create inserts the list and any initial items in a single transaction.
func (r *shoppingRepository) Create(ctx context.Context, list *domain.ShoppingList) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO shopping_lists (id, user_id, name, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			RETURNING created_at, updated_at
		`

		err := tx.QueryRowContext(ctx, query, list.ID, list.UserID, list.Name).
			Scan(&list.CreatedAt, &list.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert shopping list: %w", err)
		}

		if len(list.Items) == 0 {
			return nil
		}

		itemQuery := `
			INSERT INTO shopping_list_items (
				id, list_id, ingredient_name, quantity, unit, category,
				checked, position, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		`

		stmt, err := tx.PrepareContext(ctx, itemQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare item statement: %w", err)
		}
		defer stmt.Close()

		for i := range list.Items {
			item := &list.Items[i]
			if item.ID == uuid.Nil {
				item.ID = uuid.New()
			}
			item.ListID = list.ID
			item.Position = i

			_, err := stmt.ExecContext(ctx,
				item.ID, item.ListID, item.IngredientName, item.Quantity,
				item.Unit, item.Category, item.Checked, item.Position,
			)
			if err != nil {
				return fmt.Errorf("failed to insert shopping item: %w", err)
			}
		}

		return nil
	})
}

func (r *shoppingRepository) Rename(ctx context.Context, userID, listID uuid.UUID, name string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE shopping_lists SET name = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		listID, userID, name)
	if err != nil {
		return fmt.Errorf("failed to rename shopping list: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rename result: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *shoppingRepository) Delete(ctx context.Context, userID, listID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM shopping_lists WHERE id = $1 AND user_id = $2`, listID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
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

func (r *shoppingRepository) ListItems(ctx context.Context, listID uuid.UUID) ([]domain.ShoppingListItem, error) {
	query := `
		SELECT id, list_id, ingredient_name, quantity, unit, category,
			checked, position, created_at, updated_at
		FROM shopping_list_items
		WHERE list_id = $1
		ORDER BY position ASC, created_at ASC
	`

	var items []domain.ShoppingListItem
	if err := r.db.SelectContext(ctx, &items, query, listID); err != nil {
		return nil, fmt.Errorf("failed to list shopping items: %w", err)
	}

	return items, nil
}

func (r *shoppingRepository) AddItem(ctx context.Context, item *domain.ShoppingListItem) error {
	query := `
		INSERT INTO shopping_list_items (
			id, list_id, ingredient_name, quantity, unit, category,
			checked, position, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM shopping_list_items WHERE list_id = $2),
			NOW(), NOW())
		RETURNING position, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.ListID, item.IngredientName, item.Quantity,
		item.Unit, item.Category, item.Checked,
	).Scan(&item.Position, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert shopping item: %w", err)
	}

	return nil
}

func (r *shoppingRepository) UpdateItem(ctx context.Context, item *domain.ShoppingListItem) error {
	query := `
		UPDATE shopping_list_items
		SET ingredient_name = $3, quantity = $4, unit = $5, category = $6,
			checked = $7, position = $8, updated_at = NOW()
		WHERE id = $1 AND list_id = $2
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.ListID, item.IngredientName, item.Quantity,
		item.Unit, item.Category, item.Checked, item.Position,
	).Scan(&item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update shopping item: %w", err)
	}

	return nil
}

func (r *shoppingRepository) DeleteItem(ctx context.Context, listID, itemID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM shopping_list_items WHERE id = $1 AND list_id = $2`, itemID, listID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping item: %w", err)
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

func (r *shoppingRepository) ToggleItem(ctx context.Context, listID, itemID uuid.UUID) (*domain.ShoppingListItem, error) {
	query := `
		UPDATE shopping_list_items
		SET checked = NOT checked, updated_at = NOW()
		WHERE id = $1 AND list_id = $2
		RETURNING id, list_id, ingredient_name, quantity, unit, category,
			checked, position, created_at, updated_at
	`

	var item domain.ShoppingListItem
	if err := r.db.GetContext(ctx, &item, query, itemID, listID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle shopping item: %w", err)
	}

	return &item, nil
}
