package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

type recipeRepository struct {
	db *DB
}

func NewRecipeRepository(db *DB) repository.RecipeRepository {
	return &recipeRepository{db: db}
}

// recipeRow mirrors domain.Recipe with the tags column mapped through
// pq.StringArray. sqlx cannot scan text[] into []string directly.
type recipeRow struct {
	domain.Recipe
	TagsArray pq.StringArray `db:"tags"`
}

func (row *recipeRow) toDomain() domain.Recipe {
	recipe := row.Recipe
	recipe.Tags = []string(row.TagsArray)

	return recipe
}

func (r *recipeRepository) List(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, error) {
	query := `
		SELECT id, author_id, title, description, instructions, tags, servings,
			calories, protein, carbs, fat, image_key, created_at, updated_at
		FROM recipes
		WHERE 1=1
	`

	var args []interface{}
	var conditions []string
	argCounter := 1

	if filter.Tag != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(tags)", argCounter))
		args = append(args, filter.Tag)
		argCounter++
	}

	if filter.Green {
		conditions = append(conditions, fmt.Sprintf("tags && $%d::text[]", argCounter))
		args = append(args, pq.StringArray(domain.GreenTags))
		argCounter++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("title ILIKE '%%' || $%d || '%%'", argCounter))
		args = append(args, filter.Search)
		argCounter++
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
	args = append(args, limit, offset)

	var rows []recipeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := make([]domain.Recipe, 0, len(rows))
	for i := range rows {
		recipes = append(recipes, rows[i].toDomain())
	}

	return recipes, nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	query := `
		SELECT id, author_id, title, description, instructions, tags, servings,
			calories, protein, carbs, fat, image_key, created_at, updated_at
		FROM recipes
		WHERE id = $1
	`

	var row recipeRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	recipe := row.toDomain()

	return &recipe, nil
}

func (r *recipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	query := `
		INSERT INTO recipes (
			id, author_id, title, description, instructions, tags, servings,
			calories, protein, carbs, fat, image_key, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		recipe.ID, recipe.AuthorID, recipe.Title, recipe.Description,
		recipe.Instructions, pq.StringArray(recipe.Tags), recipe.Servings,
		recipe.Calories, recipe.Protein, recipe.Carbs, recipe.Fat, recipe.ImageKey,
	).Scan(&recipe.CreatedAt, &recipe.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	return nil
}

func (r *recipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	query := `
		UPDATE recipes
		SET title = $3, description = $4, instructions = $5, tags = $6,
			servings = $7, calories = $8, protein = $9, carbs = $10, fat = $11,
			updated_at = NOW()
		WHERE id = $1 AND author_id = $2
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		recipe.ID, recipe.AuthorID, recipe.Title, recipe.Description,
		recipe.Instructions, pq.StringArray(recipe.Tags), recipe.Servings,
		recipe.Calories, recipe.Protein, recipe.Carbs, recipe.Fat,
	).Scan(&recipe.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	return nil
}

func (r *recipeRepository) Delete(ctx context.Context, authorID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = $1 AND author_id = $2`, id, authorID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
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

func (r *recipeRepository) SetImageKey(ctx context.Context, authorID, id uuid.UUID, key string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE recipes SET image_key = $3, updated_at = NOW() WHERE id = $1 AND author_id = $2`,
		id, authorID, key)
	if err != nil {
		return fmt.Errorf("failed to set recipe image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}
