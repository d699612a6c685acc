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

type goalRepository struct {
	db *DB
}

func NewNutrientGoalRepository(db *DB) repository.NutrientGoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.NutrientGoal, error) {
	query := `
		SELECT user_id, calories, protein, carbs, fat, created_at, updated_at
		FROM nutrient_goals
		WHERE user_id = $1
	`

	var goal domain.NutrientGoal
	if err := r.db.GetContext(ctx, &goal, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get nutrient goal: %w", err)
	}

	return &goal, nil
}

func (r *goalRepository) Upsert(ctx context.Context, goal *domain.NutrientGoal) error {
	query := `
		INSERT INTO nutrient_goals (user_id, calories, protein, carbs, fat, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			calories = EXCLUDED.calories,
			protein = EXCLUDED.protein,
			carbs = EXCLUDED.carbs,
			fat = EXCLUDED.fat,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		goal.UserID, goal.Calories, goal.Protein, goal.Carbs, goal.Fat,
	).Scan(&goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert nutrient goal: %w", err)
	}

	return nil
}
