package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

// greenTagsParam renders the sustainability tag set as a text[] bind value.
func greenTagsParam() pq.StringArray {
	return pq.StringArray(domain.GreenTags)
}

type mealLogRepository struct {
	db *DB
}

func NewMealLogRepository(db *DB) repository.MealLogRepository {
	return &mealLogRepository{db: db}
}

func (r *mealLogRepository) Create(ctx context.Context, log *domain.MealLog) error {
	query := `
		INSERT INTO meal_logs (
			id, user_id, recipe_id, meal_type, eaten_on,
			calories, protein, carbs, fat, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		log.ID, log.UserID, log.RecipeID, log.MealType, log.EatenOn,
		log.Calories, log.Protein, log.Carbs, log.Fat, log.Notes,
	).Scan(&log.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert meal log: %w", err)
	}

	return nil
}

func (r *mealLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MealLog, error) {
	query := `
		SELECT id, user_id, recipe_id, meal_type, eaten_on,
			calories, protein, carbs, fat, notes, created_at
		FROM meal_logs
		WHERE user_id = $1 AND eaten_on BETWEEN $2 AND $3
		ORDER BY eaten_on DESC, created_at DESC
	`

	var logs []domain.MealLog
	if err := r.db.SelectContext(ctx, &logs, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list meal logs: %w", err)
	}

	return logs, nil
}

func (r *mealLogRepository) Delete(ctx context.Context, userID, logID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM meal_logs WHERE id = $1 AND user_id = $2`, logID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete meal log: %w", err)
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

func (r *mealLogRepository) ActivityDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	query := `
		SELECT DISTINCT eaten_on
		FROM meal_logs
		WHERE user_id = $1
		ORDER BY eaten_on DESC
	`

	var dates []time.Time
	if err := r.db.SelectContext(ctx, &dates, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list activity dates: %w", err)
	}

	return dates, nil
}

func (r *mealLogRepository) GreenActivityDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	query := `
		SELECT DISTINCT m.eaten_on
		FROM meal_logs m
		JOIN recipes r ON r.id = m.recipe_id
		WHERE m.user_id = $1 AND r.tags && $2::text[]
		ORDER BY m.eaten_on DESC
	`

	var dates []time.Time
	if err := r.db.SelectContext(ctx, &dates, query, userID, greenTagsParam()); err != nil {
		return nil, fmt.Errorf("failed to list green activity dates: %w", err)
	}

	return dates, nil
}

func (r *mealLogRepository) CountInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM meal_logs
		WHERE user_id = $1 AND eaten_on BETWEEN $2 AND $3
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, from, to); err != nil {
		return 0, fmt.Errorf("failed to count meals in window: %w", err)
	}

	return count, nil
}

func (r *mealLogRepository) CountGreenInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM meal_logs m
		JOIN recipes r ON r.id = m.recipe_id
		WHERE m.user_id = $1 AND m.eaten_on BETWEEN $2 AND $3 AND r.tags && $4::text[]
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, from, to, greenTagsParam()); err != nil {
		return 0, fmt.Errorf("failed to count green meals in window: %w", err)
	}

	return count, nil
}

func (r *mealLogRepository) DailyCalories(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DailyCalories, error) {
	query := `
		SELECT eaten_on AS day, SUM(calories) AS calories
		FROM meal_logs
		WHERE user_id = $1 AND eaten_on BETWEEN $2 AND $3
		GROUP BY eaten_on
		ORDER BY eaten_on DESC
	`

	var days []domain.DailyCalories
	if err := r.db.SelectContext(ctx, &days, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("failed to sum daily calories: %w", err)
	}

	return days, nil
}

func (r *mealLogRepository) SumForDate(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.NutrientTotals, error) {
	query := `
		SELECT COALESCE(SUM(calories), 0) AS calories,
			COALESCE(SUM(protein), 0) AS protein,
			COALESCE(SUM(carbs), 0) AS carbs,
			COALESCE(SUM(fat), 0) AS fat
		FROM meal_logs
		WHERE user_id = $1 AND eaten_on = $2
	`

	var totals domain.NutrientTotals
	if err := r.db.GetContext(ctx, &totals, query, userID, day); err != nil {
		return nil, fmt.Errorf("failed to sum nutrients for date: %w", err)
	}

	return &totals, nil
}
