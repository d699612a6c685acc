package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

type achievementRepository struct {
	db *DB
}

func NewAchievementRepository(db *DB) repository.AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) ListDefinitions(ctx context.Context) ([]domain.AchievementDefinition, error) {
	query := `
		SELECT id, title, description, icon, criteria_type, metric, target, created_at
		FROM achievement_definitions
		ORDER BY created_at ASC, id ASC
	`

	var defs []domain.AchievementDefinition
	if err := r.db.SelectContext(ctx, &defs, query); err != nil {
		return nil, fmt.Errorf("failed to list achievement definitions: %w", err)
	}

	return defs, nil
}

func (r *achievementRepository) GetDefinition(ctx context.Context, id string) (*domain.AchievementDefinition, error) {
	query := `
		SELECT id, title, description, icon, criteria_type, metric, target, created_at
		FROM achievement_definitions
		WHERE id = $1
	`

	var def domain.AchievementDefinition
	if err := r.db.GetContext(ctx, &def, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get achievement definition: %w", err)
	}

	return &def, nil
}

func (r *achievementRepository) ListEarned(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error) {
	query := `
		SELECT user_id, achievement_id, earned_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY earned_at DESC
	`

	var earned []domain.UserAchievement
	if err := r.db.SelectContext(ctx, &earned, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list earned achievements: %w", err)
	}

	return earned, nil
}

func (r *achievementRepository) Unlock(ctx context.Context, userID uuid.UUID, achievementID string, at time.Time) (bool, error) {
	query := `
		INSERT INTO user_achievements (user_id, achievement_id, earned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, userID, achievementID, at)
	if err != nil {
		return false, fmt.Errorf("failed to unlock achievement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read unlock result: %w", err)
	}

	return rows > 0, nil
}
