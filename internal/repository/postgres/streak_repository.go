package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

type streakRepository struct {
	db *DB
}

func NewStreakRepository(db *DB) repository.StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) Longest(ctx context.Context, userID uuid.UUID) (map[domain.StreakType]int, error) {
	query := `
		SELECT streak_type, longest
		FROM user_streaks
		WHERE user_id = $1
	`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query longest streaks: %w", err)
	}
	defer rows.Close()

	longest := make(map[domain.StreakType]int)
	for rows.Next() {
		var streakType domain.StreakType
		var value int
		if err := rows.Scan(&streakType, &value); err != nil {
			return nil, fmt.Errorf("failed to scan longest streak: %w", err)
		}
		longest[streakType] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate longest streaks: %w", err)
	}

	return longest, nil
}

func (r *streakRepository) RaiseLongest(ctx context.Context, userID uuid.UUID, streakType domain.StreakType, longest int) error {
	query := `
		INSERT INTO user_streaks (user_id, streak_type, longest, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, streak_type)
		DO UPDATE SET
			longest = GREATEST(user_streaks.longest, EXCLUDED.longest),
			updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, userID, streakType, longest); err != nil {
		return fmt.Errorf("failed to raise longest streak: %w", err)
	}

	return nil
}
