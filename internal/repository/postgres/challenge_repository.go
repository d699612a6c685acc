// backend-go/internal/repository/postgres/challenge_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

type challengeRepository struct {
	db *DB
}

func NewChallengeRepository(db *DB) repository.ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) ListActive(ctx context.Context) ([]domain.Challenge, error) {
	query := `
		SELECT id, title, description, metric, target, period, ends_at,
			reward_id, active, created_at
		FROM challenges
		WHERE active = TRUE AND (ends_at IS NULL OR ends_at >= NOW())
		ORDER BY created_at ASC
	`

	var challenges []domain.Challenge
	if err := r.db.SelectContext(ctx, &challenges, query); err != nil {
		return nil, fmt.Errorf("failed to list active challenges: %w", err)
	}

	return challenges, nil
}

func (r *challengeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Challenge, error) {
	query := `
		SELECT id, title, description, metric, target, period, ends_at,
			reward_id, active, created_at
		FROM challenges
		WHERE id = $1
	`

	var challenge domain.Challenge
	if err := r.db.GetContext(ctx, &challenge, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	return &challenge, nil
}

func (r *challengeRepository) Join(ctx context.Context, membership *domain.UserChallenge) error {
	query := `
		INSERT INTO user_challenges (id, user_id, challenge_id, joined_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING joined_at
	`

	err := r.db.QueryRowContext(ctx, query,
		membership.ID, membership.UserID, membership.ChallengeID,
	).Scan(&membership.JoinedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrAlreadyJoined
		}
		return fmt.Errorf("failed to join challenge: %w", err)
	}

	return nil
}

func (r *challengeRepository) Memberships(ctx context.Context, userID uuid.UUID) ([]domain.UserChallenge, error) {
	query := `
		SELECT id, user_id, challenge_id, joined_at, completed_at
		FROM user_challenges
		WHERE user_id = $1
		ORDER BY joined_at DESC
	`

	var memberships []domain.UserChallenge
	if err := r.db.SelectContext(ctx, &memberships, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	return memberships, nil
}

func (r *challengeRepository) MarkCompleted(ctx context.Context, membershipID uuid.UUID, at time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE user_challenges SET completed_at = $2 WHERE id = $1 AND completed_at IS NULL`,
		membershipID, at)
	if err != nil {
		return false, fmt.Errorf("failed to mark challenge completed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read completion result: %w", err)
	}

	return rows > 0, nil
}
