package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/domain"
)

type ChallengeRepository interface {
	ListActive(ctx context.Context) ([]domain.Challenge, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Challenge, error)
	// Join inserts the membership row; a second join of the same challenge
	// returns domain.ErrAlreadyJoined.
	Join(ctx context.Context, membership *domain.UserChallenge) error
	Memberships(ctx context.Context, userID uuid.UUID) ([]domain.UserChallenge, error)
	// MarkCompleted stamps completed_at once; rows already completed are
	// left untouched and report false.
	MarkCompleted(ctx context.Context, membershipID uuid.UUID, at time.Time) (bool, error)
}

type AchievementRepository interface {
	ListDefinitions(ctx context.Context) ([]domain.AchievementDefinition, error)
	GetDefinition(ctx context.Context, id string) (*domain.AchievementDefinition, error)
	ListEarned(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error)
	// Unlock is idempotent; it reports whether the row was newly inserted.
	Unlock(ctx context.Context, userID uuid.UUID, achievementID string, at time.Time) (bool, error)
}

type StreakRepository interface {
	// Longest returns the persisted longest run per streak type. Types with
	// no row yet are simply absent from the map.
	Longest(ctx context.Context, userID uuid.UUID) (map[domain.StreakType]int, error)
	RaiseLongest(ctx context.Context, userID uuid.UUID, streakType domain.StreakType, longest int) error
}
