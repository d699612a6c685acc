package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/domain"
)

type MealLogRepository interface {
	Create(ctx context.Context, log *domain.MealLog) error
	ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MealLog, error)
	Delete(ctx context.Context, userID, logID uuid.UUID) error

	// Activity queries feeding streaks and challenge metrics. Dates come
	// back distinct, midnight-truncated, newest first.
	ActivityDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
	GreenActivityDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
	CountInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
	CountGreenInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
	DailyCalories(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.DailyCalories, error)
	SumForDate(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.NutrientTotals, error)
}

type NutrientGoalRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.NutrientGoal, error)
	Upsert(ctx context.Context, goal *domain.NutrientGoal) error
}
