package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

// activityMetrics answers "how many" and "which days" for the metric kinds
// that challenges and achievements count. MetricUnknown is the callers'
// business; this helper only handles the known kinds.
type activityMetrics struct {
	meals repository.MealLogRepository
	goals repository.NutrientGoalRepository
}

// countIn returns the metric count inside [from, to]. Streak-day metrics
// ignore the window: a streak is always measured against today.
func (m activityMetrics) countIn(ctx context.Context, userID uuid.UUID, kind domain.MetricKind, from, to, today time.Time) (int, error) {
	switch kind {
	case domain.MetricMealsLogged:
		return m.meals.CountInWindow(ctx, userID, from, to)
	case domain.MetricGreenRecipes:
		return m.meals.CountGreenInWindow(ctx, userID, from, to)
	case domain.MetricStreakDays:
		dates, err := m.meals.ActivityDates(ctx, userID)
		if err != nil {
			return 0, err
		}
		return domain.CurrentStreak(dates, today), nil
	case domain.MetricNutrientGoalDays:
		return m.goalDays(ctx, userID, from, to)
	}

	return 0, nil
}

// datesFor returns the metric's activity dates, for streak-style criteria.
func (m activityMetrics) datesFor(ctx context.Context, userID uuid.UUID, kind domain.MetricKind, today time.Time) ([]time.Time, error) {
	switch kind {
	case domain.MetricMealsLogged:
		return m.meals.ActivityDates(ctx, userID)
	case domain.MetricGreenRecipes:
		return m.meals.GreenActivityDates(ctx, userID)
	case domain.MetricNutrientGoalDays:
		return m.goalMetDates(ctx, userID, today)
	case domain.MetricStreakDays:
		return m.meals.ActivityDates(ctx, userID)
	}

	return nil, nil
}

// goalDays counts the days in [from, to] whose calories landed in the goal
// band. Users without a goal have no qualifying days.
func (m activityMetrics) goalDays(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	goal, err := m.goals.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	daily, err := m.meals.DailyCalories(ctx, userID, from, to)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, day := range daily {
		if domain.MeetsCalorieGoal(day.Calories, goal.Calories) {
			count++
		}
	}

	return count, nil
}

func (m activityMetrics) goalMetDates(ctx context.Context, userID uuid.UUID, today time.Time) ([]time.Time, error) {
	goal, err := m.goals.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	daily, err := m.meals.DailyCalories(ctx, userID, time.Time{}, today)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(daily))
	for _, day := range daily {
		if domain.MeetsCalorieGoal(day.Calories, goal.Calories) {
			dates = append(dates, day.Day)
		}
	}

	return dates, nil
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isoWeekdayOf(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}

	return wd
}
