package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

type StreakService struct {
	streaks repository.StreakRepository
	metrics activityMetrics
	now     func() time.Time
}

func NewStreakService(meals repository.MealLogRepository, goals repository.NutrientGoalRepository, streaks repository.StreakRepository) *StreakService {
	return &StreakService{
		streaks: streaks,
		metrics: activityMetrics{meals: meals, goals: goals},
		now:     time.Now,
	}
}

// streakSources maps each streak type to the metric whose activity dates
// feed it.
var streakSources = []struct {
	Type   domain.StreakType
	Label  string
	Metric domain.MetricKind
}{
	{domain.StreakMealLog, "Meal logging", domain.MetricMealsLogged},
	{domain.StreakNutrientGoal, "Nutrient goals", domain.MetricNutrientGoalDays},
	{domain.StreakGreenRecipe, "Green meals", domain.MetricGreenRecipes},
}

// Streaks builds the user's streak records from activity dates. The
// persisted longest value is raised whenever the current run exceeds it, so
// reads keep the stored maximum honest without a background job.
func (s *StreakService) Streaks(ctx context.Context, userID uuid.UUID) ([]domain.StreakRecord, error) {
	today := s.now().UTC()

	longest, err := s.streaks.Longest(ctx, userID)
	if err != nil {
		return nil, err
	}

	records := make([]domain.StreakRecord, 0, len(streakSources))
	for _, src := range streakSources {
		dates, err := s.metrics.datesFor(ctx, userID, src.Metric, today)
		if err != nil {
			return nil, err
		}

		rec := domain.BuildStreak(src.Type, src.Label, dates, longest[src.Type], today)
		if rec.Longest > longest[src.Type] {
			if err := s.streaks.RaiseLongest(ctx, userID, rec.Type, rec.Longest); err != nil {
				log.Warn().Err(err).Str("streak_type", string(rec.Type)).Msg("streaks: failed to persist longest")
			}
		}
		records = append(records, rec)
	}

	return records, nil
}
