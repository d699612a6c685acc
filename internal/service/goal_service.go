package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

type GoalService struct {
	goals repository.NutrientGoalRepository
	meals repository.MealLogRepository
	now   func() time.Time
}

func NewGoalService(goals repository.NutrientGoalRepository, meals repository.MealLogRepository) *GoalService {
	return &GoalService{goals: goals, meals: meals, now: time.Now}
}

func (s *GoalService) Get(ctx context.Context, userID uuid.UUID) (*domain.NutrientGoal, error) {
	return s.goals.Get(ctx, userID)
}

func (s *GoalService) Upsert(ctx context.Context, goal *domain.NutrientGoal) (*domain.NutrientGoal, error) {
	if err := s.goals.Upsert(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// TodayProgress measures today's summed intake against the goal. Percentages
// cap at 100 while consumed values stay uncapped, matching challenge
// progress semantics.
func (s *GoalService) TodayProgress(ctx context.Context, userID uuid.UUID) (*domain.GoalProgress, error) {
	today := dayOf(s.now())

	goal, err := s.goals.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals, err := s.meals.SumForDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	return &domain.GoalProgress{
		Date:     today.Format("2006-01-02"),
		Calories: nutrientProgress(totals.Calories, goal.Calories),
		Protein:  nutrientProgress(totals.Protein, goal.Protein),
		Carbs:    nutrientProgress(totals.Carbs, goal.Carbs),
		Fat:      nutrientProgress(totals.Fat, goal.Fat),
		GoalMet:  domain.MeetsCalorieGoal(totals.Calories, goal.Calories),
	}, nil
}

func nutrientProgress(consumed, target float64) domain.NutrientProgress {
	progress := domain.NutrientProgress{Consumed: consumed, Target: target}
	if target > 0 {
		progress.Percent = math.Min(100, math.Round(consumed/target*100))
	}

	return progress
}
