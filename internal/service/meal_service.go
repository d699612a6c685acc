package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pantryplan/backend-go/internal/cache"
	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

type MealLogService struct {
	meals   repository.MealLogRepository
	recipes repository.RecipeRepository
	dash    cache.DashboardCache
	now     func() time.Time
}

func NewMealLogService(meals repository.MealLogRepository, recipes repository.RecipeRepository, dash cache.DashboardCache) *MealLogService {
	if dash == nil {
		dash = cache.NewNoopDashboardCache()
	}
	return &MealLogService{meals: meals, recipes: recipes, dash: dash, now: time.Now}
}

func (s *MealLogService) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.dash.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Msg("meals: dashboard cache invalidation failed")
	}
}

// Create logs a meal. When a recipe is referenced, its per-serving nutrients
// are snapshotted onto the log so later recipe edits cannot rewrite history;
// free-form entries keep whatever the caller supplied.
func (s *MealLogService) Create(ctx context.Context, entry *domain.MealLog) (*domain.MealLog, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.EatenOn.IsZero() {
		entry.EatenOn = dayOf(s.now())
	} else {
		entry.EatenOn = dayOf(entry.EatenOn)
	}

	if entry.RecipeID != nil {
		recipe, err := s.recipes.GetByID(ctx, *entry.RecipeID)
		if err != nil {
			return nil, err
		}
		entry.Calories = recipe.Calories
		entry.Protein = recipe.Protein
		entry.Carbs = recipe.Carbs
		entry.Fat = recipe.Fat
	}

	if err := s.meals.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.invalidate(ctx, entry.UserID)

	return entry, nil
}

// List returns the user's logs in [from, to]. A zero range defaults to the
// trailing week.
func (s *MealLogService) List(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MealLog, error) {
	if to.IsZero() {
		to = dayOf(s.now())
	} else {
		to = dayOf(to)
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -6)
	} else {
		from = dayOf(from)
	}

	return s.meals.ListByUser(ctx, userID, from, to)
}

func (s *MealLogService) Delete(ctx context.Context, userID, logID uuid.UUID) error {
	if err := s.meals.Delete(ctx, userID, logID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)

	return nil
}
