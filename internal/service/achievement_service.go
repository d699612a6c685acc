package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

type AchievementService struct {
	achievements  repository.AchievementRepository
	notifications repository.NotificationRepository
	metrics       activityMetrics
	now           func() time.Time
}

func NewAchievementService(
	achievements repository.AchievementRepository,
	notifications repository.NotificationRepository,
	meals repository.MealLogRepository,
	goals repository.NutrientGoalRepository,
) *AchievementService {
	return &AchievementService{
		achievements:  achievements,
		notifications: notifications,
		metrics:       activityMetrics{meals: meals, goals: goals},
		now:           time.Now,
	}
}

// List evaluates and returns the full catalog annotated with the user's
// earned state. Evaluation runs before listing so a qualifying user sees the
// unlock on the same read.
func (s *AchievementService) List(ctx context.Context, userID uuid.UUID) ([]domain.AchievementView, error) {
	if err := s.Evaluate(ctx, userID); err != nil {
		log.Warn().Err(err).Msg("achievements: evaluation failed, listing stored state")
	}

	defs, err := s.achievements.ListDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	earned, err := s.achievements.ListEarned(ctx, userID)
	if err != nil {
		return nil, err
	}
	earnedAt := make(map[string]time.Time, len(earned))
	for _, e := range earned {
		earnedAt[e.AchievementID] = e.EarnedAt
	}

	views := make([]domain.AchievementView, 0, len(defs))
	for _, def := range defs {
		view := domain.AchievementView{AchievementDefinition: def}
		if at, ok := earnedAt[def.ID]; ok {
			view.Earned = true
			view.EarnedAt = &at
		}
		views = append(views, view)
	}

	return views, nil
}

// Evaluate checks every definition against live metrics and unlocks anything
// newly satisfied. Unlocking is idempotent, so re-evaluating is always safe.
func (s *AchievementService) Evaluate(ctx context.Context, userID uuid.UUID) error {
	today := s.now().UTC()

	defs, err := s.achievements.ListDefinitions(ctx)
	if err != nil {
		return err
	}

	earned, err := s.achievements.ListEarned(ctx, userID)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(earned))
	for _, e := range earned {
		have[e.AchievementID] = true
	}

	for _, def := range defs {
		if have[def.ID] {
			continue
		}

		satisfied, err := s.satisfies(ctx, userID, def, today)
		if err != nil {
			log.Warn().Err(err).Str("achievement", def.ID).Msg("achievements: criteria check failed, skipping")
			continue
		}
		if !satisfied {
			continue
		}

		if err := s.unlock(ctx, userID, def, today); err != nil {
			return err
		}
	}

	return nil
}

// satisfies measures the definition's criteria against live activity.
func (s *AchievementService) satisfies(ctx context.Context, userID uuid.UUID, def domain.AchievementDefinition, today time.Time) (bool, error) {
	kind := domain.ParseMetric(def.Metric)
	if kind == domain.MetricUnknown {
		log.Warn().Str("metric", def.Metric).Str("achievement", def.ID).Msg("achievements: unknown metric never satisfies")
		return false, nil
	}

	switch def.CriteriaType {
	case domain.CriteriaStreak:
		dates, err := s.metrics.datesFor(ctx, userID, kind, today)
		if err != nil {
			return false, err
		}
		return domain.CurrentStreak(dates, today) >= def.Target, nil
	case domain.CriteriaCount, domain.CriteriaThreshold:
		count, err := s.metrics.countIn(ctx, userID, kind, time.Time{}, dayOf(today), today)
		if err != nil {
			return false, err
		}
		return count >= def.Target, nil
	}

	return false, nil
}

// unlock records the one-time unlock and appends its notification. The
// ON CONFLICT guard means a concurrent evaluation cannot double-notify.
func (s *AchievementService) unlock(ctx context.Context, userID uuid.UUID, def domain.AchievementDefinition, at time.Time) error {
	fresh, err := s.achievements.Unlock(ctx, userID, def.ID, at)
	if err != nil {
		return err
	}
	if !fresh {
		return nil
	}

	notification := &domain.Notification{
		ID:     uuid.New(),
		UserID: userID,
		Type:   domain.NotifyAchievementEarned,
		Title:  "Achievement earned",
		Body:   fmt.Sprintf("You earned %q.", def.Title),
	}
	if _, err := s.notifications.Create(ctx, notification); err != nil {
		log.Warn().Err(err).Str("achievement", def.ID).Msg("achievements: failed to append unlock notification")
	}

	return nil
}
