package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/pantryplan/backend-go/internal/cache"
	"github.com/pantryplan/backend-go/internal/domain"
)

// DashboardService assembles the home-screen payload from the other
// services. Sections are independent reads, so they are fetched concurrently
// and a failing section degrades to its zero value instead of failing the
// whole payload.
type DashboardService struct {
	inventory     *InventoryService
	streaks       *StreakService
	challenges    *ChallengeService
	goals         *GoalService
	notifications *NotificationService
	cache         cache.DashboardCache
}

func NewDashboardService(
	inventory *InventoryService,
	streaks *StreakService,
	challenges *ChallengeService,
	goals *GoalService,
	notifications *NotificationService,
	cacheImpl cache.DashboardCache,
) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &DashboardService{
		inventory:     inventory,
		streaks:       streaks,
		challenges:    challenges,
		goals:         goals,
		notifications: notifications,
		cache:         cacheImpl,
	}
}

func (s *DashboardService) Get(ctx context.Context, userID uuid.UUID) (*domain.Dashboard, error) {
	if cached, ok, err := s.cache.Get(ctx, userID); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get failed")
	}

	// The sweep runs here because the dashboard is the one read every client
	// performs; failures must never block the payload.
	if err := s.notifications.Sweep(ctx, userID); err != nil {
		log.Warn().Err(err).Msg("dashboard: notification sweep failed")
	}

	dashboard := &domain.Dashboard{
		ExpiringSoon: make([]domain.InventoryItem, 0),
		Streaks:      make([]domain.StreakRecord, 0),
		Challenges:   make([]domain.ChallengeStanding, 0),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.inventory.List(gctx, userID)
		if err != nil {
			log.Warn().Err(err).Msg("dashboard: inventory section failed")
			return nil
		}
		dashboard.Inventory = list.Summary
		for _, item := range list.Items {
			if item.ExpirationStatus == domain.ExpirationCritical || item.ExpirationStatus == domain.ExpirationWarning {
				dashboard.ExpiringSoon = append(dashboard.ExpiringSoon, item)
			}
		}
		return nil
	})

	g.Go(func() error {
		records, err := s.streaks.Streaks(gctx, userID)
		if err != nil {
			log.Warn().Err(err).Msg("dashboard: streaks section failed")
			return nil
		}
		dashboard.Streaks = records
		return nil
	})

	g.Go(func() error {
		overview, err := s.challenges.ListForUser(gctx, userID)
		if err != nil {
			log.Warn().Err(err).Msg("dashboard: challenges section failed")
			return nil
		}
		dashboard.Challenges = overview.Joined
		return nil
	})

	g.Go(func() error {
		progress, err := s.goals.TodayProgress(gctx, userID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				log.Warn().Err(err).Msg("dashboard: goal section failed")
			}
			return nil
		}
		dashboard.GoalProgress = progress
		return nil
	})

	g.Go(func() error {
		count, err := s.notifications.UnreadCount(gctx, userID)
		if err != nil {
			log.Warn().Err(err).Msg("dashboard: unread count failed")
			return nil
		}
		dashboard.UnreadCount = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, userID, dashboard); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set failed")
	}

	return dashboard, nil
}
