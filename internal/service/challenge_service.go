// backend-go/internal/service/challenge_service.go
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

// ChallengeOverview buckets the catalog by the caller's participation.
type ChallengeOverview struct {
	Active    []domain.ChallengeStanding `json:"active"`
	Joined    []domain.ChallengeStanding `json:"joined"`
	Completed []domain.ChallengeStanding `json:"completed"`
}

type ChallengeService struct {
	challenges    repository.ChallengeRepository
	achievements  repository.AchievementRepository
	notifications repository.NotificationRepository
	metrics       activityMetrics
	now           func() time.Time
}

func NewChallengeService(
	challenges repository.ChallengeRepository,
	meals repository.MealLogRepository,
	goals repository.NutrientGoalRepository,
	achievements repository.AchievementRepository,
	notifications repository.NotificationRepository,
) *ChallengeService {
	return &ChallengeService{
		challenges:    challenges,
		achievements:  achievements,
		notifications: notifications,
		metrics:       activityMetrics{meals: meals, goals: goals},
		now:           time.Now,
	}
}

// ListForUser returns every active challenge bucketed by the caller's state.
// Progress is recomputed from activity rows on each call; completions are
// detected here and stamped exactly once.
func (s *ChallengeService) ListForUser(ctx context.Context, userID uuid.UUID) (*ChallengeOverview, error) {
	today := s.now().UTC()

	challenges, err := s.challenges.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	memberships, err := s.challenges.Memberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	byChallenge := make(map[uuid.UUID]domain.UserChallenge, len(memberships))
	for _, m := range memberships {
		byChallenge[m.ChallengeID] = m
	}

	overview := &ChallengeOverview{
		Active:    make([]domain.ChallengeStanding, 0),
		Joined:    make([]domain.ChallengeStanding, 0),
		Completed: make([]domain.ChallengeStanding, 0),
	}

	for _, ch := range challenges {
		standing := domain.ChallengeStanding{
			Challenge:     ch,
			Progress:      domain.NewProgress(0, ch.Target),
			DaysRemaining: domain.DaysRemaining(today, ch.EndsAt, ch.Period),
		}

		membership, joined := byChallenge[ch.ID]
		if !joined {
			overview.Active = append(overview.Active, standing)
			continue
		}

		standing.Joined = true
		joinedAt := membership.JoinedAt
		standing.JoinedAt = &joinedAt
		standing.CompletedAt = membership.CompletedAt
		standing.Progress = domain.NewProgress(s.metricCount(ctx, userID, ch, membership.JoinedAt, today), ch.Target)

		if standing.CompletedAt == nil && standing.Progress.Complete() {
			standing.CompletedAt = s.finishChallenge(ctx, userID, ch, membership, today)
		}

		if standing.CompletedAt != nil {
			overview.Completed = append(overview.Completed, standing)
		} else {
			overview.Joined = append(overview.Joined, standing)
		}
	}

	return overview, nil
}

// Join enrolls the user. Re-joining surfaces domain.ErrAlreadyJoined.
func (s *ChallengeService) Join(ctx context.Context, userID, challengeID uuid.UUID) (*domain.UserChallenge, error) {
	challenge, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !challenge.Active {
		return nil, domain.ErrNotFound
	}

	membership := &domain.UserChallenge{
		ID:          uuid.New(),
		UserID:      userID,
		ChallengeID: challengeID,
	}
	if err := s.challenges.Join(ctx, membership); err != nil {
		return nil, err
	}

	return membership, nil
}

// metricCount dispatches on the challenge's parsed metric kind. A failing
// count degrades to zero with a logged warning instead of failing the read;
// unknown metrics count zero as well.
func (s *ChallengeService) metricCount(ctx context.Context, userID uuid.UUID, ch domain.Challenge, joinedAt, today time.Time) int {
	kind := domain.ParseMetric(ch.Metric)
	if kind == domain.MetricUnknown {
		log.Warn().Str("metric", ch.Metric).Str("challenge", ch.Title).Msg("challenges: unknown metric counts zero")
		return 0
	}

	from, to := metricWindow(ch, joinedAt, today)
	count, err := s.metrics.countIn(ctx, userID, kind, from, to, today)
	if err != nil {
		log.Warn().Err(err).Str("metric", ch.Metric).Msg("challenges: metric query failed, counting zero")
		return 0
	}

	return count
}

// finishChallenge stamps the completion once and fires its side effects.
// Returns the completion time, or nil when another request won the race.
func (s *ChallengeService) finishChallenge(ctx context.Context, userID uuid.UUID, ch domain.Challenge, membership domain.UserChallenge, at time.Time) *time.Time {
	stamped, err := s.challenges.MarkCompleted(ctx, membership.ID, at)
	if err != nil {
		log.Warn().Err(err).Str("challenge", ch.Title).Msg("challenges: failed to stamp completion")
		return nil
	}
	if !stamped {
		return nil
	}

	if ch.RewardID != nil {
		if _, err := s.achievements.Unlock(ctx, userID, *ch.RewardID, at); err != nil {
			log.Warn().Err(err).Str("achievement", *ch.RewardID).Msg("challenges: failed to unlock reward")
		}
	}

	notification := &domain.Notification{
		ID:     uuid.New(),
		UserID: userID,
		Type:   domain.NotifyChallengeComplete,
		Title:  "Challenge complete",
		Body:   fmt.Sprintf("You finished %q.", ch.Title),
	}
	if _, err := s.notifications.Create(ctx, notification); err != nil {
		log.Warn().Err(err).Str("challenge", ch.Title).Msg("challenges: failed to append completion notification")
	}

	return &at
}

// metricWindow bounds metric counting. Periodic challenges count the current
// calendar window; explicit-end challenges count from join to the end date;
// open-ended challenges count everything since joining.
func metricWindow(ch domain.Challenge, joinedAt, today time.Time) (time.Time, time.Time) {
	to := dayOf(today)

	switch ch.Period {
	case domain.PeriodWeek:
		from := to.AddDate(0, 0, -(isoWeekdayOf(to) - 1))
		return from, to
	case domain.PeriodMonth:
		from := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
		return from, to
	}

	from := dayOf(joinedAt)
	if ch.EndsAt != nil && ch.EndsAt.Before(to) {
		to = dayOf(*ch.EndsAt)
	}

	return from, to
}
