package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Period is the recurrence window of a challenge. Challenges with an explicit
// end date carry PeriodNone.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodNone  Period = ""
)

// MetricKind enumerates the activity metrics challenge and achievement
// criteria can count. Unrecognized keys parse to MetricUnknown, which always
// evaluates to zero — an intentional, visible fallback rather than an error.
type MetricKind string

const (
	MetricGreenRecipes     MetricKind = "green_recipes"
	MetricMealsLogged      MetricKind = "meals_logged"
	MetricStreakDays       MetricKind = "streak_days"
	MetricNutrientGoalDays MetricKind = "nutrient_goal_days"
	MetricUnknown          MetricKind = "unknown"
)

var metricKinds = map[string]MetricKind{
	"green_recipes":      MetricGreenRecipes,
	"meals_logged":       MetricMealsLogged,
	"streak_days":        MetricStreakDays,
	"nutrient_goal_days": MetricNutrientGoalDays,
}

// ParseMetric returns the MetricKind for a stored metric key.
func ParseMetric(key string) MetricKind {
	if kind, ok := metricKinds[strings.ToLower(strings.TrimSpace(key))]; ok {
		return kind
	}

	return MetricUnknown
}

// Challenge represents a catalog entry users can join.
type Challenge struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Metric      string     `json:"metric" db:"metric"`
	Target      int        `json:"target" db:"target"`
	Period      Period     `json:"period" db:"period"`
	EndsAt      *time.Time `json:"ends_at" db:"ends_at"`
	RewardID    *string    `json:"reward_id" db:"reward_id"`
	Active      bool       `json:"active" db:"active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// UserChallenge is the join row recording a user's participation.
type UserChallenge struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	ChallengeID uuid.UUID  `json:"challenge_id" db:"challenge_id"`
	JoinedAt    time.Time  `json:"joined_at" db:"joined_at"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
}

// Progress is a current/target pair with a display percentage. Current is
// never capped; the percentage is.
type Progress struct {
	Current    int `json:"current"`
	Target     int `json:"target"`
	Percentage int `json:"percentage"`
}

// NewProgress computes the capped percentage for a current/target pair.
func NewProgress(current, target int) Progress {
	p := Progress{Current: current, Target: target}
	if target <= 0 {
		return p
	}

	pct := int(math.Round(float64(current) / float64(target) * 100))
	if pct > 100 {
		pct = 100
	}
	p.Percentage = pct

	return p
}

// Complete reports whether the target has been reached. Completion is
// detected from live counts, never from the stored percentage.
func (p Progress) Complete() bool {
	return p.Current >= p.Target
}

// ChallengeStanding annotates a challenge with one user's state.
type ChallengeStanding struct {
	Challenge
	Joined        bool       `json:"joined"`
	Progress      Progress   `json:"progress"`
	DaysRemaining int        `json:"days_remaining"`
	JoinedAt      *time.Time `json:"joined_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// DaysRemaining computes how many whole days are left in a challenge window.
// An explicit end date wins; otherwise the period decides: weeks run out on
// Sunday, months at the calendar month's end, and open-ended challenges
// report zero.
func DaysRemaining(now time.Time, endsAt *time.Time, period Period) int {
	if endsAt != nil {
		days := int(math.Ceil(endsAt.Sub(now).Hours() / 24))
		if days < 0 {
			days = 0
		}
		return days
	}

	switch period {
	case PeriodWeek:
		return 7 - isoWeekday(now)
	case PeriodMonth:
		lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
		return lastDay - now.Day()
	default:
		return 0
	}
}

// isoWeekday maps Go's Sunday-based weekday to ISO-8601 (Monday=1, Sunday=7).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}

	return wd
}
