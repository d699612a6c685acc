package domain

import (
	"time"

	"github.com/google/uuid"
)

// CriteriaType selects how an achievement definition is evaluated.
type CriteriaType string

const (
	CriteriaCount     CriteriaType = "count"     // lifetime metric count reaches target
	CriteriaStreak    CriteriaType = "streak"    // current streak reaches target
	CriteriaThreshold CriteriaType = "threshold" // metric value at or above target
)

// AchievementDefinition is a static catalog entry. The ID is a stable slug so
// challenges and seeds can reference it.
type AchievementDefinition struct {
	ID           string       `json:"id" db:"id"`
	Title        string       `json:"title" db:"title"`
	Description  string       `json:"description" db:"description"`
	Icon         string       `json:"icon" db:"icon"`
	CriteriaType CriteriaType `json:"criteria_type" db:"criteria_type"`
	Metric       string       `json:"metric" db:"metric"`
	Target       int          `json:"target" db:"target"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// UserAchievement records a one-time unlock.
type UserAchievement struct {
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	AchievementID string    `json:"achievement_id" db:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at" db:"earned_at"`
}

// AchievementView merges a definition with one user's unlock state for list
// payloads.
type AchievementView struct {
	AchievementDefinition
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}
