// backend-go/internal/domain/models.go
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents an account. The password hash never serializes.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Ingredient is a catalog entry inventory rows and shopping items reference.
type Ingredient struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category,omitempty" db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// GreenTags are the recipe tags that mark a recipe as sustainable. A meal of
// a recipe carrying any of them counts toward green metrics.
var GreenTags = []string{"green", "sustainable", "eco-friendly"}

// Recipe represents a dish with per-serving nutrients. Instructions are
// stored as markdown; read payloads carry sanitized rendered HTML alongside.
type Recipe struct {
	ID           uuid.UUID `json:"id" db:"id"`
	AuthorID     uuid.UUID `json:"author_id" db:"author_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description,omitempty" db:"description"`
	Instructions string    `json:"instructions" db:"instructions"`
	Tags         []string  `json:"tags" db:"-"`
	Servings     int       `json:"servings" db:"servings"`
	Calories     float64   `json:"calories" db:"calories"`
	Protein      float64   `json:"protein" db:"protein"`
	Carbs        float64   `json:"carbs" db:"carbs"`
	Fat          float64   `json:"fat" db:"fat"`
	ImageKey     *string   `json:"image_key,omitempty" db:"image_key"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	// Derived on read.
	InstructionsHTML string `json:"instructions_html,omitempty" db:"-"`
	ImageURL         string `json:"image_url,omitempty" db:"-"`
}

// IsGreen reports whether the recipe carries a sustainability tag.
func (r *Recipe) IsGreen() bool {
	for _, tag := range r.Tags {
		for _, green := range GreenTags {
			if tag == green {
				return true
			}
		}
	}

	return false
}

// MealType is the slot a meal log belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

var mealTypes = map[string]MealType{
	"breakfast": MealBreakfast,
	"lunch":     MealLunch,
	"dinner":    MealDinner,
	"snack":     MealSnack,
}

// ParseMealType returns the MealType for a given label (case-insensitive).
func ParseMealType(label string) (MealType, bool) {
	mt, ok := mealTypes[strings.ToLower(strings.TrimSpace(label))]

	return mt, ok
}

// MealLog is one logged meal. Nutrients are snapshotted at log time so later
// recipe edits cannot rewrite history.
type MealLog struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	RecipeID  *uuid.UUID `json:"recipe_id" db:"recipe_id"`
	MealType  MealType   `json:"meal_type" db:"meal_type"`
	EatenOn   time.Time  `json:"eaten_on" db:"eaten_on"`
	Calories  float64    `json:"calories" db:"calories"`
	Protein   float64    `json:"protein" db:"protein"`
	Carbs     float64    `json:"carbs" db:"carbs"`
	Fat       float64    `json:"fat" db:"fat"`
	Notes     string     `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// NutrientGoal holds a user's daily targets. One row per user.
type NutrientGoal struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Calories  float64   `json:"calories" db:"calories"`
	Protein   float64   `json:"protein" db:"protein"`
	Carbs     float64   `json:"carbs" db:"carbs"`
	Fat       float64   `json:"fat" db:"fat"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// MeetsCalorieGoal reports whether a day's consumed calories land within
// ±10% of the target. Goals without a positive target never qualify.
func MeetsCalorieGoal(consumed, target float64) bool {
	if target <= 0 {
		return false
	}

	return consumed >= target*0.9 && consumed <= target*1.1
}

// NutrientTotals is a summed nutrient snapshot over some set of meal logs.
type NutrientTotals struct {
	Calories float64 `json:"calories" db:"calories"`
	Protein  float64 `json:"protein" db:"protein"`
	Carbs    float64 `json:"carbs" db:"carbs"`
	Fat      float64 `json:"fat" db:"fat"`
}

// DailyCalories is one day's summed calorie intake.
type DailyCalories struct {
	Day      time.Time `db:"day"`
	Calories float64   `db:"calories"`
}

// NotificationType tags entries of the in-app notification feed.
type NotificationType string

const (
	NotifyExpiryWarning     NotificationType = "expiry_warning"
	NotifyLowStock          NotificationType = "low_stock"
	NotifyChallengeComplete NotificationType = "challenge_complete"
	NotifyAchievementEarned NotificationType = "achievement_earned"
)

// Notification is a stored feed entry. Delivery transports are out of scope;
// the feed is only ever read back over the API. DedupeKey deduplicates sweep
// notifications (one per item per day) and never serializes.
type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Body      string           `json:"body" db:"body"`
	Read      bool             `json:"read" db:"read"`
	DedupeKey *string          `json:"-" db:"dedupe_key"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// Platform identifies a registered device's client platform.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"
)

var platforms = map[string]Platform{
	"ios":     PlatformIOS,
	"android": PlatformAndroid,
	"web":     PlatformWeb,
}

// ParsePlatform returns the Platform for a given label (case-insensitive).
func ParsePlatform(label string) (Platform, bool) {
	p, ok := platforms[strings.ToLower(strings.TrimSpace(label))]

	return p, ok
}

// UserDevice registers a client for a future push transport.
type UserDevice struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Platform  Platform  `json:"platform" db:"platform"`
	Token     string    `json:"token" db:"token"`
	Enabled   bool      `json:"enabled" db:"enabled"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
