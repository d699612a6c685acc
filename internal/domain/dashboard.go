package domain

// NutrientProgress is one nutrient's consumed/target pair for today.
type NutrientProgress struct {
	Consumed float64 `json:"consumed"`
	Target   float64 `json:"target"`
	Percent  float64 `json:"percent"`
}

// GoalProgress is today's intake measured against the user's daily goal.
type GoalProgress struct {
	Date     string           `json:"date"`
	Calories NutrientProgress `json:"calories"`
	Protein  NutrientProgress `json:"protein"`
	Carbs    NutrientProgress `json:"carbs"`
	Fat      NutrientProgress `json:"fat"`
	GoalMet  bool             `json:"goal_met"`
}

// Dashboard aggregates the home-screen payload. Every field is derived from
// live rows on each read; the optional cache in front of it is never
// authoritative.
type Dashboard struct {
	Inventory    InventorySummary    `json:"inventory"`
	ExpiringSoon []InventoryItem     `json:"expiring_soon"`
	Streaks      []StreakRecord      `json:"streaks"`
	Challenges   []ChallengeStanding `json:"challenges"`
	GoalProgress *GoalProgress       `json:"goal_progress"`
	UnreadCount  int                 `json:"unread_notifications"`
}
