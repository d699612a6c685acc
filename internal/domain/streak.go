package domain

import (
	"sort"
	"time"
)

// StreakType identifies which activity feed a streak is computed from.
type StreakType string

const (
	StreakMealLog      StreakType = "meal_log"
	StreakNutrientGoal StreakType = "nutrient_goal"
	StreakGreenRecipe  StreakType = "green_recipe"
)

// StreakRecord is a derived view over a user's dated activity rows. It is
// recomputed on every read; only the longest value is persisted.
type StreakRecord struct {
	Type             StreakType `json:"type"`
	Label            string     `json:"label"`
	Current          int        `json:"current"`
	Longest          int        `json:"longest"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	IsActiveToday    bool       `json:"is_active_today"`
	AtRisk           bool       `json:"at_risk"`
}

// CurrentStreak computes the consecutive-day run ending at today or
// yesterday. Dates are de-duplicated per calendar day before the walk, so a
// metric counted twice on the same day cannot inflate the streak. A most
// recent activity older than yesterday breaks the streak regardless of
// earlier history.
func CurrentStreak(dates []time.Time, today time.Time) int {
	days := dedupeDays(dates)
	if len(days) == 0 {
		return 0
	}

	if daysBetween(days[0], midnight(today)) > 1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) != 1 {
			break
		}
		streak++
	}

	return streak
}

// BuildStreak assembles the full derived record for one activity feed.
// Longest is raised to the current run when the run exceeds the stored
// maximum; persisting that new maximum is the caller's job.
func BuildStreak(typ StreakType, label string, dates []time.Time, storedLongest int, today time.Time) StreakRecord {
	record := StreakRecord{
		Type:    typ,
		Label:   label,
		Current: CurrentStreak(dates, today),
	}

	record.Longest = storedLongest
	if record.Current > record.Longest {
		record.Longest = record.Current
	}

	days := dedupeDays(dates)
	if len(days) > 0 {
		last := days[0]
		record.LastActivityDate = &last
		record.IsActiveToday = daysBetween(last, midnight(today)) == 0
	}

	// At risk: the run survives only if the user acts today.
	record.AtRisk = record.Current > 0 && !record.IsActiveToday &&
		record.LastActivityDate != nil && daysBetween(*record.LastActivityDate, midnight(today)) == 1

	return record
}

// dedupeDays collapses timestamps onto unique UTC calendar days, sorted
// descending (most recent first).
func dedupeDays(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))

	for _, d := range dates {
		day := midnight(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	return days
}

// daysBetween returns the whole-day distance from a to b. Both arguments must
// already be midnights.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
