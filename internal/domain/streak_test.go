package domain

import (
	"testing"
	"time"
)

func TestCurrentStreakEmpty(t *testing.T) {
	if got := CurrentStreak(nil, date(2024, 1, 15)); got != 0 {
		t.Fatalf("expected 0 for no activity, got %d", got)
	}
}

func TestCurrentStreakConsecutiveRun(t *testing.T) {
	today := date(2024, 1, 15)
	dates := []time.Time{
		date(2024, 1, 15),
		date(2024, 1, 14),
		date(2024, 1, 13),
		date(2024, 1, 12),
		date(2024, 1, 11),
	}

	if got := CurrentStreak(dates, today); got != 5 {
		t.Fatalf("expected streak 5, got %d", got)
	}
}

func TestCurrentStreakBrokenByGap(t *testing.T) {
	// Missing the 13th cuts the run to the two most recent days.
	today := date(2024, 1, 15)
	dates := []time.Time{
		date(2024, 1, 15),
		date(2024, 1, 14),
		date(2024, 1, 12),
		date(2024, 1, 11),
	}

	if got := CurrentStreak(dates, today); got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}
}

func TestCurrentStreakAliveThroughYesterday(t *testing.T) {
	// No activity today yet, but yesterday's keeps the streak alive.
	today := date(2024, 1, 15)
	dates := []time.Time{
		date(2024, 1, 14),
		date(2024, 1, 13),
	}

	if got := CurrentStreak(dates, today); got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}
}

func TestCurrentStreakStale(t *testing.T) {
	today := date(2024, 1, 15)
	dates := []time.Time{
		date(2024, 1, 13),
		date(2024, 1, 12),
	}

	if got := CurrentStreak(dates, today); got != 0 {
		t.Fatalf("expected broken streak, got %d", got)
	}
}

func TestCurrentStreakDeduplicatesSameDay(t *testing.T) {
	// Three meals logged on the same day count as one day of activity.
	today := date(2024, 1, 15)
	dates := []time.Time{
		time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC),
		time.Date(2024, 1, 15, 19, 0, 0, 0, time.UTC),
		date(2024, 1, 14),
	}

	if got := CurrentStreak(dates, today); got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}
}

func TestCurrentStreakUnsortedInput(t *testing.T) {
	today := date(2024, 1, 15)
	dates := []time.Time{
		date(2024, 1, 13),
		date(2024, 1, 15),
		date(2024, 1, 14),
	}

	if got := CurrentStreak(dates, today); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestBuildStreakRaisesLongest(t *testing.T) {
	today := date(2024, 1, 15)
	dates := []time.Time{
		date(2024, 1, 15),
		date(2024, 1, 14),
		date(2024, 1, 13),
	}

	rec := BuildStreak(StreakMealLog, "Meals logged", dates, 2, today)

	if rec.Current != 3 {
		t.Fatalf("expected current 3, got %d", rec.Current)
	}
	if rec.Longest != 3 {
		t.Fatalf("expected longest raised to 3, got %d", rec.Longest)
	}
	if !rec.IsActiveToday {
		t.Fatal("expected streak active today")
	}
	if rec.AtRisk {
		t.Fatal("streak active today must not be at risk")
	}
}

func TestBuildStreakKeepsStoredLongest(t *testing.T) {
	today := date(2024, 1, 15)
	rec := BuildStreak(StreakMealLog, "Meals logged", []time.Time{date(2024, 1, 15)}, 9, today)

	if rec.Current != 1 {
		t.Fatalf("expected current 1, got %d", rec.Current)
	}
	if rec.Longest != 9 {
		t.Fatalf("expected stored longest 9 kept, got %d", rec.Longest)
	}
}

func TestBuildStreakAtRisk(t *testing.T) {
	// Last activity yesterday: streak survives but expires at midnight.
	today := date(2024, 1, 15)
	rec := BuildStreak(StreakNutrientGoal, "Goals met", []time.Time{
		date(2024, 1, 14),
		date(2024, 1, 13),
	}, 0, today)

	if rec.Current != 2 {
		t.Fatalf("expected current 2, got %d", rec.Current)
	}
	if rec.IsActiveToday {
		t.Fatal("no activity today, must not report active")
	}
	if !rec.AtRisk {
		t.Fatal("expected at-risk streak")
	}
	if rec.LastActivityDate == nil || !rec.LastActivityDate.Equal(date(2024, 1, 14)) {
		t.Fatalf("unexpected last activity date %v", rec.LastActivityDate)
	}
}

func TestBuildStreakBrokenNotAtRisk(t *testing.T) {
	today := date(2024, 1, 15)
	rec := BuildStreak(StreakGreenRecipe, "Green meals", []time.Time{date(2024, 1, 12)}, 4, today)

	if rec.Current != 0 {
		t.Fatalf("expected broken streak, got %d", rec.Current)
	}
	if rec.AtRisk {
		t.Fatal("a broken streak has nothing left to lose")
	}
	if rec.Longest != 4 {
		t.Fatalf("expected longest 4, got %d", rec.Longest)
	}
}
