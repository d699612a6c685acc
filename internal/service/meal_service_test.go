package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/domain"
)

func TestMealCreateSnapshotsRecipeNutrients(t *testing.T) {
	userID := uuid.New()
	recipeID := uuid.New()
	recipes := &fakeRecipeRepo{recipes: []domain.Recipe{{
		ID:       recipeID,
		Title:    "Lentil Curry",
		Calories: 450,
		Protein:  30,
		Carbs:    40,
		Fat:      12,
	}}}
	meals := &fakeMealRepo{}
	cache := &fakeDashboardCache{}

	svc := NewMealLogService(meals, recipes, cache)
	svc.now = fixedNow(time.Date(2024, 3, 13, 9, 30, 0, 0, time.UTC))

	entry, err := svc.Create(context.Background(), &domain.MealLog{
		UserID:   userID,
		RecipeID: &recipeID,
		MealType: domain.MealLunch,
		Calories: 9999, // overwritten by the snapshot
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if entry.ID == uuid.Nil {
		t.Fatal("expected an id to be assigned")
	}
	if entry.Calories != 450 || entry.Protein != 30 || entry.Carbs != 40 || entry.Fat != 12 {
		t.Fatalf("nutrients not snapshotted from the recipe: %+v", entry)
	}
	if !entry.EatenOn.Equal(date(2024, 3, 13)) {
		t.Fatalf("expected eaten_on to default to today, got %v", entry.EatenOn)
	}
	if len(meals.logs) != 1 {
		t.Fatalf("expected 1 stored log, got %d", len(meals.logs))
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected 1 cache invalidation, got %d", cache.invalidations)
	}
}

func TestMealCreateKeepsFreeFormNutrients(t *testing.T) {
	userID := uuid.New()
	svc := NewMealLogService(&fakeMealRepo{}, &fakeRecipeRepo{}, nil)
	svc.now = fixedNow(date(2024, 3, 13))

	entry, err := svc.Create(context.Background(), &domain.MealLog{
		UserID:   userID,
		MealType: domain.MealSnack,
		EatenOn:  time.Date(2024, 3, 10, 20, 15, 0, 0, time.UTC),
		Calories: 321,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if entry.Calories != 321 {
		t.Fatalf("free-form calories overwritten: %v", entry.Calories)
	}
	if !entry.EatenOn.Equal(date(2024, 3, 10)) {
		t.Fatalf("expected eaten_on truncated to its day, got %v", entry.EatenOn)
	}
}

func TestMealCreateUnknownRecipeFails(t *testing.T) {
	missing := uuid.New()
	svc := NewMealLogService(&fakeMealRepo{}, &fakeRecipeRepo{}, nil)
	svc.now = fixedNow(date(2024, 3, 13))

	_, err := svc.Create(context.Background(), &domain.MealLog{
		UserID:   uuid.New(),
		RecipeID: &missing,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing recipe, got %v", err)
	}
}

func TestMealListDefaultsToTrailingWeek(t *testing.T) {
	userID := uuid.New()
	meals := &fakeMealRepo{logs: []domain.MealLog{
		{ID: uuid.New(), UserID: userID, EatenOn: date(2024, 3, 13)},
		{ID: uuid.New(), UserID: userID, EatenOn: date(2024, 3, 8)},
		{ID: uuid.New(), UserID: userID, EatenOn: date(2024, 3, 1)},
	}}

	svc := NewMealLogService(meals, &fakeRecipeRepo{}, nil)
	svc.now = fixedNow(date(2024, 3, 13))

	logs, err := svc.List(context.Background(), userID, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs in the trailing week, got %d", len(logs))
	}
}

func TestMealDelete(t *testing.T) {
	userID := uuid.New()
	logID := uuid.New()
	meals := &fakeMealRepo{logs: []domain.MealLog{{ID: logID, UserID: userID, EatenOn: date(2024, 3, 13)}}}
	cache := &fakeDashboardCache{}

	svc := NewMealLogService(meals, &fakeRecipeRepo{}, cache)

	if err := svc.Delete(context.Background(), userID, logID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(meals.logs) != 0 {
		t.Fatalf("expected log to be removed, got %d", len(meals.logs))
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected 1 cache invalidation, got %d", cache.invalidations)
	}

	if err := svc.Delete(context.Background(), userID, logID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing log, got %v", err)
	}
}
