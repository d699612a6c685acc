package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/domain"
)

func TestInventoryAddMergesMatchingRow(t *testing.T) {
	userID := uuid.New()
	existingID := uuid.New()
	repo := &fakeInventoryRepo{items: []domain.InventoryItem{{
		ID:             existingID,
		UserID:         userID,
		IngredientName: "Flour",
		Quantity:       2,
		Unit:           "kg",
		Location:       domain.LocationPantry,
		MinQuantity:    ptrFloat(1),
	}}}
	cache := &fakeDashboardCache{}

	svc := NewInventoryService(repo, cache)
	svc.now = fixedNow(date(2024, 3, 13))

	// Same ingredient (case-insensitive) and location folds into the row.
	got, err := svc.Add(context.Background(), &domain.InventoryItem{
		UserID:         userID,
		IngredientName: "flour",
		Quantity:       3,
		Location:       domain.LocationPantry,
	})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if got.ID != existingID {
		t.Fatalf("expected merge into existing row, got new id %s", got.ID)
	}
	if got.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %v", got.Quantity)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 stored row, got %d", len(repo.items))
	}
	if repo.items[0].Quantity != 5 {
		t.Fatalf("expected stored quantity 5, got %v", repo.items[0].Quantity)
	}

	if got.ExpirationStatus != domain.ExpirationUnknown {
		t.Fatalf("expected unknown status without expiry, got %s", got.ExpirationStatus)
	}
	if got.IsLowStock {
		t.Fatal("5 kg against a 1 kg minimum should not be low stock")
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected 1 cache invalidation, got %d", cache.invalidations)
	}
}

func TestInventoryAddInsertsWhenLocationDiffers(t *testing.T) {
	userID := uuid.New()
	existingID := uuid.New()
	repo := &fakeInventoryRepo{items: []domain.InventoryItem{{
		ID:             existingID,
		UserID:         userID,
		IngredientName: "Flour",
		Quantity:       2,
		Location:       domain.LocationPantry,
	}}}

	svc := NewInventoryService(repo, nil)
	svc.now = fixedNow(date(2024, 3, 13))

	got, err := svc.Add(context.Background(), &domain.InventoryItem{
		UserID:         userID,
		IngredientName: "Flour",
		Quantity:       1,
		Location:       domain.LocationFridge,
		ExpiresAt:      ptrTime(date(2024, 3, 15)),
	})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if got.ID == uuid.Nil || got.ID == existingID {
		t.Fatalf("expected a fresh row id, got %s", got.ID)
	}
	if len(repo.items) != 2 {
		t.Fatalf("expected 2 stored rows, got %d", len(repo.items))
	}
	if got.ExpirationStatus != domain.ExpirationCritical {
		t.Fatalf("expected critical status 2 days out, got %s", got.ExpirationStatus)
	}
	if got.DaysUntilExpiration == nil || *got.DaysUntilExpiration != 2 {
		t.Fatalf("unexpected days until expiration: %v", got.DaysUntilExpiration)
	}
}

func TestInventoryListClassifiesAndSummarizes(t *testing.T) {
	userID := uuid.New()
	repo := &fakeInventoryRepo{items: []domain.InventoryItem{
		{ID: uuid.New(), UserID: userID, IngredientName: "Yogurt", Quantity: 1, Location: domain.LocationFridge, ExpiresAt: ptrTime(date(2024, 3, 10))},
		{ID: uuid.New(), UserID: userID, IngredientName: "Milk", Quantity: 1, Location: domain.LocationFridge, ExpiresAt: ptrTime(date(2024, 3, 14))},
		{ID: uuid.New(), UserID: userID, IngredientName: "Beans", Quantity: 4, Location: domain.LocationPantry, ExpiresAt: ptrTime(date(2024, 3, 30))},
		{ID: uuid.New(), UserID: userID, IngredientName: "Rice", Quantity: 1, Location: domain.LocationPantry, MinQuantity: ptrFloat(2)},
	}}

	svc := NewInventoryService(repo, nil)
	svc.now = fixedNow(date(2024, 3, 13))

	list, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	summary := list.Summary
	if summary.Total != 4 || summary.Expired != 1 || summary.ExpiringSoon != 1 || summary.Good != 1 || summary.Unknown != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.LowStock != 1 {
		t.Fatalf("expected 1 low stock item, got %d", summary.LowStock)
	}
	if summary.ByLocation[domain.LocationFridge] != 2 || summary.ByLocation[domain.LocationPantry] != 2 {
		t.Fatalf("unexpected location counts: %+v", summary.ByLocation)
	}

	for _, item := range list.Items {
		if item.ExpirationStatus == "" {
			t.Fatalf("item %s missing classification", item.IngredientName)
		}
	}

	// Derived fields never write back to storage.
	if repo.items[0].ExpirationStatus != "" {
		t.Fatal("classification leaked into the stored row")
	}

	soon, err := svc.ExpiringSoon(context.Background(), userID)
	if err != nil {
		t.Fatalf("ExpiringSoon returned error: %v", err)
	}
	if len(soon) != 1 || soon[0].IngredientName != "Milk" {
		t.Fatalf("unexpected expiring-soon items: %+v", soon)
	}

	low, err := svc.LowStock(context.Background(), userID)
	if err != nil {
		t.Fatalf("LowStock returned error: %v", err)
	}
	if len(low) != 1 || low[0].IngredientName != "Rice" {
		t.Fatalf("unexpected low-stock items: %+v", low)
	}
}

func TestInventoryWritesInvalidateDashboard(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()
	repo := &fakeInventoryRepo{items: []domain.InventoryItem{{
		ID:             itemID,
		UserID:         userID,
		IngredientName: "Oats",
		Quantity:       1,
		Location:       domain.LocationPantry,
	}}}
	cache := &fakeDashboardCache{}

	svc := NewInventoryService(repo, cache)
	svc.now = fixedNow(date(2024, 3, 13))

	if _, err := svc.Update(context.Background(), &domain.InventoryItem{
		ID:             itemID,
		UserID:         userID,
		IngredientName: "Oats",
		Quantity:       3,
		Location:       domain.LocationPantry,
	}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected 1 invalidation after update, got %d", cache.invalidations)
	}

	if err := svc.Delete(context.Background(), userID, itemID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if cache.invalidations != 2 {
		t.Fatalf("expected 2 invalidations after delete, got %d", cache.invalidations)
	}

	// A failed write leaves the cache alone.
	if err := svc.Delete(context.Background(), userID, itemID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing row, got %v", err)
	}
	if cache.invalidations != 2 {
		t.Fatalf("expected no invalidation on failed delete, got %d", cache.invalidations)
	}
}
