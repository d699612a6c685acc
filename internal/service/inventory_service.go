package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pantryplan/backend-go/internal/cache"
	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

// InventoryList is the inventory payload: classified items plus the fold.
type InventoryList struct {
	Items   []domain.InventoryItem  `json:"items"`
	Summary domain.InventorySummary `json:"summary"`
}

type InventoryService struct {
	repo repository.InventoryRepository
	dash cache.DashboardCache
	now  func() time.Time
}

func NewInventoryService(repo repository.InventoryRepository, dash cache.DashboardCache) *InventoryService {
	if dash == nil {
		dash = cache.NewNoopDashboardCache()
	}
	return &InventoryService{repo: repo, dash: dash, now: time.Now}
}

// invalidate drops the user's cached dashboard after a write.
func (s *InventoryService) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.dash.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Msg("inventory: dashboard cache invalidation failed")
	}
}

// List returns the user's classified inventory and its summary. Derived
// fields are computed here on every read; nothing is persisted.
func (s *InventoryService) List(ctx context.Context, userID uuid.UUID) (*InventoryList, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC()
	for i := range items {
		items[i].Classify(today)
	}

	return &InventoryList{
		Items:   items,
		Summary: domain.SummarizeInventory(items),
	}, nil
}

// Summary returns just the aggregated counts.
func (s *InventoryService) Summary(ctx context.Context, userID uuid.UUID) (domain.InventorySummary, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return domain.InventorySummary{}, err
	}

	return list.Summary, nil
}

// ExpiringSoon returns the items in the critical or warning buckets.
func (s *InventoryService) ExpiringSoon(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	soon := make([]domain.InventoryItem, 0)
	for _, item := range list.Items {
		if item.ExpirationStatus == domain.ExpirationCritical || item.ExpirationStatus == domain.ExpirationWarning {
			soon = append(soon, item)
		}
	}

	return soon, nil
}

// LowStock returns the items at or below their configured minimum.
func (s *InventoryService) LowStock(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	low := make([]domain.InventoryItem, 0)
	for _, item := range list.Items {
		if item.IsLowStock {
			low = append(low, item)
		}
	}

	return low, nil
}

// Add applies the merge rule: a row with the same ingredient and location
// absorbs the added quantity, otherwise a new row is inserted. The merged row
// keeps its own expiration and minimum; only quantity moves.
func (s *InventoryService) Add(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	existing, err := s.repo.FindMatch(ctx, item.UserID, item.IngredientName, item.Location)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Quantity += item.Quantity
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		existing.Classify(s.now().UTC())
		s.invalidate(ctx, item.UserID)

		return existing, nil
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	item.Classify(s.now().UTC())
	s.invalidate(ctx, item.UserID)

	return item, nil
}

// Update rewrites an item the user owns.
func (s *InventoryService) Update(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	item.Classify(s.now().UTC())
	s.invalidate(ctx, item.UserID)

	return item, nil
}

// Delete removes an item the user owns.
func (s *InventoryService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, itemID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)

	return nil
}
