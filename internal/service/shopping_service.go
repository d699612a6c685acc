package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pantryplan/backend-go/internal/cache"
	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

type ShoppingService struct {
	repo repository.ShoppingListRepository
	dash cache.DashboardCache
}

func NewShoppingService(repo repository.ShoppingListRepository, dash cache.DashboardCache) *ShoppingService {
	if dash == nil {
		dash = cache.NewNoopDashboardCache()
	}
	return &ShoppingService{repo: repo, dash: dash}
}

func (s *ShoppingService) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.dash.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Msg("shopping: dashboard cache invalidation failed")
	}
}

// attachProgress derives the checked/total pair onto a list payload.
func attachProgress(list *domain.ShoppingList) {
	progress := domain.ProgressOf(list.Items)
	list.Progress = &progress
}

func (s *ShoppingService) Lists(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingList, error) {
	lists, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range lists {
		items, err := s.repo.ListItems(ctx, lists[i].ID)
		if err != nil {
			return nil, err
		}
		lists[i].Items = items
		attachProgress(&lists[i])
	}

	return lists, nil
}

func (s *ShoppingService) Get(ctx context.Context, userID, listID uuid.UUID) (*domain.ShoppingList, error) {
	list, err := s.repo.GetByID(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	attachProgress(list)

	return list, nil
}

func (s *ShoppingService) Create(ctx context.Context, list *domain.ShoppingList) (*domain.ShoppingList, error) {
	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}
	if err := s.repo.Create(ctx, list); err != nil {
		return nil, err
	}
	attachProgress(list)
	s.invalidate(ctx, list.UserID)

	return list, nil
}

func (s *ShoppingService) Rename(ctx context.Context, userID, listID uuid.UUID, name string) (*domain.ShoppingList, error) {
	if err := s.repo.Rename(ctx, userID, listID, name); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)

	return s.Get(ctx, userID, listID)
}

func (s *ShoppingService) Delete(ctx context.Context, userID, listID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, listID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)

	return nil
}

// AddItem appends an item to a list the user owns. Ownership is checked by
// loading the list first, so foreign lists surface as not found.
func (s *ShoppingService) AddItem(ctx context.Context, userID, listID uuid.UUID, item *domain.ShoppingListItem) (*domain.ShoppingListItem, error) {
	if _, err := s.repo.GetByID(ctx, userID, listID); err != nil {
		return nil, err
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.ListID = listID
	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)

	return item, nil
}

func (s *ShoppingService) UpdateItem(ctx context.Context, userID, listID uuid.UUID, item *domain.ShoppingListItem) (*domain.ShoppingListItem, error) {
	if _, err := s.repo.GetByID(ctx, userID, listID); err != nil {
		return nil, err
	}

	item.ListID = listID
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)

	return item, nil
}

func (s *ShoppingService) DeleteItem(ctx context.Context, userID, listID, itemID uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, userID, listID); err != nil {
		return err
	}

	if err := s.repo.DeleteItem(ctx, listID, itemID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)

	return nil
}

// ToggleItem flips an item's checked flag and returns the item together with
// the list's recomputed progress.
func (s *ShoppingService) ToggleItem(ctx context.Context, userID, listID, itemID uuid.UUID) (*domain.ShoppingListItem, *domain.ListProgress, error) {
	if _, err := s.repo.GetByID(ctx, userID, listID); err != nil {
		return nil, nil, err
	}

	item, err := s.repo.ToggleItem(ctx, listID, itemID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.repo.ListItems(ctx, listID)
	if err != nil {
		return nil, nil, err
	}
	progress := domain.ProgressOf(items)
	s.invalidate(ctx, userID)

	return item, &progress, nil
}
