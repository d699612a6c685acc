package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/domain"
)

// RecipeFilter narrows recipe listings. Zero value lists everything.
type RecipeFilter struct {
	Tag    string
	Green  bool
	Search string
	Limit  int
	Offset int
}

type RecipeRepository interface {
	List(ctx context.Context, filter RecipeFilter) ([]domain.Recipe, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error)
	Create(ctx context.Context, recipe *domain.Recipe) error
	Update(ctx context.Context, recipe *domain.Recipe) error
	Delete(ctx context.Context, authorID, id uuid.UUID) error
	SetImageKey(ctx context.Context, authorID, id uuid.UUID, key string) error
}
