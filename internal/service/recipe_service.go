package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
	"github.com/pantryplan/backend-go/internal/storage"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

const imageURLExpiry = 15 * time.Minute

type RecipeService struct {
	recipes repository.RecipeRepository
	storage storage.ObjectStorage
}

func NewRecipeService(recipes repository.RecipeRepository, store storage.ObjectStorage) *RecipeService {
	if store == nil {
		store = storage.NewDisabled()
	}
	return &RecipeService{recipes: recipes, storage: store}
}

// renderInstructions converts stored markdown to sanitized HTML. Rendering
// failures degrade to an empty string; the raw markdown is always present.
func renderInstructions(markdown string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(markdown), &buf); err != nil {
		log.Warn().Err(err).Msg("recipes: markdown rendering failed")
		return ""
	}

	return string(sanitizer.SanitizeBytes(buf.Bytes()))
}

// decorate fills the derived read-side fields of a recipe.
func (s *RecipeService) decorate(ctx context.Context, recipe *domain.Recipe) {
	recipe.InstructionsHTML = renderInstructions(recipe.Instructions)

	if recipe.ImageKey == nil {
		return
	}
	url, err := s.storage.PresignedURL(ctx, *recipe.ImageKey, imageURLExpiry)
	if err != nil {
		if !errors.Is(err, storage.ErrDisabled) {
			log.Warn().Err(err).Str("key", *recipe.ImageKey).Msg("recipes: failed to presign image")
		}
		return
	}
	recipe.ImageURL = url
}

func (s *RecipeService) List(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, error) {
	recipes, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	for i := range recipes {
		s.decorate(ctx, &recipes[i])
	}

	return recipes, nil
}

func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, recipe)

	return recipe, nil
}

func (s *RecipeService) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	if recipe.Servings <= 0 {
		recipe.Servings = 1
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}
	s.decorate(ctx, recipe)

	return recipe, nil
}

func (s *RecipeService) Update(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, err
	}
	s.decorate(ctx, recipe)

	return recipe, nil
}

func (s *RecipeService) Delete(ctx context.Context, authorID, id uuid.UUID) error {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.recipes.Delete(ctx, authorID, id); err != nil {
		return err
	}

	if recipe.ImageKey != nil {
		if err := s.storage.DeleteObject(ctx, *recipe.ImageKey); err != nil && !errors.Is(err, storage.ErrDisabled) {
			log.Warn().Err(err).Str("key", *recipe.ImageKey).Msg("recipes: failed to delete image")
		}
	}

	return nil
}

// UploadImage stores the image bytes and records the object key on the
// recipe. The key embeds a fresh UUID so re-uploads never collide.
func (s *RecipeService) UploadImage(ctx context.Context, authorID, recipeID uuid.UUID, filename, contentType string, data []byte) (string, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return "", err
	}
	// Ownership is settled before the upload so a rejected request cannot
	// leave an orphaned object behind.
	if recipe.AuthorID != authorID {
		return "", domain.ErrNotFound
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("recipes/%s/%s%s", recipeID, uuid.New(), ext)

	if err := s.storage.UploadObject(ctx, key, data, contentType); err != nil {
		return "", err
	}

	if err := s.recipes.SetImageKey(ctx, authorID, recipeID, key); err != nil {
		return "", err
	}

	return key, nil
}
