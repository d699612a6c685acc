// backend-go/internal/api/handlers/recipe_handler.go
package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pantryplan/backend-go/internal/api/middleware"
	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
	"github.com/pantryplan/backend-go/internal/service"
)

// maxImageBytes caps recipe image uploads at 5 MiB.
const maxImageBytes = 5 << 20

type RecipeHandler struct {
	service *service.RecipeService
}

func NewRecipeHandler(service *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

type recipeRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Instructions string   `json:"instructions"`
	Tags         []string `json:"tags"`
	Servings     int      `json:"servings" binding:"gte=0"`
	Calories     float64  `json:"calories" binding:"gte=0"`
	Protein      float64  `json:"protein" binding:"gte=0"`
	Carbs        float64  `json:"carbs" binding:"gte=0"`
	Fat          float64  `json:"fat" binding:"gte=0"`
}

func (r *recipeRequest) toRecipe(c *gin.Context) *domain.Recipe {
	return &domain.Recipe{
		AuthorID:     middleware.UserID(c),
		Title:        r.Title,
		Description:  r.Description,
		Instructions: r.Instructions,
		Tags:         r.Tags,
		Servings:     r.Servings,
		Calories:     r.Calories,
		Protein:      r.Protein,
		Carbs:        r.Carbs,
		Fat:          r.Fat,
	}
}

func (h *RecipeHandler) parseFilter(c *gin.Context) repository.RecipeFilter {
	filter := repository.RecipeFilter{
		Tag:    strings.TrimSpace(c.Query("tag")),
		Green:  c.Query("green") == "true",
		Search: strings.TrimSpace(c.Query("search")),
	}

	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	return filter
}

func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.service.List(c.Request.Context(), h.parseFilter(c))
	if err != nil {
		respondError(c, err, "recipes: failed to list")
		return
	}

	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "recipes: failed to fetch")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var input recipeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), input.toRecipe(c))
	if err != nil {
		respondError(c, err, "recipes: failed to create")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input recipeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := input.toRecipe(c)
	recipe.ID = id

	updated, err := h.service.Update(c.Request.Context(), recipe)
	if err != nil {
		respondError(c, err, "recipes: failed to update")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, "recipes: failed to delete")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds the 5 MiB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	key, err := h.service.UploadImage(c.Request.Context(), middleware.UserID(c), id,
		fileHeader.Filename, contentType, data)
	if err != nil {
		respondError(c, err, "recipes: failed to upload image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_key": key})
}
