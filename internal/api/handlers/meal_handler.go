// backend-go/internal/api/handlers/meal_handler.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/api/middleware"
	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/service"
)

const dateLayout = "2006-01-02"

type MealHandler struct {
	service *service.MealLogService
}

func NewMealHandler(service *service.MealLogService) *MealHandler {
	return &MealHandler{service: service}
}

type mealLogRequest struct {
	RecipeID *uuid.UUID `json:"recipe_id"`
	MealType string     `json:"meal_type" binding:"required"`
	EatenOn  string     `json:"eaten_on"`
	Calories float64    `json:"calories" binding:"gte=0"`
	Protein  float64    `json:"protein" binding:"gte=0"`
	Carbs    float64    `json:"carbs" binding:"gte=0"`
	Fat      float64    `json:"fat" binding:"gte=0"`
	Notes    string     `json:"notes"`
}

// parseDay accepts a calendar date, empty meaning "unset".
func parseDay(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, true
	}

	day, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false
	}

	return day, true
}

func (h *MealHandler) Create(c *gin.Context) {
	var input mealLogRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mealType, ok := domain.ParseMealType(input.MealType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal_type"})
		return
	}

	eatenOn, ok := parseDay(input.EatenOn)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eaten_on must be YYYY-MM-DD"})
		return
	}

	entry := &domain.MealLog{
		UserID:   middleware.UserID(c),
		RecipeID: input.RecipeID,
		MealType: mealType,
		EatenOn:  eatenOn,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
		Notes:    input.Notes,
	}

	created, err := h.service.Create(c.Request.Context(), entry)
	if err != nil {
		respondError(c, err, "meals: failed to log meal")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *MealHandler) List(c *gin.Context) {
	from, ok := parseDay(c.Query("from"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
		return
	}
	to, ok := parseDay(c.Query("to"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
		return
	}

	logs, err := h.service.List(c.Request.Context(), middleware.UserID(c), from, to)
	if err != nil {
		respondError(c, err, "meals: failed to list")
		return
	}

	c.JSON(http.StatusOK, logs)
}

func (h *MealHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, "meals: failed to delete")
		return
	}

	c.Status(http.StatusNoContent)
}
