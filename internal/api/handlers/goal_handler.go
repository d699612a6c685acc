// backend-go/internal/api/handlers/goal_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantryplan/backend-go/internal/api/middleware"
	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/service"
)

type GoalHandler struct {
	service *service.GoalService
}

func NewGoalHandler(service *service.GoalService) *GoalHandler {
	return &GoalHandler{service: service}
}

type goalRequest struct {
	Calories float64 `json:"calories" binding:"required,gt=0"`
	Protein  float64 `json:"protein" binding:"gte=0"`
	Carbs    float64 `json:"carbs" binding:"gte=0"`
	Fat      float64 `json:"fat" binding:"gte=0"`
}

func (h *GoalHandler) Get(c *gin.Context) {
	goal, err := h.service.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "goals: failed to fetch")
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Upsert(c *gin.Context) {
	var input goalRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal := &domain.NutrientGoal{
		UserID:   middleware.UserID(c),
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
	}

	saved, err := h.service.Upsert(c.Request.Context(), goal)
	if err != nil {
		respondError(c, err, "goals: failed to save")
		return
	}

	c.JSON(http.StatusOK, saved)
}

func (h *GoalHandler) Progress(c *gin.Context) {
	progress, err := h.service.TodayProgress(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "goals: failed to compute progress")
		return
	}

	c.JSON(http.StatusOK, progress)
}
