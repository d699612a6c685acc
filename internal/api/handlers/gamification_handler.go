// backend-go/internal/api/handlers/gamification_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantryplan/backend-go/internal/api/middleware"
	"github.com/pantryplan/backend-go/internal/service"
)

// GamificationHandler serves streaks, challenges, and achievements. All three
// are recomputed from activity rows on each request; nothing here mutates
// state except joining a challenge.
type GamificationHandler struct {
	streaks      *service.StreakService
	challenges   *service.ChallengeService
	achievements *service.AchievementService
}

func NewGamificationHandler(streaks *service.StreakService, challenges *service.ChallengeService, achievements *service.AchievementService) *GamificationHandler {
	return &GamificationHandler{
		streaks:      streaks,
		challenges:   challenges,
		achievements: achievements,
	}
}

func (h *GamificationHandler) Streaks(c *gin.Context) {
	records, err := h.streaks.Streaks(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "streaks: failed to compute")
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *GamificationHandler) Challenges(c *gin.Context) {
	overview, err := h.challenges.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "challenges: failed to list")
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *GamificationHandler) JoinChallenge(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	membership, err := h.challenges.Join(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err, "challenges: failed to join")
		return
	}

	c.JSON(http.StatusCreated, membership)
}

// MyChallenges narrows the overview to the caller's memberships.
func (h *GamificationHandler) MyChallenges(c *gin.Context) {
	overview, err := h.challenges.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "challenges: failed to list memberships")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"joined":    overview.Joined,
		"completed": overview.Completed,
	})
}

func (h *GamificationHandler) Achievements(c *gin.Context) {
	views, err := h.achievements.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "achievements: failed to list")
		return
	}

	c.JSON(http.StatusOK, views)
}
