// backend-go/internal/api/handlers/notification_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pantryplan/backend-go/internal/api/middleware"
	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/service"
)

type NotificationHandler struct {
	service *service.NotificationService
}

func NewNotificationHandler(service *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.service.List(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		respondError(c, err, "notifications: failed to list")
		return
	}

	unread, err := h.service.UnreadCount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "notifications: failed to count unread")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "unread": unread})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, "notifications: failed to mark read")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, err, "notifications: failed to mark all read")
		return
	}

	c.Status(http.StatusNoContent)
}

type deviceRequest struct {
	Platform string `json:"platform" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

func (h *NotificationHandler) RegisterDevice(c *gin.Context) {
	var input deviceRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	platform, ok := domain.ParsePlatform(input.Platform)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid platform"})
		return
	}

	device := &domain.UserDevice{
		UserID:   middleware.UserID(c),
		Platform: platform,
		Token:    input.Token,
		Enabled:  true,
	}

	registered, err := h.service.RegisterDevice(c.Request.Context(), device)
	if err != nil {
		respondError(c, err, "notifications: failed to register device")
		return
	}

	c.JSON(http.StatusCreated, registered)
}
