// backend-go/internal/api/handlers/inventory_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pantryplan/backend-go/internal/api/middleware"
	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/service"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

type inventoryItemRequest struct {
	IngredientName string     `json:"ingredient_name" binding:"required"`
	Quantity       float64    `json:"quantity" binding:"gte=0"`
	Unit           string     `json:"unit"`
	Location       string     `json:"location" binding:"required"`
	ExpiresAt      *time.Time `json:"expires_at"`
	MinQuantity    *float64   `json:"min_quantity"`
	Notes          string     `json:"notes"`
}

// toItem validates the enum fields and builds the domain row. Location
// strings outside the known set are rejected here; the core never validates.
func (r *inventoryItemRequest) toItem(c *gin.Context) (*domain.InventoryItem, bool) {
	location, ok := domain.ParseLocation(r.Location)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location"})
		return nil, false
	}

	if r.MinQuantity != nil && *r.MinQuantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_quantity must not be negative"})
		return nil, false
	}

	return &domain.InventoryItem{
		UserID:         middleware.UserID(c),
		IngredientName: r.IngredientName,
		Quantity:       r.Quantity,
		Unit:           r.Unit,
		Location:       location,
		ExpiresAt:      r.ExpiresAt,
		MinQuantity:    r.MinQuantity,
		Notes:          r.Notes,
	}, true
}

func (h *InventoryHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "inventory: failed to list items")
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var input inventoryItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, ok := input.toItem(c)
	if !ok {
		return
	}

	created, err := h.service.Add(c.Request.Context(), item)
	if err != nil {
		respondError(c, err, "inventory: failed to add item")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input inventoryItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, ok := input.toItem(c)
	if !ok {
		return
	}
	item.ID = id

	updated, err := h.service.Update(c.Request.Context(), item)
	if err != nil {
		respondError(c, err, "inventory: failed to update item")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, "inventory: failed to delete item")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "inventory: failed to build summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *InventoryHandler) Expiring(c *gin.Context) {
	items, err := h.service.ExpiringSoon(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "inventory: failed to list expiring items")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
