// backend-go/internal/api/handlers/shopping_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantryplan/backend-go/internal/api/middleware"
	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/service"
)

type ShoppingHandler struct {
	service *service.ShoppingService
}

func NewShoppingHandler(service *service.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{service: service}
}

type shoppingItemRequest struct {
	IngredientName string  `json:"ingredient_name" binding:"required"`
	Quantity       float64 `json:"quantity" binding:"gte=0"`
	Unit           string  `json:"unit"`
	Category       string  `json:"category"`
}

func (r *shoppingItemRequest) toItem() domain.ShoppingListItem {
	return domain.ShoppingListItem{
		IngredientName: r.IngredientName,
		Quantity:       r.Quantity,
		Unit:           r.Unit,
		Category:       r.Category,
	}
}

// updateItemRequest replaces the whole row, so it also carries the checked
// flag and position that create requests leave to the service.
type updateItemRequest struct {
	IngredientName string  `json:"ingredient_name" binding:"required"`
	Quantity       float64 `json:"quantity" binding:"gte=0"`
	Unit           string  `json:"unit"`
	Category       string  `json:"category"`
	Checked        bool    `json:"checked"`
	Position       int     `json:"position" binding:"gte=0"`
}

type createListRequest struct {
	Name  string                `json:"name" binding:"required"`
	Items []shoppingItemRequest `json:"items" binding:"dive"`
}

type renameListRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *ShoppingHandler) List(c *gin.Context) {
	lists, err := h.service.Lists(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "shopping: failed to list")
		return
	}

	c.JSON(http.StatusOK, lists)
}

func (h *ShoppingHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	list, err := h.service.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err, "shopping: failed to fetch list")
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ShoppingHandler) Create(c *gin.Context) {
	var input createListRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list := &domain.ShoppingList{
		UserID: middleware.UserID(c),
		Name:   input.Name,
	}
	for _, item := range input.Items {
		list.Items = append(list.Items, item.toItem())
	}

	created, err := h.service.Create(c.Request.Context(), list)
	if err != nil {
		respondError(c, err, "shopping: failed to create list")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ShoppingHandler) Rename(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input renameListRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.service.Rename(c.Request.Context(), middleware.UserID(c), id, input.Name)
	if err != nil {
		respondError(c, err, "shopping: failed to rename list")
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ShoppingHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, "shopping: failed to delete list")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ShoppingHandler) AddItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input shoppingItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := input.toItem()
	created, err := h.service.AddItem(c.Request.Context(), middleware.UserID(c), id, &item)
	if err != nil {
		respondError(c, err, "shopping: failed to add item")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ShoppingHandler) UpdateItem(c *gin.Context) {
	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "itemID")
	if !ok {
		return
	}

	var input updateItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := domain.ShoppingListItem{
		ID:             itemID,
		IngredientName: input.IngredientName,
		Quantity:       input.Quantity,
		Unit:           input.Unit,
		Category:       input.Category,
		Checked:        input.Checked,
		Position:       input.Position,
	}

	updated, err := h.service.UpdateItem(c.Request.Context(), middleware.UserID(c), listID, &item)
	if err != nil {
		respondError(c, err, "shopping: failed to update item")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ShoppingHandler) DeleteItem(c *gin.Context) {
	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "itemID")
	if !ok {
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), middleware.UserID(c), listID, itemID); err != nil {
		respondError(c, err, "shopping: failed to delete item")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ShoppingHandler) ToggleItem(c *gin.Context) {
	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "itemID")
	if !ok {
		return
	}

	item, progress, err := h.service.ToggleItem(c.Request.Context(), middleware.UserID(c), listID, itemID)
	if err != nil {
		respondError(c, err, "shopping: failed to toggle item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "progress": progress})
}
