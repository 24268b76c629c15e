package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wist/backend/internal/domain"
)

// ListItems handles GET /api/v1/wishlists/:wishlistId/items
func (h *Handler) ListItems(c *gin.Context) {
	wishlistID, ok := pathID(c, "wishlistId", "Invalid wishlist ID")
	if !ok {
		return
	}

	items, err := h.items.ListItems(c.Request.Context(), userID(c), wishlistID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddItem handles POST /api/v1/wishlists/:wishlistId/items.
// The URL is scraped synchronously and the stored item is returned with 201.
func (h *Handler) AddItem(c *gin.Context) {
	wishlistID, ok := pathID(c, "wishlistId", "Invalid wishlist ID")
	if !ok {
		return
	}

	var req domain.ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	item, err := h.items.AddItem(c.Request.Context(), userID(c), wishlistID, req.URL)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /api/v1/wishlists/:wishlistId/items/:itemId
func (h *Handler) UpdateItem(c *gin.Context) {
	wishlistID, ok := pathID(c, "wishlistId", "Invalid IDs")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId", "Invalid IDs")
	if !ok {
		return
	}

	var req domain.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	item, err := h.items.UpdateItem(c.Request.Context(), userID(c), wishlistID, itemID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /api/v1/wishlists/:wishlistId/items/:itemId
func (h *Handler) DeleteItem(c *gin.Context) {
	wishlistID, ok := pathID(c, "wishlistId", "Invalid IDs")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId", "Invalid IDs")
	if !ok {
		return
	}

	if err := h.items.DeleteItem(c.Request.Context(), userID(c), wishlistID, itemID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
