package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wist/backend/internal/domain"
)

func (h *Handler) ListWishlists(c *gin.Context) {
	wishlists, err := h.wishlists.List(c.Request.Context(), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlists)
}

func (h *Handler) CreateWishlist(c *gin.Context) {
	var req domain.CreateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Wishlist name is required"})
		return
	}

	wishlist, err := h.wishlists.Create(c.Request.Context(), userID(c), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wishlist)
}

func (h *Handler) GetWishlist(c *gin.Context) {
	wishlistID, ok := pathID(c, "wishlistId", "Invalid wishlist ID")
	if !ok {
		return
	}

	wishlist, err := h.wishlists.Get(c.Request.Context(), userID(c), wishlistID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlist)
}

func (h *Handler) UpdateWishlist(c *gin.Context) {
	wishlistID, ok := pathID(c, "wishlistId", "Invalid wishlist ID")
	if !ok {
		return
	}

	var req domain.UpdateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Wishlist name is required"})
		return
	}

	wishlist, err := h.wishlists.Rename(c.Request.Context(), userID(c), wishlistID, req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlist)
}

// DeleteWishlist soft-deletes a wishlist
func (h *Handler) DeleteWishlist(c *gin.Context) {
	wishlistID, ok := pathID(c, "wishlistId", "Invalid wishlist ID")
	if !ok {
		return
	}

	if err := h.wishlists.Delete(c.Request.Context(), userID(c), wishlistID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
