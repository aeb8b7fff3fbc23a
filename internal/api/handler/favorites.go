package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"subleasend/backend/internal/api/middleware"
)

// AddFavorite saves a listing for the caller. Idempotent.
func (h *Handler) AddFavorite(c *gin.Context) {
	var body struct {
		ListingID uint `json:"listingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listingId is required"})
		return
	}

	// Reject saves of listings that do not exist.
	if _, err := h.Store.GetListing(body.ListingID); err != nil {
		respondStoreError(c, "favorites: get listing", err)
		return
	}

	if err := h.Store.AddFavorite(middleware.CallerID(c), body.ListingID); err != nil {
		respondStoreError(c, "favorites: add", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// RemoveFavorite unsaves a listing for the caller. Idempotent.
func (h *Handler) RemoveFavorite(c *gin.Context) {
	listingID, ok := paramID(c, "listingId")
	if !ok {
		return
	}

	if err := h.Store.RemoveFavorite(middleware.CallerID(c), listingID); err != nil {
		respondStoreError(c, "favorites: remove", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListFavorites returns the caller's favorited listings, newest first.
func (h *Handler) ListFavorites(c *gin.Context) {
	listings, err := h.Store.GetUserFavorites(middleware.CallerID(c))
	if err != nil {
		respondStoreError(c, "favorites: list", err)
		return
	}

	c.JSON(http.StatusOK, listings)
}

// CheckFavorite reports whether the caller has favorited the listing.
func (h *Handler) CheckFavorite(c *gin.Context) {
	listingID, ok := paramID(c, "listingId")
	if !ok {
		return
	}

	favorited, err := h.Store.IsFavorited(middleware.CallerID(c), listingID)
	if err != nil {
		respondStoreError(c, "favorites: check", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"isFavorited": favorited})
}
