package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"subleasend/backend/internal/api/middleware"
	"subleasend/backend/internal/config"
	"subleasend/backend/internal/models"
)

const isoDateLayout = "2006-01-02"

// parseListingFilters reads the optional query parameters into a filter
// specification. Malformed numeric inputs are rejected; absent parameters
// mean "no constraint".
func parseListingFilters(c *gin.Context) (*models.ListingFilters, bool) {
	filters := &models.ListingFilters{Sort: c.Query("sort")}

	parseFloat := func(name string, dst **float64) bool {
		raw := c.Query(name)
		if raw == "" {
			return true
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter: " + name})
			return false
		}
		*dst = &v
		return true
	}

	if !parseFloat("priceMin", &filters.PriceMin) ||
		!parseFloat("priceMax", &filters.PriceMax) ||
		!parseFloat("bathrooms", &filters.Bathrooms) ||
		!parseFloat("distanceMax", &filters.DistanceMax) {
		return nil, false
	}

	if raw := c.Query("bedrooms"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter: bedrooms"})
			return nil, false
		}
		filters.Bedrooms = &v
	}

	if raw := c.Query("furnished"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter: furnished"})
			return nil, false
		}
		filters.Furnished = &v
	}

	if raw := c.Query("amenities"); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				filters.Amenities = append(filters.Amenities, a)
			}
		}
	}

	return filters, true
}

// ListListings runs the listing search.
func (h *Handler) ListListings(c *gin.Context) {
	filters, ok := parseListingFilters(c)
	if !ok {
		return
	}

	listings, err := h.Store.GetListings(filters)
	if err != nil {
		respondStoreError(c, "listings: search", err)
		return
	}

	c.JSON(http.StatusOK, listings)
}

// GetListing fetches a single listing by id.
func (h *Handler) GetListing(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	listing, err := h.Store.GetListing(id)
	if err != nil {
		respondStoreError(c, "listings: get", err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// MyListings returns the caller's own listings, including unavailable ones.
func (h *Handler) MyListings(c *gin.Context) {
	listings, err := h.Store.GetUserListings(middleware.CallerID(c))
	if err != nil {
		respondStoreError(c, "listings: mine", err)
		return
	}

	c.JSON(http.StatusOK, listings)
}

type listingPayload struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Price         string   `json:"price" binding:"required"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     float64  `json:"bathrooms" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	Latitude      float64  `json:"latitude" binding:"required"`
	Longitude     float64  `json:"longitude" binding:"required"`
	DistanceToND  float64  `json:"distanceToND"`
	Furnished     bool     `json:"furnished"`
	AvailableFrom string   `json:"availableFrom" binding:"required"`
	AvailableTo   string   `json:"availableTo" binding:"required"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images" binding:"required"`
	ContactEmail  string   `json:"contactEmail" binding:"required,email"`
	ContactPhone  string   `json:"contactPhone"`
}

// validate mirrors the creation-time invariants: monetary price format,
// bounded counts and coordinates, parseable calendar dates, at least one
// image, institutional contact email.
func (p *listingPayload) validate() string {
	if _, err := models.ParsePrice(p.Price); err != nil {
		return "Price must be a valid number"
	}
	if p.Bedrooms < 0 || p.Bedrooms > 10 {
		return "Bedrooms must be between 0 and 10"
	}
	if p.Bathrooms < 0.5 || p.Bathrooms > 10 {
		return "Bathrooms must be between 0.5 and 10"
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return "Latitude out of range"
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return "Longitude out of range"
	}
	if p.DistanceToND < 0 || p.DistanceToND > 50 {
		return "Distance to campus must be between 0 and 50 miles"
	}
	if _, err := time.Parse(isoDateLayout, p.AvailableFrom); err != nil {
		return "Invalid availableFrom date"
	}
	if _, err := time.Parse(isoDateLayout, p.AvailableTo); err != nil {
		return "Invalid availableTo date"
	}
	if len(p.Images) < 1 {
		return "At least one image is required"
	}
	if !strings.HasSuffix(p.ContactEmail, config.AllowedEmailDomain) {
		return "Contact email must be a Notre Dame email"
	}
	return ""
}

// CreateListing creates a listing owned by the caller.
func (h *Handler) CreateListing(c *gin.Context) {
	var payload listingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing payload"})
		return
	}
	if msg := payload.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	listing := models.Listing{
		UserID:        middleware.CallerID(c),
		Title:         payload.Title,
		Description:   payload.Description,
		Price:         payload.Price,
		Bedrooms:      payload.Bedrooms,
		Bathrooms:     payload.Bathrooms,
		Address:       payload.Address,
		Latitude:      payload.Latitude,
		Longitude:     payload.Longitude,
		DistanceToND:  payload.DistanceToND,
		Furnished:     payload.Furnished,
		AvailableFrom: payload.AvailableFrom,
		AvailableTo:   payload.AvailableTo,
		Amenities:     models.StringList(payload.Amenities),
		Images:        models.StringList(payload.Images),
		ContactEmail:  payload.ContactEmail,
		ContactPhone:  payload.ContactPhone,
		IsAvailable:   true,
	}
	if err := h.Store.CreateListing(&listing); err != nil {
		respondStoreError(c, "listings: create", err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

type listingUpdate struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	Price         *string   `json:"price"`
	Bedrooms      *int      `json:"bedrooms"`
	Bathrooms     *float64  `json:"bathrooms"`
	Address       *string   `json:"address"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	DistanceToND  *float64  `json:"distanceToND"`
	Furnished     *bool     `json:"furnished"`
	AvailableFrom *string   `json:"availableFrom"`
	AvailableTo   *string   `json:"availableTo"`
	Amenities     *[]string `json:"amenities"`
	Images        *[]string `json:"images"`
	ContactEmail  *string   `json:"contactEmail"`
	ContactPhone  *string   `json:"contactPhone"`
}

// changes builds the column map for the supplied fields, re-validating the
// ones with creation-time invariants.
func (u *listingUpdate) changes() (map[string]interface{}, string) {
	updates := map[string]interface{}{}

	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.Price != nil {
		if _, err := models.ParsePrice(*u.Price); err != nil {
			return nil, "Price must be a valid number"
		}
		updates["price"] = *u.Price
	}
	if u.Bedrooms != nil {
		updates["bedrooms"] = *u.Bedrooms
	}
	if u.Bathrooms != nil {
		updates["bathrooms"] = *u.Bathrooms
	}
	if u.Address != nil {
		updates["address"] = *u.Address
	}
	if u.Latitude != nil {
		updates["latitude"] = *u.Latitude
	}
	if u.Longitude != nil {
		updates["longitude"] = *u.Longitude
	}
	if u.DistanceToND != nil {
		updates["distance_to_nd"] = *u.DistanceToND
	}
	if u.Furnished != nil {
		updates["furnished"] = *u.Furnished
	}
	if u.AvailableFrom != nil {
		if _, err := time.Parse(isoDateLayout, *u.AvailableFrom); err != nil {
			return nil, "Invalid availableFrom date"
		}
		updates["available_from"] = *u.AvailableFrom
	}
	if u.AvailableTo != nil {
		if _, err := time.Parse(isoDateLayout, *u.AvailableTo); err != nil {
			return nil, "Invalid availableTo date"
		}
		updates["available_to"] = *u.AvailableTo
	}
	if u.Amenities != nil {
		updates["amenities"] = models.StringList(*u.Amenities)
	}
	if u.Images != nil {
		if len(*u.Images) < 1 {
			return nil, "At least one image is required"
		}
		updates["images"] = models.StringList(*u.Images)
	}
	if u.ContactEmail != nil {
		if !strings.HasSuffix(*u.ContactEmail, config.AllowedEmailDomain) {
			return nil, "Contact email must be a Notre Dame email"
		}
		updates["contact_email"] = *u.ContactEmail
	}
	if u.ContactPhone != nil {
		updates["contact_phone"] = *u.ContactPhone
	}

	return updates, ""
}

// UpdateListing applies a partial update to a listing the caller owns.
func (h *Handler) UpdateListing(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var update listingUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update payload"})
		return
	}

	updates, msg := update.changes()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := h.Store.UpdateListing(id, middleware.CallerID(c), updates); err != nil {
		respondStoreError(c, "listings: update", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteListing hard-deletes a listing the caller owns.
func (h *Handler) DeleteListing(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Store.DeleteListing(id, middleware.CallerID(c)); err != nil {
		respondStoreError(c, "listings: delete", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetListingAvailability toggles the soft-delete flag on a listing the
// caller owns.
func (h *Handler) SetListingAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body struct {
		IsAvailable *bool `json:"isAvailable" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isAvailable is required"})
		return
	}

	if err := h.Store.SetListingAvailability(id, middleware.CallerID(c), *body.IsAvailable); err != nil {
		respondStoreError(c, "listings: set availability", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(v), true
}
