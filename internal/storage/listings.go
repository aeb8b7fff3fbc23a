package storage

import (
	"errors"
	"log"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"subleasend/backend/internal/models"
)

// CreateListing persists a new listing owned by listing.UserID.
func (s *Service) CreateListing(listing *models.Listing) error {
	if err := s.DB.Create(listing).Error; err != nil {
		log.Printf("ERROR: Failed to create listing for user %d: %v", listing.UserID, err)
		return err
	}
	return nil
}

func (s *Service) GetListing(id uint) (*models.Listing, error) {
	var listing models.Listing
	err := s.DB.First(&listing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetListings runs the listing search. Bedrooms, bathrooms, furnished and
// distance are evaluated natively; price bounds and amenity set-containment
// are refined in memory because price is stored as a formatted decimal
// string and lexical comparison would misorder values like "9.00" vs "10.00".
// Unavailable listings never appear, regardless of filter combination.
func (s *Service) GetListings(filters *models.ListingFilters) ([]models.Listing, error) {
	q := s.DB.Where("is_available = ?", true)

	if filters != nil {
		filters.Normalize()

		if filters.Bedrooms != nil {
			q = q.Where("bedrooms >= ?", *filters.Bedrooms)
		}
		if filters.Bathrooms != nil {
			q = q.Where("bathrooms >= ?", *filters.Bathrooms)
		}
		if filters.Furnished != nil {
			q = q.Where("furnished = ?", *filters.Furnished)
		}
		if filters.DistanceMax != nil {
			q = q.Where("distance_to_nd <= ?", *filters.DistanceMax)
		}
	}

	var listings []models.Listing
	if err := q.Order("created_at DESC, id DESC").Find(&listings).Error; err != nil {
		log.Printf("ERROR: Failed to search listings: %v", err)
		return nil, err
	}

	if filters == nil {
		return listings, nil
	}

	listings = refinePrice(listings, filters.PriceMin, filters.PriceMax)
	listings = refineAmenities(listings, filters.Amenities)
	sortListings(listings, filters.Sort)

	return listings, nil
}

// refinePrice drops listings whose parsed price falls outside the inclusive
// bounds. Rows with an unparseable price are dropped outright.
func refinePrice(listings []models.Listing, min, max *float64) []models.Listing {
	if min == nil && max == nil {
		return listings
	}

	out := listings[:0]
	for _, l := range listings {
		price, err := l.PriceDecimal()
		if err != nil {
			log.Printf("ERROR: Listing %d has malformed price %q", l.ID, l.Price)
			continue
		}
		if min != nil && price.LessThan(decimal.NewFromFloat(*min)) {
			continue
		}
		if max != nil && price.GreaterThan(decimal.NewFromFloat(*max)) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// refineAmenities keeps only listings whose amenity set is a superset of the
// requested tags.
func refineAmenities(listings []models.Listing, amenities []string) []models.Listing {
	if len(amenities) == 0 {
		return listings
	}

	out := listings[:0]
	for _, l := range listings {
		if l.Amenities.ContainsAll(amenities) {
			out = append(out, l)
		}
	}
	return out
}

// sortListings re-sorts the refined result set in memory. The store already
// returned newest-first, which doubles as the tie-break for stable sorts.
func sortListings(listings []models.Listing, order string) {
	switch order {
	case models.SortPriceAsc:
		sort.SliceStable(listings, func(i, j int) bool {
			return comparePrices(listings[i], listings[j]) < 0
		})
	case models.SortPriceDesc:
		sort.SliceStable(listings, func(i, j int) bool {
			return comparePrices(listings[i], listings[j]) > 0
		})
	case models.SortDistance:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].DistanceToND < listings[j].DistanceToND
		})
	}
}

func comparePrices(a, b models.Listing) int {
	pa, errA := a.PriceDecimal()
	pb, errB := b.PriceDecimal()
	if errA != nil || errB != nil {
		return 0
	}
	return pa.Cmp(pb)
}

// GetUserListings returns every listing owned by the user, newest first,
// including ones marked unavailable.
func (s *Service) GetUserListings(userID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&listings).Error
	if err != nil {
		log.Printf("ERROR: Failed to get listings for user %d: %v", userID, err)
		return nil, err
	}
	return listings, nil
}

// UpdateListing applies a partial update. Only the owner may mutate a listing.
func (s *Service) UpdateListing(id, callerID uint, updates map[string]interface{}) error {
	listing, err := s.GetListing(id)
	if err != nil {
		return err
	}
	if listing.UserID != callerID {
		return ErrNotOwner
	}

	updates["updated_at"] = time.Now()
	if err := s.DB.Model(&models.Listing{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		log.Printf("ERROR: Failed to update listing %d: %v", id, err)
		return err
	}
	return nil
}

// DeleteListing hard-deletes a listing after the ownership check.
func (s *Service) DeleteListing(id, callerID uint) error {
	listing, err := s.GetListing(id)
	if err != nil {
		return err
	}
	if listing.UserID != callerID {
		return ErrNotOwner
	}

	if err := s.DB.Delete(&models.Listing{}, id).Error; err != nil {
		log.Printf("ERROR: Failed to delete listing %d: %v", id, err)
		return err
	}
	return nil
}

// SetListingAvailability is the soft-delete path: flipping is_available off
// removes the listing from search results while preserving the row.
func (s *Service) SetListingAvailability(id, callerID uint, available bool) error {
	listing, err := s.GetListing(id)
	if err != nil {
		return err
	}
	if listing.UserID != callerID {
		return ErrNotOwner
	}

	return s.DB.Model(&models.Listing{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_available": available,
			"updated_at":   time.Now(),
		}).Error
}
