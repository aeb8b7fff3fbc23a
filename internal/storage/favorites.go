package storage

import (
	"log"

	"subleasend/backend/internal/models"
)

// AddFavorite saves a listing for the user. Idempotent: an existing
// (user, listing) pair is left untouched and no error is raised.
func (s *Service) AddFavorite(userID, listingID uint) error {
	fav := models.Favorite{UserID: userID, ListingID: listingID}
	result := s.DB.Where("user_id = ? AND listing_id = ?", userID, listingID).
		FirstOrCreate(&fav)
	if result.Error != nil {
		log.Printf("ERROR: Failed to add favorite (%d, %d): %v", userID, listingID, result.Error)
		return result.Error
	}
	return nil
}

// RemoveFavorite unsaves a listing. Removing a pair that was never favorited
// is not an error.
func (s *Service) RemoveFavorite(userID, listingID uint) error {
	return s.DB.Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&models.Favorite{}).Error
}

// GetUserFavorites returns the user's favorited listings ordered by when the
// favorite was created, newest first.
func (s *Service) GetUserFavorites(userID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.DB.Model(&models.Listing{}).
		Joins("JOIN favorites ON favorites.listing_id = listings.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC, favorites.id DESC").
		Find(&listings).Error
	if err != nil {
		log.Printf("ERROR: Failed to get favorites for user %d: %v", userID, err)
		return nil, err
	}
	return listings, nil
}

func (s *Service) IsFavorited(userID, listingID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Favorite{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
