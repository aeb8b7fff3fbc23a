package models

import "time"

// Favorite associates a user with a saved listing. Uniqueness of the
// (user, listing) pair is enforced by a composite index; add/remove are
// idempotent at the storage layer.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_listing" json:"userId"`
	ListingID uint      `gorm:"not null;uniqueIndex:idx_user_listing" json:"listingId"`
	CreatedAt time.Time `json:"createdAt"`
}
