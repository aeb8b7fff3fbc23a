package models

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// priceRe matches a base-10 monetary string with up to two fractional digits.
var priceRe = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// Listing is a postable housing offer. Price, latitude, longitude and the
// precomputed distance to campus are stored as SQL decimals; price stays a
// string in Go and is only ever compared after decimal parsing.
type Listing struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;index" json:"userId"`
	Title         string     `gorm:"not null" json:"title"`
	Description   string     `gorm:"not null" json:"description"`
	Price         string     `gorm:"type:decimal(10,2);not null" json:"price"`
	Bedrooms      int        `gorm:"not null" json:"bedrooms"`
	Bathrooms     float64    `gorm:"type:decimal(3,1);not null" json:"bathrooms"`
	Address       string     `gorm:"not null" json:"address"`
	Latitude      float64    `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude     float64    `gorm:"type:decimal(11,8);not null" json:"longitude"`
	DistanceToND  float64    `gorm:"type:decimal(5,2);not null" json:"distanceToND"` // miles
	Furnished     bool       `gorm:"not null;default:false" json:"furnished"`
	AvailableFrom string     `gorm:"not null" json:"availableFrom"` // ISO date string
	AvailableTo   string     `gorm:"not null" json:"availableTo"`   // ISO date string
	Amenities     StringList `gorm:"type:jsonb;not null;default:'[]'" json:"amenities"`
	Images        StringList `gorm:"type:jsonb;not null;default:'[]'" json:"images"`
	ContactEmail  string     `gorm:"not null" json:"contactEmail"`
	ContactPhone  string     `json:"contactPhone"`
	IsAvailable   bool       `gorm:"not null;default:true" json:"isAvailable"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ParsePrice validates a monetary string and returns its exact decimal value.
func ParsePrice(s string) (decimal.Decimal, error) {
	if !priceRe.MatchString(s) {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	return decimal.NewFromString(s)
}

// PriceDecimal parses the stored price. Listings are only persisted through
// validation, so a parse failure here indicates a corrupted row.
func (l *Listing) PriceDecimal() (decimal.Decimal, error) {
	return ParsePrice(l.Price)
}
