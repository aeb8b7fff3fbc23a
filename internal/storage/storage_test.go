package storage_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"subleasend/backend/internal/models"
	"subleasend/backend/internal/storage"
)

// newTestStore opens a fresh in-memory sqlite database per test. The named
// shared-cache DSN keeps every pooled connection on the same database.
func newTestStore(t *testing.T) *storage.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s := storage.NewStorageService(db, nil)
	require.NoError(t, s.Migrate())
	return s
}

func createUser(t *testing.T, s *storage.Service, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Name: "Test Student", PasswordHash: "irrelevant"}
	require.NoError(t, s.CreateUser(user))
	return user
}

// newListing builds a valid listing with sane defaults; tests override the
// fields they care about.
func newListing(ownerID uint, title, price string) models.Listing {
	return models.Listing{
		UserID:        ownerID,
		Title:         title,
		Description:   "A place to live",
		Price:         price,
		Bedrooms:      2,
		Bathrooms:     1,
		Address:       "123 Notre Dame Avenue",
		Latitude:      41.70,
		Longitude:     -86.23,
		DistanceToND:  1.0,
		AvailableFrom: "2025-01-15",
		AvailableTo:   "2025-05-15",
		Amenities:     models.StringList{"WiFi"},
		Images:        models.StringList{"https://example.com/img.jpg"},
		ContactEmail:  "owner@nd.edu",
		IsAvailable:   true,
	}
}

func createListing(t *testing.T, s *storage.Service, l models.Listing) *models.Listing {
	t.Helper()
	require.NoError(t, s.CreateListing(&l))
	return &l
}

// at gives deterministic creation timestamps for ordering assertions.
func at(daysAgo int) time.Time {
	return time.Now().Add(-time.Duration(daysAgo) * 24 * time.Hour)
}
