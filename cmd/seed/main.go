package main

import (
	"log"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"subleasend/backend/internal/auth"
	"subleasend/backend/internal/config"
	"subleasend/backend/internal/models"
	"subleasend/backend/internal/storage"
)

// Seeds the database with the sample listings used for local development.
// Bails if listings already exist.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	s := storage.NewStorageService(db, nil) // No redis needed for the seed CLI

	if err := s.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var count int64
	if err := db.Model(&models.Listing{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count listings: %v", err)
	}
	if count > 0 {
		log.Printf("Database already has %d listings, nothing to do.", count)
		return
	}

	owner, err := seedUser(s)
	if err != nil {
		log.Fatalf("Failed to create seed user: %v", err)
	}

	listings := sampleListings(owner.ID)
	for i := range listings {
		if err := s.CreateListing(&listings[i]); err != nil {
			log.Fatalf("Failed to seed listing %q: %v", listings[i].Title, err)
		}
	}

	log.Printf("Database seeded successfully with %d listings.", len(listings))
}

func seedUser(s *storage.Service) (*models.User, error) {
	if user, err := s.GetUserByEmail("housing.office@nd.edu"); err == nil {
		return user, nil
	}

	hash, err := auth.HashPassword("changeme-seed")
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        "housing.office@nd.edu",
		Name:         "Housing Office",
		PasswordHash: hash,
	}
	if err := s.CreateUser(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func sampleListings(ownerID uint) []models.Listing {
	return []models.Listing{
		{
			UserID:        ownerID,
			Title:         "Cozy 2BR Near Campus - Spring Sublease",
			Description:   "Beautiful 2-bedroom apartment just 0.5 miles from Notre Dame campus. Fully furnished with modern amenities. Perfect for students looking for a comfortable living space during spring semester.",
			Price:         "1200",
			Bedrooms:      2,
			Bathrooms:     1.5,
			Address:       "123 Notre Dame Avenue, South Bend, IN 46556",
			Latitude:      41.7021,
			Longitude:     -86.2367,
			DistanceToND:  0.5,
			Furnished:     true,
			AvailableFrom: "2025-01-15",
			AvailableTo:   "2025-05-15",
			Amenities:     models.StringList{"WiFi", "Parking", "AC", "Laundry", "Dishwasher"},
			Images: models.StringList{
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800&h=600&fit=crop&crop=center",
				"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=800&h=600&fit=crop&crop=center",
			},
			ContactEmail: "student1@nd.edu",
			ContactPhone: "(574) 123-4567",
			IsAvailable:  true,
		},
		{
			UserID:        ownerID,
			Title:         "Modern Studio Apartment - Downtown",
			Description:   "Stylish studio apartment in downtown South Bend. Recently renovated with high-end finishes. Great for graduate students or those who prefer city living.",
			Price:         "950",
			Bedrooms:      1,
			Bathrooms:     1,
			Address:       "456 Main Street, South Bend, IN 46601",
			Latitude:      41.6764,
			Longitude:     -86.2520,
			DistanceToND:  2.1,
			Furnished:     false,
			AvailableFrom: "2025-02-01",
			AvailableTo:   "2025-08-31",
			Amenities:     models.StringList{"WiFi", "AC", "Gym", "Parking"},
			Images: models.StringList{
				"https://images.unsplash.com/photo-1522771739844-6a9f6d5f14af?w=800&h=600&fit=crop&crop=center",
				"https://images.unsplash.com/photo-1484154218962-a197022b5858?w=800&h=600&fit=crop&crop=center",
			},
			ContactEmail: "gradstudent@nd.edu",
			IsAvailable:  true,
		},
		{
			UserID:        ownerID,
			Title:         "Spacious 3BR House with Yard - Eddy Street",
			Description:   "Large 3-bedroom house perfect for a group of students. Features include a big backyard for gatherings, full basement, and plenty of parking.",
			Price:         "1800",
			Bedrooms:      3,
			Bathrooms:     2,
			Address:       "789 Eddy Street, South Bend, IN 46617",
			Latitude:      41.6998,
			Longitude:     -86.2345,
			DistanceToND:  0.8,
			Furnished:     true,
			AvailableFrom: "2025-03-01",
			AvailableTo:   "2025-12-31",
			Amenities:     models.StringList{"WiFi", "Parking", "Laundry", "Yard", "Dishwasher"},
			Images: models.StringList{
				"https://images.unsplash.com/photo-1570129477492-45c003edd2be?w=800&h=600&fit=crop&crop=center",
				"https://images.unsplash.com/photo-1449844908441-8829872d2607?w=800&h=600&fit=crop&crop=center",
			},
			ContactEmail: "housemates@nd.edu",
			ContactPhone: "(574) 987-6543",
			IsAvailable:  true,
		},
		{
			UserID:        ownerID,
			Title:         "Luxury 1BR Apartment - University Commons",
			Description:   "Premium 1-bedroom apartment in the heart of University Commons. Walking distance to campus with access to all Commons amenities.",
			Price:         "1400",
			Bedrooms:      1,
			Bathrooms:     1,
			Address:       "321 University Commons, South Bend, IN 46617",
			Latitude:      41.7012,
			Longitude:     -86.2340,
			DistanceToND:  0.3,
			Furnished:     true,
			AvailableFrom: "2025-01-20",
			AvailableTo:   "2025-07-31",
			Amenities:     models.StringList{"WiFi", "AC", "Pool", "Gym", "Study Room", "Parking"},
			Images: models.StringList{
				"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800&h=600&fit=crop&crop=center",
				"https://images.unsplash.com/photo-1493809842364-78817add7ffb?w=800&h=600&fit=crop&crop=center",
			},
			ContactEmail: "luxury.living@nd.edu",
			ContactPhone: "(574) 555-0123",
			IsAvailable:  true,
		},
		{
			UserID:        ownerID,
			Title:         "Affordable 2BR - Perfect for Roommates",
			Description:   "Budget-friendly 2-bedroom apartment ideal for students looking to share costs. Clean, safe, and well-maintained building with on-site management.",
			Price:         "800",
			Bedrooms:      2,
			Bathrooms:     1,
			Address:       "654 Corby Boulevard, South Bend, IN 46617",
			Latitude:      41.7045,
			Longitude:     -86.2398,
			DistanceToND:  1.2,
			Furnished:     false,
			AvailableFrom: "2025-02-15",
			AvailableTo:   "2025-08-15",
			Amenities:     models.StringList{"WiFi", "Parking", "Laundry"},
			Images: models.StringList{
				"https://images.unsplash.com/photo-1494526585095-c41746248156?w=800&h=600&fit=crop&crop=center",
			},
			ContactEmail: "affordable.housing@nd.edu",
			ContactPhone: "(574) 234-5678",
			IsAvailable:  true,
		},
		{
			UserID:        ownerID,
			Title:         "Charming Duplex with Balcony - Quiet Neighborhood",
			Description:   "Lovely duplex unit in a quiet residential neighborhood. Features include a private balcony, updated kitchen, and peaceful setting perfect for studying.",
			Price:         "1100",
			Bedrooms:      2,
			Bathrooms:     1,
			Address:       "987 Napoleon Boulevard, South Bend, IN 46617",
			Latitude:      41.7089,
			Longitude:     -86.2421,
			DistanceToND:  1.5,
			Furnished:     true,
			AvailableFrom: "2025-03-15",
			AvailableTo:   "2025-09-30",
			Amenities:     models.StringList{"WiFi", "AC", "Balcony", "Parking", "Dishwasher"},
			Images: models.StringList{
				"https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=800&h=600&fit=crop&crop=center",
				"https://images.unsplash.com/photo-1558618047-3c8c76ca7d13?w=800&h=600&fit=crop&crop=center",
			},
			ContactEmail: "quiet.living@nd.edu",
			IsAvailable:  true,
		},
	}
}
