package storage

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"subleasend/backend/internal/models"
)

// CreateUser persists a new user. Returns ErrDuplicateUser when the email is
// already taken; the unique index backs this check against races.
func (s *Service) CreateUser(user *models.User) error {
	var existing models.User
	err := s.DB.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return ErrDuplicateUser
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.DB.Create(user).Error; err != nil {
		log.Printf("ERROR: Failed to create user %s: %v", user.Email, err)
		return err
	}
	return nil
}

func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
