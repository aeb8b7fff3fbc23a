package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"subleasend/backend/internal/models"
)

// Sentinel errors for the validation and authorization failures the handlers
// translate into 4xx responses.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateUser    = errors.New("user with this email already exists")
	ErrSelfConversation = errors.New("cannot start a conversation with yourself")
	ErrEmptyContent     = errors.New("message content cannot be empty")
	ErrNotParticipant   = errors.New("user is not a participant of this conversation")
	ErrNotRecipient     = errors.New("only the recipient can mark a message as read")
	ErrNotOwner         = errors.New("user does not own this listing")
)

type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)

	// Listings
	CreateListing(listing *models.Listing) error
	GetListing(id uint) (*models.Listing, error)
	GetListings(filters *models.ListingFilters) ([]models.Listing, error)
	GetUserListings(userID uint) ([]models.Listing, error)
	UpdateListing(id, callerID uint, updates map[string]interface{}) error
	DeleteListing(id, callerID uint) error
	SetListingAvailability(id, callerID uint, available bool) error

	// Favorites
	AddFavorite(userID, listingID uint) error
	RemoveFavorite(userID, listingID uint) error
	GetUserFavorites(userID uint) ([]models.Listing, error)
	IsFavorited(userID, listingID uint) (bool, error)

	// Messaging
	GetOrCreateConversation(callerID, otherID uint, listingID *uint) (*models.Conversation, error)
	GetConversationByID(id uint) (*models.Conversation, error)
	GetUserConversations(userID uint) ([]models.ConversationSummary, error)
	SendMessage(conversationID, senderID uint, content string) (*models.Message, error)
	GetMessages(conversationID, callerID uint) ([]models.MessageWithSender, error)
	MarkMessageRead(messageID, callerID uint) error

	// Events
	PublishMessageEvent(ev models.MessageEvent) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// Migrate creates or updates the tables for every model.
func (s *Service) Migrate() error {
	return s.DB.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Favorite{},
		&models.Conversation{},
		&models.Message{},
	)
}
