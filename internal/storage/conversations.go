package storage

import (
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"subleasend/backend/internal/models"
)

// conversationQuery builds the lookup for a canonical (user1, user2, listing)
// identity. Callers must pass an already normalized pair.
func (s *Service) conversationQuery(user1ID, user2ID uint, listingID *uint) *gorm.DB {
	q := s.DB.Where("user1_id = ? AND user2_id = ?", user1ID, user2ID)
	if listingID != nil {
		return q.Where("listing_id = ?", *listingID)
	}
	return q.Where("listing_id IS NULL")
}

// GetOrCreateConversation resolves the canonical conversation between the
// caller and a counterpart, optionally scoped to one listing. The same two
// users get a separate conversation per listing they discuss, plus one for
// general discussion (nil listing). The create race is closed by the unique
// index on (user1_id, user2_id, listing_id) plus a conflict-tolerant insert.
func (s *Service) GetOrCreateConversation(callerID, otherID uint, listingID *uint) (*models.Conversation, error) {
	if callerID == otherID {
		return nil, ErrSelfConversation
	}

	user1ID, user2ID := models.NormalizePair(callerID, otherID)

	var conv models.Conversation
	err := s.conversationQuery(user1ID, user2ID, listingID).First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = models.Conversation{User1ID: user1ID, User2ID: user2ID, ListingID: listingID}
	result := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&conv)
	if result.Error != nil {
		log.Printf("ERROR: Failed to create conversation (%d, %d): %v", user1ID, user2ID, result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// A concurrent caller won the insert; fetch their row.
		if err := s.conversationQuery(user1ID, user2ID, listingID).First(&conv).Error; err != nil {
			return nil, err
		}
	}

	return &conv, nil
}

func (s *Service) GetConversationByID(id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.DB.First(&conv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetUserConversations returns every conversation the user is a party to,
// annotated with the other participant, the scoped listing and the most
// recent message, ordered by recency of activity.
func (s *Service) GetUserConversations(userID uint) ([]models.ConversationSummary, error) {
	var convs []models.Conversation
	err := s.DB.Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&convs).Error
	if err != nil {
		log.Printf("ERROR: Failed to get conversations for user %d: %v", userID, err)
		return nil, err
	}

	summaries := make([]models.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary := models.ConversationSummary{Conversation: conv}

		other, err := s.GetUserByID(conv.OtherParticipant(userID))
		if err != nil {
			return nil, err
		}
		summary.OtherUser = *other

		if conv.ListingID != nil {
			listing, err := s.GetListing(*conv.ListingID)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, err
			}
			summary.Listing = listing
		}

		var last models.Message
		err = s.DB.Where("conversation_id = ?", conv.ID).
			Order("created_at DESC, id DESC").
			First(&last).Error
		if err == nil {
			summary.LastMessage = &last
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// SendMessage persists a message and bumps the conversation's updated_at to
// the message timestamp in the same transaction, so conversation recency
// always reflects the most recently persisted message.
func (s *Service) SendMessage(conversationID, senderID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	conv, err := s.GetConversationByID(conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(senderID) {
		return nil, ErrNotParticipant
	}

	msg := models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conversationID).
			Update("updated_at", msg.CreatedAt).Error
	})
	if err != nil {
		log.Printf("ERROR: Failed to send message in conversation %d: %v", conversationID, err)
		return nil, err
	}

	return &msg, nil
}

// GetMessages returns the conversation's messages in creation order, each
// annotated with the sender's user record. Only participants may read.
func (s *Service) GetMessages(conversationID, callerID uint) ([]models.MessageWithSender, error) {
	conv, err := s.GetConversationByID(conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(callerID) {
		return nil, ErrNotParticipant
	}

	var messages []models.Message
	err = s.DB.Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: Failed to get messages for conversation %d: %v", conversationID, err)
		return nil, err
	}

	// Both possible senders are the two participants.
	senders := make(map[uint]models.User, 2)
	for _, id := range []uint{conv.User1ID, conv.User2ID} {
		user, err := s.GetUserByID(id)
		if err != nil {
			return nil, err
		}
		senders[id] = *user
	}

	annotated := make([]models.MessageWithSender, 0, len(messages))
	for _, msg := range messages {
		annotated = append(annotated, models.MessageWithSender{
			Message: msg,
			Sender:  senders[msg.SenderID],
		})
	}

	return annotated, nil
}

// MarkMessageRead sets read_at on a message. Only the recipient may mark a
// message read; marking an already-read message is a no-op.
func (s *Service) MarkMessageRead(messageID, callerID uint) error {
	var msg models.Message
	err := s.DB.First(&msg, messageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	conv, err := s.GetConversationByID(msg.ConversationID)
	if err != nil {
		return err
	}
	if !conv.HasParticipant(callerID) {
		return ErrNotParticipant
	}
	if msg.SenderID == callerID {
		return ErrNotRecipient
	}
	if msg.ReadAt != nil {
		return nil
	}

	now := time.Now()
	return s.DB.Model(&models.Message{}).
		Where("id = ?", messageID).
		Update("read_at", now).Error
}
