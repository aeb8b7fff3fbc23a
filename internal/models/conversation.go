package models

import "time"

// Conversation is the canonical thread between exactly two users, optionally
// scoped to one listing. The pair is always stored normalized with
// User1ID < User2ID so that lookups are order-independent and the composite
// unique index can close the create race.
//
// Note: plain SQL unique indexes treat NULL listing_id values as distinct.
// The listing-less thread additionally relies on lookup-first plus a
// conflict-tolerant insert; PostgreSQL deployments can tighten this with a
// partial unique index (WHERE listing_id IS NULL).
type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User1ID   uint      `gorm:"not null;uniqueIndex:idx_conversation_identity" json:"user1Id"`
	User2ID   uint      `gorm:"not null;uniqueIndex:idx_conversation_identity" json:"user2Id"`
	ListingID *uint     `gorm:"uniqueIndex:idx_conversation_identity" json:"listingId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasParticipant reports whether the given user is one of the two parties.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// OtherParticipant returns the counterpart of the given user in the pair.
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// NormalizePair returns the canonical (min, max) ordering of two user ids.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// ConversationSummary is a conversation annotated for the inbox view: the
// other party, the scoped listing (if any) and the most recent message.
type ConversationSummary struct {
	Conversation
	OtherUser   User     `json:"otherUser"`
	Listing     *Listing `json:"listing,omitempty"`
	LastMessage *Message `json:"lastMessage,omitempty"`
}
