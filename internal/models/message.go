package models

import "time"

// Message belongs to exactly one conversation. Rows are cascade-deleted with
// their conversation and with their sender.
type Message struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ConversationID uint       `gorm:"not null;index" json:"conversationId"`
	SenderID       uint       `gorm:"not null;index" json:"senderId"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time  `json:"createdAt"`
	ReadAt         *time.Time `json:"readAt"`
}

// MessageWithSender annotates a message with its sender's user record for
// the conversation view.
type MessageWithSender struct {
	Message
	Sender User `json:"sender"`
}

// MessageEvent is the payload published on the message event channel after a
// message has been persisted. The realtime hub routes it to the recipient.
type MessageEvent struct {
	MessageID      uint      `json:"message_id"`
	ConversationID uint      `json:"conversation_id"`
	SenderID       uint      `json:"sender_id"`
	RecipientID    uint      `json:"recipient_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
