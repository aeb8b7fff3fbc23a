package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"subleasend/backend/internal/api/middleware"
	"subleasend/backend/internal/models"
)

// ListConversations returns the caller's conversations with the other party,
// the scoped listing and the last message, ordered by recency.
func (h *Handler) ListConversations(c *gin.Context) {
	summaries, err := h.Store.GetUserConversations(middleware.CallerID(c))
	if err != nil {
		respondStoreError(c, "conversations: list", err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// CreateConversation resolves or lazily creates the canonical conversation
// between the caller and a counterpart, optionally scoped to a listing.
func (h *Handler) CreateConversation(c *gin.Context) {
	var body struct {
		OtherUserID uint  `json:"otherUserId" binding:"required"`
		ListingID   *uint `json:"listingId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "otherUserId is required"})
		return
	}

	if _, err := h.Store.GetUserByID(body.OtherUserID); err != nil {
		respondStoreError(c, "conversations: get other user", err)
		return
	}
	if body.ListingID != nil {
		if _, err := h.Store.GetListing(*body.ListingID); err != nil {
			respondStoreError(c, "conversations: get listing", err)
			return
		}
	}

	conv, err := h.Store.GetOrCreateConversation(middleware.CallerID(c), body.OtherUserID, body.ListingID)
	if err != nil {
		respondStoreError(c, "conversations: get or create", err)
		return
	}

	c.JSON(http.StatusOK, conv)
}

// ListMessages returns a conversation's messages in creation order; 403 when
// the caller is not a participant.
func (h *Handler) ListMessages(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	messages, err := h.Store.GetMessages(id, middleware.CallerID(c))
	if err != nil {
		respondStoreError(c, "conversations: get messages", err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// PostMessage persists a message and publishes a notification event for the
// recipient. The publish is best-effort; the message is already durable.
func (h *Handler) PostMessage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	callerID := middleware.CallerID(c)
	msg, err := h.Store.SendMessage(id, callerID, body.Content)
	if err != nil {
		respondStoreError(c, "conversations: send message", err)
		return
	}

	conv, err := h.Store.GetConversationByID(id)
	if err == nil {
		ev := models.MessageEvent{
			MessageID:      msg.ID,
			ConversationID: msg.ConversationID,
			SenderID:       msg.SenderID,
			RecipientID:    conv.OtherParticipant(callerID),
			Content:        msg.Content,
			CreatedAt:      msg.CreatedAt,
		}
		if err := h.Store.PublishMessageEvent(ev); err != nil {
			log.Printf("ERROR: Failed to publish message event for message %d: %v", msg.ID, err)
		}
	}

	c.JSON(http.StatusCreated, msg)
}

// MarkMessageRead sets the read timestamp on a message the caller received.
func (h *Handler) MarkMessageRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Store.MarkMessageRead(id, middleware.CallerID(c)); err != nil {
		respondStoreError(c, "messages: mark read", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
