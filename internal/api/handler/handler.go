package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"subleasend/backend/internal/auth"
	"subleasend/backend/internal/realtime"
	"subleasend/backend/internal/storage"
)

// Handler carries the injected dependencies for every route.
type Handler struct {
	Store  storage.Storage
	Tokens *auth.TokenManager
	Hub    *realtime.Hub
}

func NewHandler(store storage.Storage, tokens *auth.TokenManager, hub *realtime.Hub) *Handler {
	return &Handler{Store: store, Tokens: tokens, Hub: hub}
}

// respondStoreError maps storage sentinel errors onto 4xx responses and
// everything else onto a generic 500 with a server-side log line naming the
// originating operation.
func respondStoreError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, storage.ErrDuplicateUser):
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
	case errors.Is(err, storage.ErrSelfConversation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot start a conversation with yourself"})
	case errors.Is(err, storage.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content cannot be empty"})
	case errors.Is(err, storage.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this conversation"})
	case errors.Is(err, storage.ErrNotRecipient):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the recipient can mark a message as read"})
	case errors.Is(err, storage.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this listing"})
	default:
		log.Printf("ERROR: %s: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
