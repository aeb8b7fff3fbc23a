package storage

import (
	"encoding/json"

	"subleasend/backend/internal/models"
)

// MessageEventChannel is the Redis pub/sub channel carrying persisted-message
// events to the realtime hub.
const MessageEventChannel = "messages:events"

// PublishMessageEvent publishes a persisted message on the event channel.
// A nil Redis client (tests, the seed CLI) makes this a no-op.
func (s *Service) PublishMessageEvent(ev models.MessageEvent) error {
	if s.Redis == nil {
		return nil
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return s.Redis.Publish(s.Ctx, MessageEventChannel, string(payload)).Err()
}
