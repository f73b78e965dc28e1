// File: services/assistant/history.go
package assistant

import (
	"context"
	"encoding/json"
	"time"

	"lengolf/models"

	"github.com/go-redis/redis/v8"
)

const conversationPrefix = "conv:msgs:"

// ConversationStore persists per-conversation message history between turns.
type ConversationStore interface {
	Get(ctx context.Context, conversationID string) ([]models.Message, error)
	Append(ctx context.Context, conversationID string, msgs ...models.Message) error
}

// RedisConversationStore keeps message history in Redis with a TTL.
type RedisConversationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisConversationStore(client *redis.Client, ttl time.Duration) *RedisConversationStore {
	return &RedisConversationStore{client: client, ttl: ttl}
}

func (s *RedisConversationStore) Get(ctx context.Context, conversationID string) ([]models.Message, error) {
	key := conversationPrefix + conversationID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var msgs []models.Message
	if err := json.Unmarshal([]byte(data), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *RedisConversationStore) Append(ctx context.Context, conversationID string, msgs ...models.Message) error {
	existing, err := s.Get(ctx, conversationID)
	if err != nil {
		return err
	}
	existing = append(existing, msgs...)
	b, err := json.Marshal(existing)
	if err != nil {
		return err
	}
	key := conversationPrefix + conversationID
	return s.client.Set(ctx, key, b, s.ttl).Err()
}
