package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"rag_reply_bot/pkg"
)

// RedisConversationRepository stores each user's history as one JSON blob
// under conversation:<user>, refreshing the TTL on read.
type RedisConversationRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisConversationRepository connects using the REDIS_URL environment
// variable and verifies the connection.
func NewRedisConversationRepository(ctx context.Context, ttl time.Duration) (*RedisConversationRepository, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable is required")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisConversationRepository{client: client, ttl: ttl}, nil
}

func conversationKey(userID string) string {
	return "conversation:" + userID
}

func (r *RedisConversationRepository) Load(ctx context.Context, userID string) ([]pkg.ConversationMessage, error) {
	data, err := r.client.Get(ctx, conversationKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return []pkg.ConversationMessage{}, nil
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	var messages []pkg.ConversationMessage
	if err := sonic.Unmarshal([]byte(data), &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}

	// Refresh TTL
	r.client.Expire(ctx, conversationKey(userID), r.ttl)
	return messages, nil
}

func (r *RedisConversationRepository) Save(ctx context.Context, userID string, messages []pkg.ConversationMessage) error {
	data, err := sonic.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}
	return r.client.Set(ctx, conversationKey(userID), data, r.ttl).Err()
}

func (r *RedisConversationRepository) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, conversationKey(userID)).Err()
}

// HealthCheck pings Redis.
func (r *RedisConversationRepository) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the Redis connection.
func (r *RedisConversationRepository) Close() error {
	return r.client.Close()
}
