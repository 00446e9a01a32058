package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
)

const keyPrefix = "lunchlego"

// RedisManager manages planner sessions using Redis
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(redisHost, redisPort string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password:     "", // no password
		DB:           0,  // default DB
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisManagerWithClient(client), nil
}

// NewRedisManagerWithClient wraps an existing client
func NewRedisManagerWithClient(client *redis.Client) *RedisManager {
	return &RedisManager{client: client}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, sessionID)
}

func markKey(key string) string {
	return fmt.Sprintf("%s:mark:%s", keyPrefix, key)
}

// GetSession returns the stored session or a default one
func (m *RedisManager) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	data, err := m.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		s := DefaultSession(time.Now())
		return &s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

// SaveSession stores the session with a 24h TTL
func (m *RedisManager) SaveSession(ctx context.Context, sessionID string, session domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return m.client.Set(ctx, sessionKey(sessionID), data, SessionTTL).Err()
}

func (m *RedisManager) ClearSession(ctx context.Context, sessionID string) error {
	return m.client.Del(ctx, sessionKey(sessionID)).Err()
}

// MarkOnce uses SET NX so that concurrent instances agree on a single winner
func (m *RedisManager) MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return m.client.SetNX(ctx, markKey(key), time.Now().Unix(), ttl).Result()
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
