package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Key prefixes keep page payloads and sessions apart in one Redis database
const (
	pagePrefix    = "page:"
	sessionPrefix = "session:"
)

// Config holds Redis configuration
type Config struct {
	URL string
}

// Store holds the Redis connection behind the page cache and session store
type Store struct {
	client *redis.Client
	logger *slog.Logger
}

// NewStore creates a new Redis-backed store
func NewStore(cfg Config, logger *slog.Logger) (*Store, error) {
	// Parse Redis URL
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis",
		slog.String("addr", opts.Addr),
	)

	return &Store{
		client: client,
		logger: logger,
	}, nil
}

// Pages returns the page cache view of the store
func (s *Store) Pages() PageCache {
	return &pageCache{store: s}
}

// Sessions returns the session store view of the store
func (s *Store) Sessions() SessionStore {
	return &sessionStore{store: s}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	s.logger.Info("closing Redis connection")
	return s.client.Close()
}

// Health checks if Redis is healthy
func (s *Store) Health(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis health check failed: %w", err)
	}
	return nil
}

// pageCache implements PageCache on the shared Redis connection
type pageCache struct {
	store *Store
}

// Get returns the cached payload for path, or ErrMiss
func (c *pageCache) Get(ctx context.Context, path string) ([]byte, error) {
	data, err := c.store.client.Get(ctx, pagePrefix+path).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached page: %w", err)
	}
	return data, nil
}

// Set stores the payload for path with the given TTL
func (c *pageCache) Set(ctx context.Context, path string, payload []byte, ttl time.Duration) error {
	if err := c.store.client.Set(ctx, pagePrefix+path, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache page: %w", err)
	}
	return nil
}

// Invalidate drops the cached payload for path
func (c *pageCache) Invalidate(ctx context.Context, path string) error {
	if err := c.store.client.Del(ctx, pagePrefix+path).Err(); err != nil {
		return fmt.Errorf("failed to invalidate page: %w", err)
	}

	c.store.logger.Debug("page invalidated",
		slog.String("path", path),
	)

	return nil
}

// sessionStore implements SessionStore on the shared Redis connection
type sessionStore struct {
	store *Store
}

// Create stores a new session for userID and returns its token
func (s *sessionStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	token := uuid.NewString()

	if err := s.store.client.Set(ctx, sessionPrefix+token, userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Get returns the user ID behind token, or ErrNoSession
func (s *sessionStore) Get(ctx context.Context, token string) (string, error) {
	userID, err := s.store.client.Get(ctx, sessionPrefix+token).Result()
	if err == redis.Nil {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	return userID, nil
}

// Delete removes the session behind token
func (s *sessionStore) Delete(ctx context.Context, token string) error {
	if err := s.store.client.Del(ctx, sessionPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
