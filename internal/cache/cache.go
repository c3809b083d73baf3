package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a page has no cached copy
var ErrMiss = errors.New("cache miss")

// ErrNoSession is returned when a session token is unknown or expired
var ErrNoSession = errors.New("session not found")

// PageCache stores rendered page payloads keyed by logical page path.
// Writes to an entity mark its page stale by dropping the cached payload.
type PageCache interface {
	// Get returns the cached payload for path, or ErrMiss
	Get(ctx context.Context, path string) ([]byte, error)

	// Set stores the payload for path with the given TTL
	Set(ctx context.Context, path string, payload []byte, ttl time.Duration) error

	// Invalidate marks path as needing fresh data on the next read
	Invalidate(ctx context.Context, path string) error
}

// SessionStore persists signed-in sessions keyed by opaque token
type SessionStore interface {
	// Create stores a new session for userID and returns its token
	Create(ctx context.Context, userID string, ttl time.Duration) (string, error)

	// Get returns the user ID behind token, or ErrNoSession
	Get(ctx context.Context, token string) (string, error)

	// Delete removes the session behind token
	Delete(ctx context.Context, token string) error
}
