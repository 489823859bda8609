// Package session provides the key-value persistence behind cart, order and
// address state. A Store is either bound to the cookies of a single request or
// to a shared backend (memory, Redis, Postgres) scoped by a session id.
package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCorruptValue is returned when a stored value cannot be decoded by the
	// transport itself (for example a malformed cookie escape sequence).
	ErrCorruptValue = errors.New("corrupt session value")

	// ErrValueTooLarge is returned when a value does not fit the transport.
	ErrValueTooLarge = errors.New("session value too large")
)

// Store reads and writes string values by key.
type Store interface {
	// Get returns the value stored under key. ok is false when nothing is stored.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type scoped struct {
	backend Store
	prefix  string
}

// Scope returns a Store that keeps every key of sessionID apart from other
// sessions sharing the same backend.
func Scope(backend Store, sessionID string) Store {
	return &scoped{backend: backend, prefix: "session:" + sessionID + ":"}
}

func (s *scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.backend.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.backend.Set(ctx, s.prefix+key, value, ttl)
}
