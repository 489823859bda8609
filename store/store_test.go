package store

import (
	"context"
	"errors"
	"time"

	"github.com/vapeonx/storefront/session"
)

// failingStore is a session.Store whose backend is unavailable.
type failingStore struct{}

var errBackendDown = errors.New("backend down")

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errBackendDown
}

func (failingStore) Set(context.Context, string, string, time.Duration) error {
	return errBackendDown
}

// rawStore seeds a memory store with a raw value.
func rawStore(key, value string) session.Store {
	kv := session.NewMemoryStore(nil)
	_ = kv.Set(context.Background(), key, value, 0)
	return kv
}
