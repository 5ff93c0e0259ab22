package persistence

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no value is stored under the key.
var ErrNotFound = errors.New("collection not found")

// Adapter is the durable storage contract for entity collections. Values
// are opaque JSON documents keyed by collection name.
type Adapter interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}
