// Package metadata stores the client's small key/value records (session
// tokens, cached user, storage salt) in the local database.
package metadata

import (
	"context"
)

// Repository is a byte-valued key/value table. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context, keys ...string) (map[string][]byte, error)
}
