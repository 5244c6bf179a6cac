package metadata

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/insider/internal/cryptox"
)

var _ Repository = (*SealedRepository)(nil)

// SealedRepository encrypts values before handing them to the wrapped
// repository. Keys are stored in the clear.
type SealedRepository struct {
	inner Repository
	key   []byte
}

// NewSealedRepository wraps inner; key must be cryptox.KeySize bytes.
func NewSealedRepository(inner Repository, key []byte) (*SealedRepository, error) {
	if len(key) != cryptox.KeySize {
		return nil, fmt.Errorf("sealed repository: key must be %d bytes, got %d", cryptox.KeySize, len(key))
	}
	return &SealedRepository{inner: inner, key: key}, nil
}

func (r *SealedRepository) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := r.inner.Get(ctx, key)
	if err != nil || sealed == nil {
		return nil, err
	}
	value, err := cryptox.Open(sealed, r.key)
	if err != nil {
		return nil, fmt.Errorf("open metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SealedRepository) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := cryptox.Seal(value, r.key)
	if err != nil {
		return fmt.Errorf("seal metadata[%s]: %w", key, err)
	}
	return r.inner.Set(ctx, key, sealed)
}

func (r *SealedRepository) Delete(ctx context.Context, keys ...string) error {
	return r.inner.Delete(ctx, keys...)
}

func (r *SealedRepository) List(ctx context.Context, keys ...string) (map[string][]byte, error) {
	entries, err := r.inner.List(ctx, keys...)
	if err != nil {
		return nil, err
	}
	for k, sealed := range entries {
		value, err := cryptox.Open(sealed, r.key)
		if err != nil {
			return nil, fmt.Errorf("open metadata[%s]: %w", k, err)
		}
		entries[k] = value
	}
	return entries, nil
}
