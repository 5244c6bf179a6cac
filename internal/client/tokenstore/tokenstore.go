// Package tokenstore persists the signed-in session (access token, refresh
// token and the cached user record) in the local metadata table.
package tokenstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/insider/internal/client/models"
	"github.com/dmitrijs2005/insider/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/insider/internal/common"
	"github.com/dmitrijs2005/insider/internal/cryptox"
	"github.com/dmitrijs2005/insider/internal/dbx"
)

// ErrCorrupted is returned by Load when stored entries are partial or
// unreadable.
var ErrCorrupted = errors.New("stored session is corrupted")

var sessionKeys = []string{common.AccessTokenKey, common.RefreshTokenKey, common.UserKey}

// Credentials is the persisted part of a session.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	User         models.User
}

type Option func(*Store)

// WithSecret seals stored values under a key derived from secret.
// An empty secret leaves values in the clear.
func WithSecret(secret string) Option {
	return func(s *Store) {
		if secret != "" {
			s.secret = []byte(secret)
		}
	}
}

type Store struct {
	db     *sql.DB
	secret []byte

	keyMu sync.Mutex
	key   []byte
}

func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db}
	for _, o := range opts {
		o(s)
	}
	return s
}

// openRepo returns the repository for values bound to db, sealed with key
// when key is set.
func openRepo(db dbx.DBTX, key []byte) (metadata.Repository, error) {
	plain := metadata.NewSQLiteRepository(db)
	if key == nil {
		return plain, nil
	}
	return metadata.NewSealedRepository(plain, key)
}

// sealingKey derives the key from the stored salt, writing a new salt on
// first use. It returns nil when sealing is off. The salt is committed before
// the key is cached, so it must not run inside a session transaction.
func (s *Store) sealingKey(ctx context.Context) ([]byte, error) {
	if s.secret == nil {
		return nil, nil
	}

	s.keyMu.Lock()
	defer s.keyMu.Unlock()
	if s.key != nil {
		return s.key, nil
	}

	plain := metadata.NewSQLiteRepository(s.db)
	salt, err := plain.Get(ctx, common.StorageSaltKey)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		salt = common.GenerateRandByteArray(cryptox.SaltSize)
		if err := plain.Set(ctx, common.StorageSaltKey, salt); err != nil {
			return nil, err
		}
	}
	s.key = cryptox.DeriveKey(s.secret, salt)
	return s.key, nil
}

// Load returns the stored credentials, or (nil, nil) when nothing is stored.
func (s *Store) Load(ctx context.Context) (*Credentials, error) {
	key, err := s.sealingKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	repo, err := openRepo(s.db, key)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	entries, err := repo.List(ctx, sessionKeys...)
	if errors.Is(err, cryptox.ErrMalformed) {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if len(entries) == 0 {
		return nil, nil
	}
	if len(entries) != len(sessionKeys) {
		return nil, fmt.Errorf("%w: %d of %d entries present", ErrCorrupted, len(entries), len(sessionKeys))
	}

	creds := &Credentials{
		AccessToken:  string(entries[common.AccessTokenKey]),
		RefreshToken: string(entries[common.RefreshTokenKey]),
	}
	if creds.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", ErrCorrupted)
	}
	if err := json.Unmarshal(entries[common.UserKey], &creds.User); err != nil {
		return nil, fmt.Errorf("%w: user record: %v", ErrCorrupted, err)
	}
	if creds.User.ID == "" {
		return nil, fmt.Errorf("%w: user record without id", ErrCorrupted)
	}
	return creds, nil
}

// Save replaces the stored credentials atomically.
func (s *Store) Save(ctx context.Context, creds Credentials) error {
	user, err := json.Marshal(creds.User)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	key, err := s.sealingKey(ctx)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo, err := openRepo(tx, key)
		if err != nil {
			return err
		}
		values := map[string][]byte{
			common.AccessTokenKey:  []byte(creds.AccessToken),
			common.RefreshTokenKey: []byte(creds.RefreshToken),
			common.UserKey:         user,
		}
		for _, k := range sessionKeys {
			if err := repo.Set(ctx, k, values[k]); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
		}
		return nil
	})
}

// Clear removes the stored session. The storage salt is kept. Clearing an
// empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := metadata.NewSQLiteRepository(s.db).Delete(ctx, sessionKeys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
