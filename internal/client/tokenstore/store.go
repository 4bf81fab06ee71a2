// Package tokenstore persists the bearer credential and the signed-in
// principal in the client's local store under fixed keys, so a session
// survives a restart.
//
// Reads never fail: a missing, empty or unreadable value is reported as
// absent. SignOut never fails either; storage errors are logged.
package tokenstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/schooldesk/internal/client/models"
	"github.com/dmitrijs2005/schooldesk/internal/client/storage"
	"github.com/dmitrijs2005/schooldesk/internal/dbx"
	"github.com/dmitrijs2005/schooldesk/internal/logging"
)

// Keys under which the session is stored.
const (
	TokenKey = "auth-token"
	UserKey  = "auth-user"
)

type txFunc func(ctx context.Context, fn func(repo storage.Repository) error) error

type Store struct {
	repo   storage.Repository
	inTx   txFunc
	logger logging.Logger
}

// New returns a Store backed by the local_storage table of db.
func New(db *sql.DB, l logging.Logger) *Store {
	return &Store{
		repo:   storage.NewKV(db),
		logger: l.With("module", "tokenstore"),
		inTx: func(ctx context.Context, fn func(repo storage.Repository) error) error {
			return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
				return fn(storage.NewKV(tx))
			})
		},
	}
}

// NewWithRepository wraps an arbitrary repository. SaveSession then writes
// the two keys one after another without a transaction.
func NewWithRepository(repo storage.Repository, l logging.Logger) *Store {
	return &Store{
		repo:   repo,
		logger: l.With("module", "tokenstore"),
		inTx: func(ctx context.Context, fn func(repo storage.Repository) error) error {
			return fn(repo)
		},
	}
}

// SaveToken overwrites the stored credential.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	return saveToken(ctx, s.repo, token)
}

// SaveUser overwrites the stored principal.
func (s *Store) SaveUser(ctx context.Context, p *models.Principal) error {
	return saveUser(ctx, s.repo, p)
}

// SaveSession stores credential and principal together; either both land or
// neither does.
func (s *Store) SaveSession(ctx context.Context, token string, p *models.Principal) error {
	return s.inTx(ctx, func(repo storage.Repository) error {
		if err := saveToken(ctx, repo, token); err != nil {
			return err
		}
		return saveUser(ctx, repo, p)
	})
}

// Token returns the stored credential, if any.
func (s *Store) Token(ctx context.Context) (string, bool) {
	v, err := s.repo.Get(ctx, TokenKey)
	if err != nil {
		s.logger.Warn(ctx, "token read failed", "error", err)
		return "", false
	}
	if len(v) == 0 {
		return "", false
	}
	return string(v), true
}

// User returns the stored principal, if any. A value that does not decode
// into a principal counts as absent.
func (s *Store) User(ctx context.Context) (*models.Principal, bool) {
	v, err := s.repo.Get(ctx, UserKey)
	if err != nil {
		s.logger.Warn(ctx, "user read failed", "error", err)
		return nil, false
	}
	if len(v) == 0 {
		return nil, false
	}

	var p *models.Principal
	if err := json.Unmarshal(v, &p); err != nil {
		s.logger.Warn(ctx, "stored user is not parsable", "error", err)
		return nil, false
	}
	if p == nil {
		return nil, false
	}
	return p, true
}

// SignOut removes both keys. It is idempotent.
func (s *Store) SignOut(ctx context.Context) {
	for _, key := range []string{TokenKey, UserKey} {
		if err := s.repo.Delete(ctx, key); err != nil {
			s.logger.Error(ctx, "sign-out could not clear key", "key", key, "error", err)
		}
	}
}

func saveToken(ctx context.Context, repo storage.Repository, token string) error {
	if err := repo.Set(ctx, TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func saveUser(ctx context.Context, repo storage.Repository, p *models.Principal) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := repo.Set(ctx, UserKey, b); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}
