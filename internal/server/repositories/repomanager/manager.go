// Package repomanager hands out repositories bound to a database handle and
// owns schema migrations for the backend.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/schooldesk/internal/dbx"
	"github.com/dmitrijs2005/schooldesk/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// Open picks the storage backend for dsn. An empty dsn keeps everything in
// memory and returns a nil *sql.DB; otherwise a Postgres pool is opened,
// pinged and migrated.
func Open(ctx context.Context, dsn string) (RepositoryManager, *sql.DB, error) {
	if dsn == "" {
		return NewMemoryRepositoryManager(), nil, nil
	}

	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	m, err := NewPostgresRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	return m, db, nil
}

var sqlOpen = sql.Open
