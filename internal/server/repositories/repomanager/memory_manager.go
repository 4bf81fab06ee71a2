package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/schooldesk/internal/dbx"
	"github.com/dmitrijs2005/schooldesk/internal/server/repositories/users"
)

// MemoryRepositoryManager ignores the database handle and serves one shared
// set of in-memory repositories.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func NewMemoryRepositoryManager() RepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}
