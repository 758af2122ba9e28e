// Package repomanager provides a concrete RepositoryManager for SQLite,
// vending repositories bound to a handle or a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/trackly/internal/dbx"
	"github.com/dmitrijs2005/trackly/internal/repositories/appsession"
	"github.com/dmitrijs2005/trackly/internal/repositories/projects"
	"github.com/dmitrijs2005/trackly/internal/repositories/sessions"
	"github.com/dmitrijs2005/trackly/internal/repositories/users"
	"github.com/dmitrijs2005/trackly/internal/storage"
)

// SQLiteRepositoryManager vends SQLite-backed repository implementations.
type SQLiteRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

// Projects returns a projects.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Projects(db dbx.DBTX) projects.Repository {
	return projects.NewSQLiteRepository(db)
}

// Sessions returns a sessions.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewSQLiteRepository(db)
}

// AppSession returns the current-identity mirror bound to the provided DBTX.
func (m *SQLiteRepositoryManager) AppSession(db dbx.DBTX) appsession.Repository {
	return appsession.NewSQLiteRepository(db)
}

// runMigrations is a seam for testing.
var runMigrations = storage.RunMigrations

// RunMigrations applies the embedded schema migrations to db.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db)
}

// NewSQLiteRepositoryManager constructs a SQLite-backed RepositoryManager.
func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}
