package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/trackly/internal/dbx"
	"github.com/dmitrijs2005/trackly/internal/repositories/appsession"
	"github.com/dmitrijs2005/trackly/internal/repositories/projects"
	"github.com/dmitrijs2005/trackly/internal/repositories/sessions"
	"github.com/dmitrijs2005/trackly/internal/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Projects(db dbx.DBTX) projects.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	AppSession(db dbx.DBTX) appsession.Repository
}
