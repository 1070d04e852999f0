// Package repomanager vends repository implementations bound to a database
// handle, so services can run several repositories inside one transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/commently/commently/internal/dbx"
	"github.com/commently/commently/internal/server/repositories/comments"
	"github.com/commently/commently/internal/server/repositories/users"
)

// RepositoryManager is a factory for the repositories used by the services.
// Passing a dbx.DBTX lets callers bind a repository to either the pool or an
// open transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Comments(db dbx.DBTX) comments.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
