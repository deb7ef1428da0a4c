// Package repomanager hands out repositories bound to a database handle,
// so services can run the same repository code against the pool or inside
// a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/campushub/backend/internal/dbx"
	"github.com/campushub/backend/internal/server/repositories/refreshtokens"
	"github.com/campushub/backend/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
