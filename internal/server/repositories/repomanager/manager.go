package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/secretsvault/internal/server/repositories/files"
)

// RepositoryManager hands out database-backed repositories and owns the
// schema lifecycle.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Files(db *sql.DB) files.Repository
}
