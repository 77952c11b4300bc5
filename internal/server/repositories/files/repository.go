// Package files declares the vault's file storage contract and its in-memory
// and PostgreSQL implementations. Both report failures with the typed errors
// from internal/common so callers cannot tell the backends apart.
package files

import (
	"context"

	"github.com/dmitrijs2005/secretsvault/internal/server/models"
)

// Repository stores files partitioned by owner, plus one share link per file.
//
// Every owner-scoped method treats a file that belongs to someone else
// exactly like a missing one and returns *common.FileNotFoundError.
type Repository interface {
	// GetUserFiles lists the owner's files, newest first. No files is an
	// empty slice, not an error.
	GetUserFiles(ctx context.Context, userID string) ([]*models.File, error)

	// AddFile stores a new file with a fresh id. A duplicate (userID, name)
	// yields *common.FileAlreadyExistsError and leaves storage untouched.
	AddFile(ctx context.Context, userID, name, content string) (*models.File, error)

	// GetFile returns the owner's file by id.
	GetFile(ctx context.Context, userID, id string) (*models.File, error)

	// DeleteFile removes the owner's file together with its share link and
	// returns the removed record.
	DeleteFile(ctx context.Context, userID, id string) (*models.File, error)

	// GenerateShareLink stores code for fileID unless a link already exists,
	// in which case the existing code is returned and code is ignored.
	GenerateShareLink(ctx context.Context, fileID, code string) (string, error)

	// GetFileByShareLink returns the file if a link exists for fileID with a
	// matching code. No ownership check is made.
	GetFileByShareLink(ctx context.Context, fileID, code string) (*models.File, error)
}
