package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/secretsvault/internal/common"
	"github.com/dmitrijs2005/secretsvault/internal/dbx"
	"github.com/dmitrijs2005/secretsvault/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// PostgresRepository implements Repository over the files and share_links
// tables created by the embedded migrations.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository constructs a repository bound to db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (*models.File, error) {
	var f models.File
	if err := row.Scan(&f.ID, &f.UserID, &f.Name, &f.Content, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.CreatedAt = f.CreatedAt.UTC()
	f.UpdatedAt = f.UpdatedAt.UTC()
	return &f, nil
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// notFoundOr maps lookups that cannot match a row onto FileNotFoundError.
// A malformed uuid is one of them.
func notFoundOr(err error, id string) error {
	if errors.Is(err, sql.ErrNoRows) || pgErrorCode(err) == pgInvalidTextRepr {
		return &common.FileNotFoundError{ID: id}
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) GetUserFiles(ctx context.Context, userID string) ([]*models.File, error) {
	query := `SELECT id, user_id, name, content, created_at, updated_at FROM files
		WHERE user_id=$1
		ORDER BY created_at DESC, seq DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	result := make([]*models.File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) AddFile(ctx context.Context, userID, name, content string) (*models.File, error) {
	query := `INSERT INTO files (user_id, name, content)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, content, created_at, updated_at`

	f, err := scanFile(r.db.QueryRowContext(ctx, query, userID, name, content))
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, &common.FileAlreadyExistsError{Name: name}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) GetFile(ctx context.Context, userID, id string) (*models.File, error) {
	query := `SELECT id, user_id, name, content, created_at, updated_at FROM files
		WHERE id=$1 AND user_id=$2`

	f, err := scanFile(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, notFoundOr(err, id)
	}
	return f, nil
}

// DeleteFile drops the share link and the file in one transaction so a
// revoked link can never outlive its file.
func (r *PostgresRepository) DeleteFile(ctx context.Context, userID, id string) (*models.File, error) {
	var deleted *models.File

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		unlink := `DELETE FROM share_links
			WHERE file_id IN (SELECT id FROM files WHERE id=$1 AND user_id=$2)`
		if _, err := tx.ExecContext(ctx, unlink, id, userID); err != nil {
			return err
		}

		query := `DELETE FROM files WHERE id=$1 AND user_id=$2
			RETURNING id, user_id, name, content, created_at, updated_at`
		f, err := scanFile(tx.QueryRowContext(ctx, query, id, userID))
		if err != nil {
			return err
		}
		deleted = f
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, id)
	}
	return deleted, nil
}

func (r *PostgresRepository) GenerateShareLink(ctx context.Context, fileID, code string) (string, error) {
	// The no-op update makes RETURNING yield the stored code on conflict.
	query := `INSERT INTO share_links (file_id, code)
		VALUES ($1, $2)
		ON CONFLICT (file_id) DO UPDATE SET file_id = EXCLUDED.file_id
		RETURNING code`

	var stored string
	if err := r.db.QueryRowContext(ctx, query, fileID, code).Scan(&stored); err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return "", &common.FileNotFoundError{ID: fileID}
		}
		return "", notFoundOr(err, fileID)
	}
	return stored, nil
}

func (r *PostgresRepository) GetFileByShareLink(ctx context.Context, fileID, code string) (*models.File, error) {
	query := `SELECT l.code, f.id, f.user_id, f.name, f.content, f.created_at, f.updated_at
		FROM share_links l
		JOIN files f ON f.id = l.file_id
		WHERE l.file_id=$1`

	var (
		stored string
		f      models.File
	)
	err := r.db.QueryRowContext(ctx, query, fileID).
		Scan(&stored, &f.ID, &f.UserID, &f.Name, &f.Content, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err, fileID)
	}
	if !codesEqual(stored, code) {
		return nil, &common.FileNotFoundError{ID: fileID}
	}

	f.CreatedAt = f.CreatedAt.UTC()
	f.UpdatedAt = f.UpdatedAt.UTC()
	return &f, nil
}
