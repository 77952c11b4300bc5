package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/secretsvault/internal/cryptox"
	"github.com/dmitrijs2005/secretsvault/internal/logging"
	"github.com/dmitrijs2005/secretsvault/internal/server/models"
	"github.com/dmitrijs2005/secretsvault/internal/server/repositories/files"
)

// FileService applies the vault's rules on top of a files.Repository:
// content is encrypted before it is stored and decrypted on every read path
// except DeleteFile.
type FileService struct {
	repo   files.Repository
	key    []byte
	logger logging.Logger

	generateCode func() (string, error)
}

// NewFileService returns a service encrypting with key, which must be
// cryptox.KeySize bytes long. The key is copied.
func NewFileService(repo files.Repository, key []byte, logger logging.Logger) (*FileService, error) {
	if len(key) != cryptox.KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", cryptox.KeySize, len(key))
	}
	if logger == nil {
		logger = logging.Nop{}
	}

	k := make([]byte, len(key))
	copy(k, key)

	return &FileService{
		repo:         repo,
		key:          k,
		logger:       logger.With("component", "file_service"),
		generateCode: cryptox.GenerateCode,
	}, nil
}

// AddFile encrypts plaintext, stores it under name and returns the new id.
func (s *FileService) AddFile(ctx context.Context, userID, name, plaintext string) (string, error) {
	ciphertext, err := cryptox.Encrypt(plaintext, s.key)
	if err != nil {
		s.logger.Error(ctx, "encrypt file content", "error", err)
		return "", err
	}

	f, err := s.repo.AddFile(ctx, userID, name, ciphertext)
	if err != nil {
		return "", err
	}

	s.logger.Debug(ctx, "file stored", "file_id", f.ID)
	return f.ID, nil
}

// GetUserFiles returns the owner's files with plaintext content. One file
// that fails to decrypt fails the whole call.
func (s *FileService) GetUserFiles(ctx context.Context, userID string) ([]*models.File, error) {
	list, err := s.repo.GetUserFiles(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, f := range list {
		if err := s.decryptInPlace(ctx, f); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *FileService) GetFile(ctx context.Context, userID, id string) (*models.File, error) {
	f, err := s.repo.GetFile(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.decryptInPlace(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteFile removes the file and returns the stored record. Content is left
// encrypted.
func (s *FileService) DeleteFile(ctx context.Context, userID, id string) (*models.File, error) {
	f, err := s.repo.DeleteFile(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "file deleted", "file_id", f.ID)
	return f, nil
}

// GenerateShareLink issues (or returns the existing) share code for one of
// the owner's files. Ownership is checked first; on failure no link exists
// afterwards.
func (s *FileService) GenerateShareLink(ctx context.Context, userID, id string) (string, error) {
	f, err := s.repo.GetFile(ctx, userID, id)
	if err != nil {
		return "", err
	}

	proposed, err := s.generateCode()
	if err != nil {
		return "", fmt.Errorf("generate share code: %w", err)
	}

	code, err := s.repo.GenerateShareLink(ctx, f.ID, proposed)
	if err != nil {
		return "", err
	}
	return code, nil
}

// GetFileByShareLink is the anonymous read path: id and code are the only
// credentials.
func (s *FileService) GetFileByShareLink(ctx context.Context, id, code string) (*models.File, error) {
	f, err := s.repo.GetFileByShareLink(ctx, id, code)
	if err != nil {
		return nil, err
	}
	if err := s.decryptInPlace(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FileService) decryptInPlace(ctx context.Context, f *models.File) error {
	plaintext, err := cryptox.Decrypt(f.Content, s.key)
	if err != nil {
		s.logger.Error(ctx, "decrypt file content", "file_id", f.ID, "error", err)
		return err
	}
	f.Content = plaintext
	return nil
}
