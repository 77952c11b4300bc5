package files

import (
	"context"
	"crypto/subtle"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/secretsvault/internal/common"
	"github.com/dmitrijs2005/secretsvault/internal/server/models"
	"github.com/google/uuid"
)

type nameKey struct {
	userID string
	name   string
}

type memoryFile struct {
	file models.File
	seq  uint64
}

// MemoryRepository is a process-local Repository. It mirrors the PostgreSQL
// implementation's observable behaviour and is meant for tests and
// single-instance development runs.
type MemoryRepository struct {
	mu    sync.RWMutex
	files map[string]*memoryFile
	names map[nameKey]string
	links map[string]models.ShareLink
	seq   uint64

	now   func() time.Time
	newID func() string
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		files: make(map[string]*memoryFile),
		names: make(map[nameKey]string),
		links: make(map[string]models.ShareLink),
		// PostgreSQL keeps microseconds; match it so ordering and equality agree.
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID: uuid.NewString,
	}
}

func (r *MemoryRepository) GetUserFiles(ctx context.Context, userID string) ([]*models.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]*memoryFile, 0)
	for _, f := range r.files {
		if f.file.UserID == userID {
			owned = append(owned, f)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].file.CreatedAt.Equal(owned[j].file.CreatedAt) {
			return owned[i].file.CreatedAt.After(owned[j].file.CreatedAt)
		}
		return owned[i].seq > owned[j].seq
	})

	result := make([]*models.File, 0, len(owned))
	for _, f := range owned {
		result = append(result, copyFile(&f.file))
	}
	return result, nil
}

func (r *MemoryRepository) AddFile(ctx context.Context, userID, name, content string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := nameKey{userID: userID, name: name}
	if _, ok := r.names[key]; ok {
		return nil, &common.FileAlreadyExistsError{Name: name}
	}

	now := r.now()
	r.seq++
	f := &memoryFile{
		file: models.File{
			ID:        r.newID(),
			UserID:    userID,
			Name:      name,
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		},
		seq: r.seq,
	}

	r.files[f.file.ID] = f
	r.names[key] = f.file.ID

	return copyFile(&f.file), nil
}

func (r *MemoryRepository) GetFile(ctx context.Context, userID, id string) (*models.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.files[id]
	if !ok || f.file.UserID != userID {
		return nil, &common.FileNotFoundError{ID: id}
	}
	return copyFile(&f.file), nil
}

func (r *MemoryRepository) DeleteFile(ctx context.Context, userID, id string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.files[id]
	if !ok || f.file.UserID != userID {
		return nil, &common.FileNotFoundError{ID: id}
	}

	delete(r.files, id)
	delete(r.names, nameKey{userID: userID, name: f.file.Name})
	delete(r.links, id)

	return copyFile(&f.file), nil
}

func (r *MemoryRepository) GenerateShareLink(ctx context.Context, fileID, code string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.links[fileID]; ok {
		return existing.Code, nil
	}
	if _, ok := r.files[fileID]; !ok {
		return "", &common.FileNotFoundError{ID: fileID}
	}

	r.links[fileID] = models.ShareLink{FileID: fileID, Code: code, CreatedAt: r.now()}
	return code, nil
}

func (r *MemoryRepository) GetFileByShareLink(ctx context.Context, fileID, code string) (*models.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, ok := r.links[fileID]
	if !ok || !codesEqual(link.Code, code) {
		return nil, &common.FileNotFoundError{ID: fileID}
	}

	f, ok := r.files[link.FileID]
	if !ok {
		return nil, &common.FileNotFoundError{ID: fileID}
	}
	return copyFile(&f.file), nil
}

func copyFile(f *models.File) *models.File {
	c := *f
	return &c
}

func codesEqual(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
