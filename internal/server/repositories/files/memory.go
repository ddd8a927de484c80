package files

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/sharebox/internal/common"
	"github.com/dmitrijs2005/sharebox/internal/server/models"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	files map[string]models.File
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{files: make(map[string]models.File)}
}

func (r *MemoryRepository) Create(_ context.Context, file *models.File) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[file.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.files[file.ID] = *file
	f := *file
	return &f, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*models.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.files[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &f, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]models.File, error) {
	return r.filter(func(models.File) bool { return true }), nil
}

func (r *MemoryRepository) ListByOwner(_ context.Context, email string) ([]models.File, error) {
	return r.filter(func(f models.File) bool { return f.OwnerEmail == email }), nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.files, id)
	return nil
}

func (r *MemoryRepository) filter(keep func(models.File) bool) []models.File {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []models.File{}
	for _, f := range r.files {
		if keep(f) {
			result = append(result, f)
		}
	}
	sortFiles(result)
	return result
}

// sortFiles orders by upload time, then id.
func sortFiles(files []models.File) {
	slices.SortFunc(files, func(a, b models.File) int {
		if c := a.UploadedAt.Compare(b.UploadedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
