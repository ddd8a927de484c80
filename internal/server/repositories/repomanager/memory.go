package repomanager

import (
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/files"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. Used for
// local runs and tests.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
	files *files.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users: users.NewMemoryRepository(),
		files: files.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *MemoryRepositoryManager) Files() files.Repository { return m.files }

func (m *MemoryRepositoryManager) Close() error { return nil }
