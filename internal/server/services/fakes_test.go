package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/sharebox/internal/logging"
	"github.com/dmitrijs2005/sharebox/internal/server/blobstore"
	"github.com/dmitrijs2005/sharebox/internal/server/models"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/files"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/users"
)

// fakeUsersRepo is the in-memory repository with per-method failures.
type fakeUsersRepo struct {
	*users.MemoryRepository
	getErr, listErr, createErr, updateErr, deleteErr error
}

func newFakeUsers() *fakeUsersRepo {
	return &fakeUsersRepo{MemoryRepository: users.NewMemoryRepository()}
}

func (f *fakeUsersRepo) Get(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryRepository.Get(ctx, email)
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.MemoryRepository.List(ctx)
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.MemoryRepository.Create(ctx, u)
}

func (f *fakeUsersRepo) Update(ctx context.Context, email string, upd models.UserUpdate) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.MemoryRepository.Update(ctx, email, upd)
}

func (f *fakeUsersRepo) Delete(ctx context.Context, email string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.MemoryRepository.Delete(ctx, email)
}

type fakeFilesRepo struct {
	*files.MemoryRepository
	createErr, listErr, deleteErr error
}

func newFakeFiles() *fakeFilesRepo {
	return &fakeFilesRepo{MemoryRepository: files.NewMemoryRepository()}
}

func (f *fakeFilesRepo) Create(ctx context.Context, file *models.File) (*models.File, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.MemoryRepository.Create(ctx, file)
}

func (f *fakeFilesRepo) List(ctx context.Context) ([]models.File, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.MemoryRepository.List(ctx)
}

func (f *fakeFilesRepo) ListByOwner(ctx context.Context, email string) ([]models.File, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.MemoryRepository.ListByOwner(ctx, email)
}

func (f *fakeFilesRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.MemoryRepository.Delete(ctx, id)
}

// fakeBlobs wraps the memory store and counts calls.
type fakeBlobs struct {
	*blobstore.MemoryStore
	mu                   sync.Mutex
	uploads, deletes     int
	uploadErr, deleteErr error
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{MemoryStore: blobstore.NewMemoryStore("https://cdn.test")}
}

func (f *fakeBlobs) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	f.mu.Lock()
	f.uploads++
	f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return f.MemoryStore.Upload(ctx, key, contentType, data)
}

func (f *fakeBlobs) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	f.deletes++
	f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.MemoryStore.Delete(ctx, key)
}

type fixture struct {
	users     *fakeUsersRepo
	files     *fakeFilesRepo
	blobs     *fakeBlobs
	userSvc   *UserService
	authSvc   *AuthService
	fileSvc   *FileService
	adminPass string
}

const testAdminEmail = "admin@gmail.com"

func newFixture() *fixture {
	f := &fixture{
		users:     newFakeUsers(),
		files:     newFakeFiles(),
		blobs:     newFakeBlobs(),
		adminPass: "admin-secret",
	}
	log := logging.Nop()
	f.userSvc = NewUserService(f.users, log)
	f.authSvc = NewAuthService(f.users, f.files, testAdminEmail, f.adminPass, log)
	f.fileSvc = NewFileService(f.authSvc, f.files, f.blobs, 10*1024*1024, log)
	return f
}
