package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/sharebox/internal/common"
	"github.com/dmitrijs2005/sharebox/internal/logging"
	"github.com/dmitrijs2005/sharebox/internal/server/blobstore"
	"github.com/dmitrijs2005/sharebox/internal/server/models"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/files"
)

// UserResolver maps a session email to a stored user.
type UserResolver interface {
	Resolve(ctx context.Context, email string) (*models.User, error)
}

type UploadInput struct {
	Name        string
	Description string
	ContentType string
	Data        []byte
}

// FileService is the only writer of blobs and file records, and keeps
// the two paired.
type FileService struct {
	resolver  UserResolver
	files     files.Repository
	blobs     blobstore.Store
	maxUpload int64
	logger    logging.Logger
	now       func() time.Time
}

func NewFileService(resolver UserResolver, repo files.Repository, blobs blobstore.Store, maxUploadBytes int64, logger logging.Logger) *FileService {
	if maxUploadBytes <= 0 {
		maxUploadBytes = common.MaxUploadBytes
	}
	return &FileService{
		resolver:  resolver,
		files:     repo,
		blobs:     blobs,
		maxUpload: maxUploadBytes,
		logger:    logger.With("module", "files"),
		now:       time.Now,
	}
}

func (s *FileService) MaxUploadBytes() int64 { return s.maxUpload }

// UploadFile stores the bytes, then the record. If the record cannot be
// written the blob is deleted again and an *common.InconsistencyError
// reports whether that worked. The uploader is resolved before the input is
// checked.
func (s *FileService) UploadFile(ctx context.Context, id Identity, in UploadInput) (*models.File, error) {
	owner, err := s.resolver.Resolve(ctx, id.Email)
	if err != nil {
		return nil, err
	}

	if int64(len(in.Data)) > s.maxUpload {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", common.ErrorPayloadTooLarge, len(in.Data), s.maxUpload)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: file name is required", common.ErrorValidation)
	}

	now := s.now().UTC()
	key := blobstore.NewKey(now)

	url, err := s.blobs.Upload(ctx, key, in.ContentType, in.Data)
	if err != nil {
		s.logger.Error(ctx, "blob upload failed", "key", key, "err", err)
		return nil, storageError(err)
	}

	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		desc = name
	}
	rec := &models.File{
		ID:              uuid.NewString(),
		OwnerEmail:      owner.Email,
		OwnerName:       owner.Name,
		BlobKey:         key,
		FileURL:         url,
		FileName:        name,
		FileDescription: desc,
		ContentType:     in.ContentType,
		SizeBytes:       int64(len(in.Data)),
		UploadedAt:      now,
		ModifiedAt:      now,
	}

	created, err := s.files.Create(ctx, rec)
	if err != nil {
		rbErr := s.blobs.Delete(ctx, key)
		ie := &common.InconsistencyError{
			Kind:       common.ErrorOrphanedBlob,
			BlobKey:    key,
			FileID:     rec.ID,
			RolledBack: rbErr == nil,
			Err:        storeError(err),
		}
		if rbErr != nil {
			s.logger.Error(ctx, "file record not saved, blob left orphaned", "key", key, "err", err, "rollback_err", rbErr)
		} else {
			s.logger.Warn(ctx, "file record not saved, blob rolled back", "key", key, "err", err)
		}
		return nil, ie
	}

	s.logger.Info(ctx, "file uploaded", "owner", owner.Email, "key", key, "size", rec.SizeBytes)
	return created, nil
}

// ListFiles is a pure read. ScopeAll is admin only.
func (s *FileService) ListFiles(ctx context.Context, id Identity, scope Scope) ([]models.File, error) {
	switch scope {
	case ScopeAll:
		if !id.Admin {
			return nil, fmt.Errorf("%w: listing all files requires admin", common.ErrorForbidden)
		}
		list, err := s.files.List(ctx)
		if err != nil {
			return nil, storeError(err)
		}
		return list, nil
	case ScopeOwn, "":
		if !id.Admin {
			if _, err := s.resolver.Resolve(ctx, id.Email); err != nil {
				return nil, err
			}
		} else if id.Email == "" {
			return nil, fmt.Errorf("%w: no session identity", common.ErrorUnauthenticated)
		}
		list, err := s.files.ListByOwner(ctx, id.Email)
		if err != nil {
			return nil, storeError(err)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("%w: unknown scope %q", common.ErrorValidation, scope)
	}
}

// DeleteFile removes the blob, then the record. A blob failure leaves the
// record as it was; a record failure after the blob is gone is reported as
// an *common.InconsistencyError of kind ErrorPartialDelete.
func (s *FileService) DeleteFile(ctx context.Context, id Identity, ownerEmail, blobKey string) error {
	ownerEmail = strings.TrimSpace(ownerEmail)
	blobKey = strings.TrimSpace(blobKey)
	if ownerEmail == "" || blobKey == "" {
		return fmt.Errorf("%w: email and key are required", common.ErrorValidation)
	}
	if id.Email == "" {
		return fmt.Errorf("%w: no session identity", common.ErrorUnauthenticated)
	}
	if !id.Admin && id.Email != ownerEmail {
		return fmt.Errorf("%w: %s cannot delete files of %s", common.ErrorForbidden, id.Email, ownerEmail)
	}

	owned, err := s.files.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return storeError(err)
	}
	var rec *models.File
	for i := range owned {
		if owned[i].BlobKey == blobKey {
			rec = &owned[i]
			break
		}
	}
	if rec == nil {
		return fmt.Errorf("file %s of %s: %w", blobKey, ownerEmail, common.ErrorNotFound)
	}

	if err := s.blobs.Delete(ctx, blobKey); err != nil {
		s.logger.Error(ctx, "blob delete failed", "key", blobKey, "err", err)
		return storageError(err)
	}

	if err := s.files.Delete(ctx, rec.ID); err != nil {
		s.logger.Error(ctx, "blob deleted but record remains", "key", blobKey, "file_id", rec.ID, "err", err)
		return &common.InconsistencyError{
			Kind:    common.ErrorPartialDelete,
			BlobKey: blobKey,
			FileID:  rec.ID,
			Err:     storeError(err),
		}
	}

	s.logger.Info(ctx, "file deleted", "owner", ownerEmail, "key", blobKey, "by", id.Email)
	return nil
}
