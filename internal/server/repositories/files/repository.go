// Package files stores file records. A record points at a blob by BlobKey;
// the blob itself lives in the blob store.
package files

import (
	"context"

	"github.com/dmitrijs2005/sharebox/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	Get(ctx context.Context, id string) (*models.File, error)
	List(ctx context.Context) ([]models.File, error)
	ListByOwner(ctx context.Context, email string) ([]models.File, error)
	Delete(ctx context.Context, id string) error
}
