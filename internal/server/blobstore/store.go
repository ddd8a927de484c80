// Package blobstore writes and removes file bytes in object storage.
package blobstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/sharebox/internal/server/config"
)

// Store is a flat key -> bytes namespace. Upload returns the URL the
// object can be fetched from.
type Store interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// NewKey returns a fresh date-partitioned object key.
func NewKey(now time.Time) string {
	return fmt.Sprintf("uploads/%04d/%02d/%02d/%v", now.Year(), now.Month(), now.Day(), uuid.New())
}

// New opens the blob store named by c.BlobStore. awsCfg is only used by
// the S3 driver.
func New(ctx context.Context, c *config.Config, awsCfg aws.Config) (Store, error) {
	switch c.BlobStore {
	case config.BlobStoreS3:
		return NewS3Store(awsCfg, S3Options{
			Bucket:        c.S3Bucket,
			Region:        c.S3Region,
			BaseEndpoint:  c.S3BaseEndpoint,
			PublicBaseURL: c.PublicBaseURL,
		}), nil
	case config.BlobStoreMinio:
		m, err := NewMinioStore(ctx, MinioOptions{
			Endpoint:      c.S3BaseEndpoint,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			Bucket:        c.S3Bucket,
			Region:        c.S3Region,
			PublicBaseURL: c.PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.BlobStoreMemory:
		return NewMemoryStore(c.PublicBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown blob store %q", c.BlobStore)
	}
}

// joinURL appends an object key to a base URL, escaping each segment.
func joinURL(base string, parts ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, p := range parts {
		for _, seg := range strings.Split(p, "/") {
			b.WriteByte('/')
			b.WriteString(url.PathEscape(seg))
		}
	}
	return b.String()
}
