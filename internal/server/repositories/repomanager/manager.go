// Package repomanager vends the user and file repositories for the
// configured record store and owns the underlying connection.
package repomanager

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/dmitrijs2005/sharebox/internal/server/config"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/files"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Files() files.Repository
	Close() error
}

// New opens the record store named by c.RecordStore. awsCfg is only used
// by the DynamoDB driver.
func New(ctx context.Context, c *config.Config, awsCfg aws.Config) (RepositoryManager, error) {
	switch c.RecordStore {
	case config.RecordStoreDynamoDB:
		return NewDynamoRepositoryManager(awsCfg, c.DynamoDBEndpoint, c.DynamoUsersTable, c.DynamoFilesTable), nil
	case config.RecordStorePostgres:
		m, err := NewPostgresRepositoryManager(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.RecordStoreMemory:
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown record store %q", c.RecordStore)
	}
}
