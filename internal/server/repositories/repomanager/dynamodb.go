package repomanager

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/dmitrijs2005/sharebox/internal/server/repositories/files"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/users"
)

var newDynamoClientFromConfig = func(cfg aws.Config, optFns ...func(*dynamodb.Options)) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, optFns...)
}

// DynamoRepositoryManager shares a single DynamoDB client between the
// users and files tables.
type DynamoRepositoryManager struct {
	client *dynamodb.Client
	users  users.Repository
	files  files.Repository
}

// NewDynamoRepositoryManager builds the client. endpoint overrides the
// service URL (DynamoDB Local, LocalStack) when not empty.
func NewDynamoRepositoryManager(cfg aws.Config, endpoint, usersTable, filesTable string) *DynamoRepositoryManager {
	client := newDynamoClientFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &DynamoRepositoryManager{
		client: client,
		users:  users.NewDynamoRepository(client, usersTable),
		files:  files.NewDynamoRepository(client, filesTable),
	}
}

func (m *DynamoRepositoryManager) Users() users.Repository { return m.users }

func (m *DynamoRepositoryManager) Files() files.Repository { return m.files }

// Close is a no-op; the SDK client holds no resources that need releasing.
func (m *DynamoRepositoryManager) Close() error { return nil }
