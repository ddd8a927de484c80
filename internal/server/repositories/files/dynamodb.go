package files

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/dmitrijs2005/sharebox/internal/common"
	"github.com/dmitrijs2005/sharebox/internal/server/models"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/dynamo"
)

const idAttr = "fileId"

// DynamoRepository keeps files in a table whose partition key is "fileId".
// Owner lookups are filtered scans.
type DynamoRepository struct {
	client dynamo.API
	table  string
}

func NewDynamoRepository(client dynamo.API, table string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table}
}

func (r *DynamoRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	item, err := attributevalue.MarshalMap(file)
	if err != nil {
		return nil, fmt.Errorf("marshal file: %w", err)
	}

	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name(idAttr))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build expression: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.table),
		Item:                     item,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		if dynamo.IsConditionFailed(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	f := *file
	return &f, nil
}

func (r *DynamoRepository) Get(ctx context.Context, id string) (*models.File, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       dynamo.StringKey(idAttr, id),
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, common.ErrorNotFound
	}

	f := &models.File{}
	if err := attributevalue.UnmarshalMap(out.Item, f); err != nil {
		return nil, fmt.Errorf("unmarshal file: %w", err)
	}
	return f, nil
}

func (r *DynamoRepository) List(ctx context.Context) ([]models.File, error) {
	return r.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.table)})
}

func (r *DynamoRepository) ListByOwner(ctx context.Context, email string) ([]models.File, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("email").Equal(expression.Value(email))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build expression: %w", err)
	}

	return r.scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(r.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
}

func (r *DynamoRepository) scan(ctx context.Context, in *dynamodb.ScanInput) ([]models.File, error) {
	items, err := dynamo.ScanAll(ctx, r.client, in)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	result := []models.File{}
	if err := attributevalue.UnmarshalListOfMaps(items, &result); err != nil {
		return nil, fmt.Errorf("unmarshal files: %w", err)
	}
	sortFiles(result)
	return result, nil
}

func (r *DynamoRepository) Delete(ctx context.Context, id string) error {
	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeExists(expression.Name(idAttr))).
		Build()
	if err != nil {
		return fmt.Errorf("build expression: %w", err)
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.table),
		Key:                      dynamo.StringKey(idAttr, id),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		if dynamo.IsConditionFailed(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
