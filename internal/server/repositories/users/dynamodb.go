package users

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dmitrijs2005/sharebox/internal/common"
	"github.com/dmitrijs2005/sharebox/internal/server/models"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/dynamo"
)

const emailAttr = "email"

// DynamoRepository keeps users in a table whose partition key is "email".
type DynamoRepository struct {
	client dynamo.API
	table  string
}

func NewDynamoRepository(client dynamo.API, table string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table}
}

func (r *DynamoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}

	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name(emailAttr))).
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

	u := *user
	return &u, nil
}

func (r *DynamoRepository) Get(ctx context.Context, email string) (*models.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       dynamo.StringKey(emailAttr, email),
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, common.ErrorNotFound
	}

	user := &models.User{}
	if err := attributevalue.UnmarshalMap(out.Item, user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return user, nil
}

func (r *DynamoRepository) List(ctx context.Context) ([]models.User, error) {
	items, err := dynamo.ScanAll(ctx, r.client, &dynamodb.ScanInput{TableName: aws.String(r.table)})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	result := []models.User{}
	if err := attributevalue.UnmarshalListOfMaps(items, &result); err != nil {
		return nil, fmt.Errorf("unmarshal users: %w", err)
	}
	sortUsers(result)
	return result, nil
}

func (r *DynamoRepository) Update(ctx context.Context, email string, upd models.UserUpdate) (*models.User, error) {
	var set expression.UpdateBuilder
	if upd.Name != nil {
		set = set.Set(expression.Name("name"), expression.Value(*upd.Name))
	}
	if upd.PasswordHash != nil {
		set = set.Set(expression.Name("passwordHash"), expression.Value(*upd.PasswordHash))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(set).
		WithCondition(expression.AttributeExists(expression.Name(emailAttr))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build expression: %w", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       dynamo.StringKey(emailAttr, email),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if dynamo.IsConditionFailed(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user := &models.User{}
	if err := attributevalue.UnmarshalMap(out.Attributes, user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return user, nil
}

func (r *DynamoRepository) Delete(ctx context.Context, email string) error {
	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeExists(expression.Name(emailAttr))).
		Build()
	if err != nil {
		return fmt.Errorf("build expression: %w", err)
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.table),
		Key:                      dynamo.StringKey(emailAttr, email),
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
