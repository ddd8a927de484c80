// Package dynamotest provides a scripted DynamoDB client for repository
// tests. Every call is recorded; outputs and errors are set up front.
package dynamotest

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type Fake struct {
	PutIn    []*dynamodb.PutItemInput
	GetIn    []*dynamodb.GetItemInput
	ScanIn   []*dynamodb.ScanInput
	UpdateIn []*dynamodb.UpdateItemInput
	DeleteIn []*dynamodb.DeleteItemInput

	PutErr    error
	GetOut    *dynamodb.GetItemOutput
	GetErr    error
	ScanPages []*dynamodb.ScanOutput
	ScanErr   error
	UpdateOut *dynamodb.UpdateItemOutput
	UpdateErr error
	DeleteErr error
}

func (f *Fake) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.PutIn = append(f.PutIn, in)
	if f.PutErr != nil {
		return nil, f.PutErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *Fake) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.GetIn = append(f.GetIn, in)
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	if f.GetOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.GetOut, nil
}

// Scan returns ScanPages in order, one per call.
func (f *Fake) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.ScanIn = append(f.ScanIn, in)
	if f.ScanErr != nil {
		return nil, f.ScanErr
	}
	i := len(f.ScanIn) - 1
	if i >= len(f.ScanPages) {
		return &dynamodb.ScanOutput{}, nil
	}
	return f.ScanPages[i], nil
}

func (f *Fake) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.UpdateIn = append(f.UpdateIn, in)
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	if f.UpdateOut == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return f.UpdateOut, nil
}

func (f *Fake) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.DeleteIn = append(f.DeleteIn, in)
	if f.DeleteErr != nil {
		return nil, f.DeleteErr
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

// ConditionFailed is the error DynamoDB returns when a condition
// expression does not hold.
func ConditionFailed() error {
	msg := "The conditional request failed"
	return &types.ConditionalCheckFailedException{Message: &msg}
}
