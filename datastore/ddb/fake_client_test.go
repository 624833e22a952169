/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entityrepo/keys"
	"github.com/suparena/entityrepo/registry"
)

// Test entities shared across the package tests.

type ddbPlayer struct {
	ID   string `dynamodbav:"Id"`
	Name string `dynamodbav:"Name"`
}

type ddbMatch struct {
	PlayerID string `dynamodbav:"PlayerId"`
	MatchID  string `dynamodbav:"MatchId"`
	Score    int    `dynamodbav:"Score"`
}

func init() {
	registry.RegisterTableMapping[ddbPlayer](registry.TableMapping{
		TableName:   "players",
		HashKeyAttr: "PK",
		TypeName:    "DDBPlayer",
		EntityKey: func(e any) keys.Key {
			return keys.HashOnly("PLAYER#" + e.(*ddbPlayer).ID)
		},
	})
	registry.RegisterType[ddbPlayer]("DDBPlayer", func(item map[string]types.AttributeValue) (interface{}, error) {
		p := &ddbPlayer{}
		if err := attributevalue.UnmarshalMap(item, p); err != nil {
			return nil, err
		}
		return p, nil
	})

	registry.RegisterTableMapping[ddbMatch](registry.TableMapping{
		TableName:    "app-data",
		HashKeyAttr:  "PK",
		RangeKeyAttr: "SK",
		TypeName:     "DDBMatch",
		EntityKey: func(e any) keys.Key {
			m := e.(*ddbMatch)
			return keys.Composite("PLAYER#"+m.PlayerID, "MATCH#"+m.MatchID)
		},
	})
	registry.RegisterType[ddbMatch]("DDBMatch", func(item map[string]types.AttributeValue) (interface{}, error) {
		m := &ddbMatch{}
		if err := attributevalue.UnmarshalMap(item, m); err != nil {
			return nil, err
		}
		return m, nil
	})
}

// fakeDynamoDB implements DynamoDBAPI, recording every input and delegating
// to per-call functions when set.
type fakeDynamoDB struct {
	getInputs        []*sdk.GetItemInput
	putInputs        []*sdk.PutItemInput
	deleteInputs     []*sdk.DeleteItemInput
	batchGetInputs   []*sdk.BatchGetItemInput
	batchWriteInputs []*sdk.BatchWriteItemInput
	scanInputs       []*sdk.ScanInput

	getItemFn        func(*sdk.GetItemInput) (*sdk.GetItemOutput, error)
	putItemFn        func(*sdk.PutItemInput) (*sdk.PutItemOutput, error)
	deleteItemFn     func(*sdk.DeleteItemInput) (*sdk.DeleteItemOutput, error)
	batchGetItemFn   func(*sdk.BatchGetItemInput) (*sdk.BatchGetItemOutput, error)
	batchWriteItemFn func(*sdk.BatchWriteItemInput) (*sdk.BatchWriteItemOutput, error)
	scanFn           func(*sdk.ScanInput) (*sdk.ScanOutput, error)
}

func (f *fakeDynamoDB) GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.getInputs = append(f.getInputs, params)
	if f.getItemFn != nil {
		return f.getItemFn(params)
	}
	return &sdk.GetItemOutput{}, nil
}

func (f *fakeDynamoDB) PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.putInputs = append(f.putInputs, params)
	if f.putItemFn != nil {
		return f.putItemFn(params)
	}
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.deleteInputs = append(f.deleteInputs, params)
	if f.deleteItemFn != nil {
		return f.deleteItemFn(params)
	}
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeDynamoDB) BatchGetItem(ctx context.Context, params *sdk.BatchGetItemInput, optFns ...func(*sdk.Options)) (*sdk.BatchGetItemOutput, error) {
	f.batchGetInputs = append(f.batchGetInputs, params)
	if f.batchGetItemFn != nil {
		return f.batchGetItemFn(params)
	}
	return &sdk.BatchGetItemOutput{}, nil
}

func (f *fakeDynamoDB) BatchWriteItem(ctx context.Context, params *sdk.BatchWriteItemInput, optFns ...func(*sdk.Options)) (*sdk.BatchWriteItemOutput, error) {
	f.batchWriteInputs = append(f.batchWriteInputs, params)
	if f.batchWriteItemFn != nil {
		return f.batchWriteItemFn(params)
	}
	return &sdk.BatchWriteItemOutput{}, nil
}

func (f *fakeDynamoDB) Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.scanInputs = append(f.scanInputs, params)
	if f.scanFn != nil {
		return f.scanFn(params)
	}
	return &sdk.ScanOutput{}, nil
}

// playerItem builds a raw DynamoDB item for a ddbPlayer.
func playerItem(id, name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":                    &types.AttributeValueMemberS{Value: "PLAYER#" + id},
		"Id":                    &types.AttributeValueMemberS{Value: id},
		"Name":                  &types.AttributeValueMemberS{Value: name},
		AttributeNameEntityType: &types.AttributeValueMemberS{Value: "DDBPlayer"},
	}
}

// matchItem builds a raw DynamoDB item for a ddbMatch.
func matchItem(playerID, matchID string, score int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":                    &types.AttributeValueMemberS{Value: "PLAYER#" + playerID},
		"SK":                    &types.AttributeValueMemberS{Value: "MATCH#" + matchID},
		"PlayerId":              &types.AttributeValueMemberS{Value: playerID},
		"MatchId":               &types.AttributeValueMemberS{Value: matchID},
		"Score":                 &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", score)},
		AttributeNameEntityType: &types.AttributeValueMemberS{Value: "DDBMatch"},
	}
}

// stringAttr extracts a string attribute value, or "" if absent.
func stringAttr(item map[string]types.AttributeValue, name string) string {
	if attr, ok := item[name].(*types.AttributeValueMemberS); ok {
		return attr.Value
	}
	return ""
}
