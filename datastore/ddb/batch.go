/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"reflect"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entityrepo/keys"
	"github.com/suparena/entityrepo/registry"
)

const (
	// maxBatchWriteSize is the DynamoDB limit on requests per BatchWriteItem call.
	maxBatchWriteSize = 25
	// maxBatchGetSize is the DynamoDB limit on keys per BatchGetItem call.
	maxBatchGetSize = 100
	// maxUnprocessedRounds bounds the re-drive loop for unprocessed batch
	// keys/items before giving up.
	maxUnprocessedRounds = 5
)

// BatchLoad resolves all requested keys, grouped by entity type, in as few
// BatchGetItem calls as the 100-key limit allows. Keys without a matching
// item are absent from the result. Result order within a type follows
// whatever order DynamoDB returns.
func (m *Mapper) BatchLoad(ctx context.Context, request map[reflect.Type][]keys.Key) (map[reflect.Type][]any, error) {
	type tableKey struct {
		table string
		key   map[string]types.AttributeValue
	}

	var flat []tableKey
	for entityType, typeKeys := range request {
		mapping, err := mappingFor(entityType)
		if err != nil {
			return nil, err
		}
		for _, k := range typeKeys {
			keyMap, err := marshalKey(mapping, k)
			if err != nil {
				return nil, err
			}
			flat = append(flat, tableKey{table: mapping.TableName, key: keyMap})
		}
	}

	results := make(map[reflect.Type][]any, len(request))

	for start := 0; start < len(flat); start += maxBatchGetSize {
		end := start + maxBatchGetSize
		if end > len(flat) {
			end = len(flat)
		}

		requestItems := make(map[string]types.KeysAndAttributes)
		for _, tk := range flat[start:end] {
			entry := requestItems[tk.table]
			entry.Keys = append(entry.Keys, tk.key)
			requestItems[tk.table] = entry
		}

		for round := 0; len(requestItems) > 0; round++ {
			if round >= maxUnprocessedRounds {
				return nil, classify("BatchGetItem", fmt.Errorf("unprocessed keys remained after %d rounds", round))
			}

			out, err := m.client.BatchGetItem(ctx, &sdk.BatchGetItemInput{
				RequestItems: requestItems,
			})
			if err != nil {
				return nil, classify("BatchGetItem", err)
			}

			for _, items := range out.Responses {
				for _, item := range items {
					obj, entityType, err := unmarshalPolymorphic(item)
					if err != nil {
						return nil, err
					}
					results[entityType] = append(results[entityType], obj)
				}
			}

			requestItems = out.UnprocessedKeys
		}
	}

	return results, nil
}

// BatchSave upserts all entities, chunked at the 25-request BatchWriteItem limit.
func (m *Mapper) BatchSave(ctx context.Context, entities []any) error {
	requests, err := m.writeRequests(entities, func(mapping registry.TableMapping, entity any) (types.WriteRequest, error) {
		item, err := marshalEntity(mapping, entity)
		if err != nil {
			return types.WriteRequest{}, err
		}
		return types.WriteRequest{PutRequest: &types.PutRequest{Item: item}}, nil
	})
	if err != nil {
		return err
	}
	return m.writeBatches(ctx, requests)
}

// BatchDelete removes all entities, chunked at the 25-request BatchWriteItem
// limit. Missing items are no-ops.
func (m *Mapper) BatchDelete(ctx context.Context, entities []any) error {
	requests, err := m.writeRequests(entities, func(mapping registry.TableMapping, entity any) (types.WriteRequest, error) {
		keyMap, err := marshalKey(mapping, mapping.EntityKey(entity))
		if err != nil {
			return types.WriteRequest{}, err
		}
		return types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: keyMap}}, nil
	})
	if err != nil {
		return err
	}
	return m.writeBatches(ctx, requests)
}

type tableWriteRequest struct {
	table   string
	request types.WriteRequest
}

func (m *Mapper) writeRequests(entities []any, build func(registry.TableMapping, any) (types.WriteRequest, error)) ([]tableWriteRequest, error) {
	requests := make([]tableWriteRequest, 0, len(entities))
	for _, entity := range entities {
		mapping, err := mappingForEntity(entity)
		if err != nil {
			return nil, err
		}
		req, err := build(mapping, entity)
		if err != nil {
			return nil, err
		}
		requests = append(requests, tableWriteRequest{table: mapping.TableName, request: req})
	}
	return requests, nil
}

func (m *Mapper) writeBatches(ctx context.Context, requests []tableWriteRequest) error {
	for start := 0; start < len(requests); start += maxBatchWriteSize {
		end := start + maxBatchWriteSize
		if end > len(requests) {
			end = len(requests)
		}

		requestItems := make(map[string][]types.WriteRequest)
		for _, r := range requests[start:end] {
			requestItems[r.table] = append(requestItems[r.table], r.request)
		}

		for round := 0; len(requestItems) > 0; round++ {
			if round >= maxUnprocessedRounds {
				return classify("BatchWriteItem", fmt.Errorf("unprocessed items remained after %d rounds", round))
			}

			out, err := m.client.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{
				RequestItems: requestItems,
			})
			if err != nil {
				return classify("BatchWriteItem", err)
			}

			requestItems = out.UnprocessedItems
		}
	}
	return nil
}

// unmarshalPolymorphic rehydrates an item using its EntityType attribute and
// returns the object together with its runtime type token.
func unmarshalPolymorphic(item map[string]types.AttributeValue) (any, reflect.Type, error) {
	attr, ok := item[AttributeNameEntityType]
	if !ok {
		return nil, nil, fmt.Errorf("missing %s attribute in item", AttributeNameEntityType)
	}
	name, ok := attr.(*types.AttributeValueMemberS)
	if !ok {
		return nil, nil, fmt.Errorf("%s attribute is not a string", AttributeNameEntityType)
	}

	fn, err := registry.GetUnmarshalFunc(name.Value)
	if err != nil {
		return nil, nil, err
	}
	obj, err := fn(item)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal item for EntityType %q: %w", name.Value, err)
	}

	token, err := registry.TypeTokenFor(name.Value)
	if err != nil {
		return nil, nil, err
	}
	return obj, token, nil
}
