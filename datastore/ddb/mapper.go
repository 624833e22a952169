/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entityrepo/datastore"
	"github.com/suparena/entityrepo/errors"
	"github.com/suparena/entityrepo/keys"
	"github.com/suparena/entityrepo/registry"
)

// AttributeNameEntityType is the attribute injected on save and used to
// select the unmarshal function on read.
const AttributeNameEntityType = "EntityType"

// Mapper implements datastore.StoreClient over AWS DynamoDB. Per-type table
// layout comes from the registry package; the Mapper itself holds no mutable
// state and is safe for concurrent use.
type Mapper struct {
	client DynamoDBAPI
}

var _ datastore.StoreClient = (*Mapper)(nil)

// NewMapper constructs a Mapper on top of an existing DynamoDB client.
func NewMapper(client DynamoDBAPI) *Mapper {
	return &Mapper{client: client}
}

// NewMapperFromCredentials constructs a Mapper with its own DynamoDB client
// built from static AWS credentials.
func NewMapperFromCredentials(awsAccessKey, awsSecretKey, awsRegion string) (*Mapper, error) {
	client, err := NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return NewMapper(client), nil
}

// Load retrieves a single item by key. It returns nil when no item exists.
func (m *Mapper) Load(ctx context.Context, entityType reflect.Type, key keys.Key) (any, error) {
	mapping, err := mappingFor(entityType)
	if err != nil {
		return nil, err
	}

	keyMap, err := marshalKey(mapping, key)
	if err != nil {
		return nil, err
	}

	out, err := m.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &mapping.TableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, classify("GetItem", err)
	}
	if out.Item == nil {
		// Not found: return nil, nil
		return nil, nil
	}

	return unmarshalAs(mapping, out.Item)
}

// Save upserts the given entity, injecting the key attributes and the
// EntityType attribute into the marshalled item.
func (m *Mapper) Save(ctx context.Context, entity any) error {
	mapping, err := mappingForEntity(entity)
	if err != nil {
		return err
	}

	item, err := marshalEntity(mapping, entity)
	if err != nil {
		return err
	}

	_, err = m.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &mapping.TableName,
		Item:      item,
	})
	if err != nil {
		return classify("PutItem", err)
	}
	return nil
}

// Delete removes the item addressed by the entity's own key.
// Deleting a missing item is a no-op.
func (m *Mapper) Delete(ctx context.Context, entity any) error {
	mapping, err := mappingForEntity(entity)
	if err != nil {
		return err
	}
	return m.deleteKey(ctx, mapping, mapping.EntityKey(entity))
}

// DeleteKey removes the item of the given type stored under key without
// loading it first.
func (m *Mapper) DeleteKey(ctx context.Context, entityType reflect.Type, key keys.Key) error {
	mapping, err := mappingFor(entityType)
	if err != nil {
		return err
	}
	return m.deleteKey(ctx, mapping, key)
}

func (m *Mapper) deleteKey(ctx context.Context, mapping registry.TableMapping, key keys.Key) error {
	keyMap, err := marshalKey(mapping, key)
	if err != nil {
		return err
	}

	_, err = m.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &mapping.TableName,
		Key:       keyMap,
	})
	if err != nil {
		return classify("DeleteItem", err)
	}
	return nil
}

// mappingFor resolves the table mapping for a runtime type token.
func mappingFor(entityType reflect.Type) (registry.TableMapping, error) {
	mapping, ok := registry.TableMappingFor(entityType)
	if !ok {
		return registry.TableMapping{}, fmt.Errorf("%w: %s", errors.ErrNoTableMapping, entityType)
	}
	return mapping, nil
}

// mappingForEntity resolves the table mapping for an entity instance,
// looking through one level of pointer indirection.
func mappingForEntity(entity any) (registry.TableMapping, error) {
	t := reflect.TypeOf(entity)
	if t == nil {
		return registry.TableMapping{}, fmt.Errorf("%w: nil entity", errors.ErrNoTableMapping)
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return mappingFor(t)
}

// marshalKey converts a store key into DynamoDB key attributes according to
// the table mapping. The key shape must agree with the mapping's shape.
func marshalKey(mapping registry.TableMapping, key keys.Key) (map[string]types.AttributeValue, error) {
	hash, err := attributevalue.Marshal(key.Hash)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal hash key: %w", err)
	}

	keyMap := map[string]types.AttributeValue{
		mapping.HashKeyAttr: hash,
	}

	if key.HasRange {
		if !mapping.RangeKeyAware() {
			return nil, fmt.Errorf("composite key supplied for hash-only table %q", mapping.TableName)
		}
		rng, err := attributevalue.Marshal(key.Range)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal range key: %w", err)
		}
		keyMap[mapping.RangeKeyAttr] = rng
	} else if mapping.RangeKeyAware() {
		return nil, fmt.Errorf("hash-only key supplied for composite-key table %q", mapping.TableName)
	}

	return keyMap, nil
}

// marshalEntity converts an entity into a DynamoDB item carrying its key
// attributes and the EntityType discriminator.
func marshalEntity(mapping registry.TableMapping, entity any) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}

	keyMap, err := marshalKey(mapping, mapping.EntityKey(entity))
	if err != nil {
		return nil, err
	}
	for k, v := range keyMap {
		item[k] = v
	}

	item[AttributeNameEntityType] = &types.AttributeValueMemberS{Value: mapping.TypeName}
	return item, nil
}

// unmarshalAs rehydrates a raw item using the unmarshal function registered
// for the mapping's type name.
func unmarshalAs(mapping registry.TableMapping, item map[string]types.AttributeValue) (any, error) {
	fn, err := registry.GetUnmarshalFunc(mapping.TypeName)
	if err != nil {
		return nil, err
	}
	obj, err := fn(item)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal item for EntityType %q: %w", mapping.TypeName, err)
	}
	return obj, nil
}

// classify translates SDK failures into the store error taxonomy. Throughput
// and request-limit rejections map to throttling; everything else is a plain
// store failure.
func classify(op string, err error) error {
	var throughput *types.ProvisionedThroughputExceededException
	var reqLimit *types.RequestLimitExceeded
	if stderrors.As(err, &throughput) || stderrors.As(err, &reqLimit) {
		return errors.NewThrottledError(op, err)
	}
	return errors.NewStoreError(op, err)
}
