/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"reflect"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entityrepo/registry"
	"github.com/suparena/entityrepo/storagemodels"
)

// ScanAll returns every stored item of the given type, paging through the
// table until LastEvaluatedKey is exhausted. The full result set is
// materialized in memory; very large tables should use ScanStream instead.
func (m *Mapper) ScanAll(ctx context.Context, entityType reflect.Type) ([]any, error) {
	mapping, err := mappingFor(entityType)
	if err != nil {
		return nil, err
	}

	input := buildScanInput(mapping, nil)

	var results []any
	for {
		out, err := m.client.Scan(ctx, input)
		if err != nil {
			return nil, classify("Scan", err)
		}

		for _, item := range out.Items {
			obj, err := unmarshalAs(mapping, item)
			if err != nil {
				return nil, err
			}
			results = append(results, obj)
		}

		if out.LastEvaluatedKey == nil {
			return results, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// ScanCount returns the exact number of stored items of the given type.
// The count is produced by a Select=COUNT scan, so cost grows with table size.
func (m *Mapper) ScanCount(ctx context.Context, entityType reflect.Type) (int64, error) {
	mapping, err := mappingFor(entityType)
	if err != nil {
		return 0, err
	}

	input := buildScanInput(mapping, nil)
	input.Select = types.SelectCount

	var total int64
	for {
		out, err := m.client.Scan(ctx, input)
		if err != nil {
			return 0, classify("Scan", err)
		}

		total += int64(out.Count)

		if out.LastEvaluatedKey == nil {
			return total, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// Scan runs a caller-parameterized scan and resolves each item through its
// EntityType attribute, so a filter spanning several entity types yields a
// mixed result. It is the raw escape hatch under ScanAll; most callers want
// the typed repository operations instead.
func (m *Mapper) Scan(ctx context.Context, params *storagemodels.ScanParams) ([]any, error) {
	input := &sdk.ScanInput{
		TableName:                 &params.TableName,
		FilterExpression:          params.FilterExpression,
		ExpressionAttributeNames:  params.ExpressionAttributeNames,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		Limit:                     params.Limit,
		ExclusiveStartKey:         params.ExclusiveStartKey,
		Segment:                   params.Segment,
		TotalSegments:             params.TotalSegments,
	}

	var results []any
	for {
		out, err := m.client.Scan(ctx, input)
		if err != nil {
			return nil, classify("Scan", err)
		}

		for _, item := range out.Items {
			obj, _, err := unmarshalPolymorphic(item)
			if err != nil {
				return nil, err
			}
			results = append(results, obj)
		}

		if out.LastEvaluatedKey == nil {
			return results, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// buildScanInput constructs an unconditioned scan over one entity type,
// filtered on the EntityType attribute so polymorphic tables only yield
// items of the requested type.
func buildScanInput(mapping registry.TableMapping, limit *int32) *sdk.ScanInput {
	filter := "#et = :et"
	return &sdk.ScanInput{
		TableName:        &mapping.TableName,
		FilterExpression: &filter,
		ExpressionAttributeNames: map[string]string{
			"#et": AttributeNameEntityType,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":et": &types.AttributeValueMemberS{Value: mapping.TypeName},
		},
		Limit: limit,
	}
}
