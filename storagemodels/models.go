/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ScanParams defines parameters for a DynamoDB Scan operation.
// Used for both materialized scans and streaming scans.
type ScanParams struct {
	// TableName is the DynamoDB table name.
	TableName string
	// FilterExpression is an optional filter expression.
	FilterExpression *string
	// ExpressionAttributeNames contains substitutions for reserved attribute names.
	ExpressionAttributeNames map[string]string
	// ExpressionAttributeValues contains the values for expression placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
	// Limit defines an optional limit per scan page.
	Limit *int32
	// ExclusiveStartKey for pagination.
	ExclusiveStartKey map[string]types.AttributeValue
	// Segment and TotalSegments configure a parallel scan. Both must be set
	// together; nil means a sequential scan.
	Segment       *int32
	TotalSegments *int32
}
