/*
Package storagemodels defines the data structures used throughout EntityRepo.

Key Types:

ScanParams:
Parameters for scanning the datastore:

	params := &ScanParams{
	    TableName:        "app-data",
	    FilterExpression: aws.String("#et = :et"),
	    ExpressionAttributeNames: map[string]string{"#et": "EntityType"},
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":et": &types.AttributeValueMemberS{Value: "User"},
	    },
	}

StreamResult:
Results from streaming scans with metadata:

	type StreamResult[T any] struct {
	    Item  T                               // The typed entity
	    Raw   map[string]types.AttributeValue // Raw DynamoDB attributes
	    Error error                           // Item-specific error, if any
	    Meta  StreamMeta                      // Metadata about this item
	}

StreamOptions:
Configuration for streaming behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithMaxRetries(3),
	    WithProgressHandler(progressFunc),
	}

These types provide a consistent interface across different storage implementations.
*/
package storagemodels
