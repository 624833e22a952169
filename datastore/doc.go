/*
Package datastore defines the store-client contract consumed by EntityRepo's
repository layer.

The StoreClient interface covers point lookups by hash or hash+range key,
batch reads and writes grouped by runtime entity type, unconditioned scans,
and scan-based counts:

	type StoreClient interface {
	    Load(ctx context.Context, entityType reflect.Type, key keys.Key) (any, error)
	    BatchLoad(ctx context.Context, request map[reflect.Type][]keys.Key) (map[reflect.Type][]any, error)
	    Save(ctx context.Context, entity any) error
	    BatchSave(ctx context.Context, entities []any) error
	    Delete(ctx context.Context, entity any) error
	    DeleteKey(ctx context.Context, entityType reflect.Type, key keys.Key) error
	    BatchDelete(ctx context.Context, entities []any) error
	    ScanAll(ctx context.Context, entityType reflect.Type) ([]any, error)
	    ScanCount(ctx context.Context, entityType reflect.Type) (int64, error)
	}

Implementations:
  - ddb: DynamoDB implementation backed by table mappings from the registry package
  - mock: In-memory, call-recording implementation for testing

Entities are passed through opaquely; marshalling between domain objects and
store records belongs to the implementation, not to callers.
*/
package datastore
