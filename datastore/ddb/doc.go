/*
Package ddb provides a DynamoDB implementation of the StoreClient interface.

The Mapper supports:
  - Point lookups and deletes by hash or hash+range key
  - Batch reads grouped by entity type (chunked at the 100-key limit)
  - Batch writes and deletes (chunked at the 25-request limit, with bounded
    re-drive of unprocessed keys/items)
  - Unconditioned scans and scan-based counts filtered on the EntityType
    attribute
  - Automatic EntityType injection for polymorphic single-table storage

Table layout is supplied per entity type through the registry package:

	registry.RegisterTableMapping[Player](registry.TableMapping{
	    TableName:   "app-data",
	    HashKeyAttr: "PK",
	    TypeName:    "Player",
	    EntityKey: func(e any) keys.Key {
	        return keys.HashOnly("PLAYER#" + e.(*Player).ID)
	    },
	})

Streaming:
ScanStream is the incremental alternative to ScanAll for large tables, with
configurable options:

	results := ddb.ScanStream[Player](ctx, mapper,
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	    storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
	        log.Printf("Processed %d items", p.ItemsProcessed)
	    }),
	)

Throughput and request-limit rejections are classified as throttling errors;
all other SDK failures surface as store-unavailable errors. Both can be
inspected with the errors package helpers.
*/
package ddb
