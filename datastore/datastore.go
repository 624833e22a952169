/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"reflect"

	"github.com/suparena/entityrepo/keys"
)

// StoreClient is the low-level persistence contract consumed by the
// repository layer. Entities flow through it opaquely; the client is
// responsible for record marshalling, connection management, and retry of
// store-level throttling.
//
// Batch operations are keyed by runtime entity type so a single client call
// can carry items of several types; the repository always sends well-formed
// per-type groups even when it manages a single type.
type StoreClient interface {
	// Load returns the entity of the given type stored under key, or nil if
	// no such item exists. Absence is not an error.
	Load(ctx context.Context, entityType reflect.Type, key keys.Key) (any, error)

	// BatchLoad resolves all keys in one store-level batch read. The result
	// maps each entity type to the items that were found; keys without a
	// matching item are simply absent from the result.
	BatchLoad(ctx context.Context, request map[reflect.Type][]keys.Key) (map[reflect.Type][]any, error)

	// Save upserts a single entity.
	Save(ctx context.Context, entity any) error

	// BatchSave upserts all entities in one store-level batch write.
	BatchSave(ctx context.Context, entities []any) error

	// Delete removes the item addressed by the entity's own key.
	Delete(ctx context.Context, entity any) error

	// DeleteKey removes the item of the given type stored under key without
	// loading it first. Deleting a missing item is a no-op.
	DeleteKey(ctx context.Context, entityType reflect.Type, key keys.Key) error

	// BatchDelete removes all entities in one store-level batch delete.
	// Missing items are no-ops, not errors.
	BatchDelete(ctx context.Context, entities []any) error

	// ScanAll returns every stored item of the given type. The full result
	// set is materialized before returning.
	ScanAll(ctx context.Context, entityType reflect.Type) ([]any, error)

	// ScanCount returns the exact number of stored items of the given type
	// by scanning; cost is proportional to table size.
	ScanCount(ctx context.Context, entityType reflect.Type) (int64, error)
}
