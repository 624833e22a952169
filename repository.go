/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityrepo

import (
	"context"
	"fmt"
	"reflect"

	"github.com/suparena/entityrepo/datastore"
	"github.com/suparena/entityrepo/errors"
	"github.com/suparena/entityrepo/keys"
)

// Repository provides generic CRUD operations for entity type T addressed by
// identifier type ID. Key construction is delegated to the key descriptor,
// persistence to the store client; the repository itself holds no mutable
// state and is safe for concurrent use. Concurrent operations on the same
// identifier are not coordinated; callers needing that must serialize at the
// application level.
type Repository[T any, ID any] struct {
	desc  *keys.Descriptor[T, ID]
	store datastore.StoreClient
}

// NewRepository creates a repository for type T backed by the given store client.
func NewRepository[T any, ID any](desc *keys.Descriptor[T, ID], store datastore.StoreClient) (*Repository[T, ID], error) {
	if desc == nil {
		return nil, errors.NewInvalidArgumentError("desc", "key descriptor must not be nil")
	}
	if store == nil {
		return nil, errors.NewInvalidArgumentError("store", "store client must not be nil")
	}
	return &Repository[T, ID]{desc: desc, store: store}, nil
}

// Load retrieves the entity identified by id, or nil if no such item exists.
// Absence is a normal result, not an error.
func (r *Repository[T, ID]) Load(ctx context.Context, id ID) (*T, error) {
	out, err := r.store.Load(ctx, r.desc.EntityType(), r.desc.Key(id))
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return r.assert(out)
}

// LoadMany retrieves the entities for all given ids in one batch read. Ids
// whose item does not exist are simply absent from the result; the output is
// the found subset in whatever order the store client returns it, not a
// positionally-aligned slice.
func (r *Repository[T, ID]) LoadMany(ctx context.Context, ids []ID) ([]*T, error) {
	entityType := r.desc.EntityType()

	batchKeys := make([]keys.Key, 0, len(ids))
	for _, id := range ids {
		batchKeys = append(batchKeys, r.desc.Key(id))
	}

	out, err := r.store.BatchLoad(ctx, map[reflect.Type][]keys.Key{entityType: batchKeys})
	if err != nil {
		return nil, err
	}

	found := out[entityType]
	entities := make([]*T, 0, len(found))
	for _, item := range found {
		entity, err := r.assert(item)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// Save upserts the entity and returns the same reference it was given, so
// store-assigned fields written by the client are visible to the caller.
func (r *Repository[T, ID]) Save(ctx context.Context, entity *T) (*T, error) {
	if err := r.store.Save(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// SaveMany upserts all entities in one batch write and returns the input
// slice. Partial batch failures are the store client's concern; from the
// caller's perspective the write either succeeds as a whole or fails.
func (r *Repository[T, ID]) SaveMany(ctx context.Context, entities []*T) ([]*T, error) {
	if err := r.store.BatchSave(ctx, asAny(entities)); err != nil {
		return nil, err
	}
	return entities, nil
}

// Exists reports whether an entity with the given id is stored.
// The id must not be nil.
func (r *Repository[T, ID]) Exists(ctx context.Context, id ID) (bool, error) {
	if isNil(id) {
		return false, errors.NewInvalidArgumentError("id", "must not be nil")
	}
	entity, err := r.Load(ctx, id)
	if err != nil {
		return false, err
	}
	return entity != nil, nil
}

// FindAll returns every stored entity of type T. The full result set is
// materialized before returning.
func (r *Repository[T, ID]) FindAll(ctx context.Context) ([]*T, error) {
	out, err := r.store.ScanAll(ctx, r.desc.EntityType())
	if err != nil {
		return nil, err
	}
	entities := make([]*T, 0, len(out))
	for _, item := range out {
		entity, err := r.assert(item)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// Count returns the exact number of stored entities of type T by scanning;
// cost grows with table size.
func (r *Repository[T, ID]) Count(ctx context.Context) (int64, error) {
	return r.store.ScanCount(ctx, r.desc.EntityType())
}

// DeleteByID loads the entity identified by id and deletes it. If no such
// entity exists it fails with a not-found error naming the entity type and
// id. The read-before-delete costs an extra round trip and is racy under
// concurrent modification; callers wanting delete-if-exists semantics without
// the read should use DeleteKey instead.
func (r *Repository[T, ID]) DeleteByID(ctx context.Context, id ID) error {
	if isNil(id) {
		return errors.NewInvalidArgumentError("id", "must not be nil")
	}

	entity, err := r.Load(ctx, id)
	if err != nil {
		return err
	}
	if entity == nil {
		return errors.NewNotFoundError(r.typeName(), fmt.Sprintf("%v", id))
	}
	return r.store.Delete(ctx, entity)
}

// DeleteKey removes the item identified by id without loading it first.
// Deleting a missing item is a no-op, not an error.
func (r *Repository[T, ID]) DeleteKey(ctx context.Context, id ID) error {
	if isNil(id) {
		return errors.NewInvalidArgumentError("id", "must not be nil")
	}
	return r.store.DeleteKey(ctx, r.desc.EntityType(), r.desc.Key(id))
}

// Delete removes the given entity. The entity must not be nil; no existence
// check is performed.
func (r *Repository[T, ID]) Delete(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.NewInvalidArgumentError("entity", "must not be nil")
	}
	return r.store.Delete(ctx, entity)
}

// DeleteMany removes all given entities in one batch delete. Unlike
// DeleteByID there is no per-item existence check; deleting a missing item
// through the batch path is a no-op.
func (r *Repository[T, ID]) DeleteMany(ctx context.Context, entities []*T) error {
	if entities == nil {
		return errors.NewInvalidArgumentError("entities", "must not be nil")
	}
	return r.store.BatchDelete(ctx, asAny(entities))
}

// DeleteAll scans every stored entity of type T into memory and removes them
// in one batch delete. Cost is proportional to table size in both reads and
// memory; very large tables should page and delete incrementally instead.
func (r *Repository[T, ID]) DeleteAll(ctx context.Context) error {
	entities, err := r.FindAll(ctx)
	if err != nil {
		return err
	}
	return r.store.BatchDelete(ctx, asAny(entities))
}

func (r *Repository[T, ID]) typeName() string {
	return r.desc.EntityType().Name()
}

func (r *Repository[T, ID]) assert(item any) (*T, error) {
	entity, ok := item.(*T)
	if !ok {
		return nil, fmt.Errorf("store client returned %T for entity type %s", item, r.typeName())
	}
	return entity, nil
}

func asAny[T any](entities []*T) []any {
	out := make([]any, len(entities))
	for i, e := range entities {
		out[i] = e
	}
	return out
}

// isNil reports whether a generic identifier is nil. Value-typed identifiers
// are never nil; pointer-like kinds are checked through reflection.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
