/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a mock implementation of the StoreClient interface for testing
package mock

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/entityrepo/datastore"
	"github.com/suparena/entityrepo/keys"
)

// Call records one operation issued against the mock store client.
type Call struct {
	// Op is the operation name: Load, BatchLoad, Save, BatchSave, Delete,
	// DeleteKey, BatchDelete, ScanAll or ScanCount.
	Op string
	// Type is the entity type for type-addressed operations.
	Type reflect.Type
	// Keys holds the keys the operation was called with, in request order.
	Keys []keys.Key
	// Entities holds the entities the operation was called with, in request order.
	Entities []any
	// Request is the per-type key grouping of a BatchLoad.
	Request map[reflect.Type][]keys.Key
}

// StoreClient is a mock implementation of datastore.StoreClient for testing.
// It keeps items in memory, records every call, and can be configured to
// fail specific operations.
type StoreClient struct {
	mu         sync.RWMutex
	data       map[reflect.Type]map[string]any
	order      map[reflect.Type][]string
	entityKeys map[reflect.Type]func(any) keys.Key
	calls      []Call

	loadError   error
	saveError   error
	deleteError error
	scanError   error
}

var _ datastore.StoreClient = (*StoreClient)(nil)

// New creates a new mock StoreClient
func New() *StoreClient {
	return &StoreClient{
		data:       make(map[reflect.Type]map[string]any),
		order:      make(map[reflect.Type][]string),
		entityKeys: make(map[reflect.Type]func(any) keys.Key),
	}
}

// RegisterEntityKey registers the key-derivation function for entities of
// type T, used by save and delete paths that hold an entity instead of a key.
func RegisterEntityKey[T any](c *StoreClient, fn func(*T) keys.Key) *StoreClient {
	var zero T
	c.entityKeys[reflect.TypeOf(zero)] = func(e any) keys.Key {
		return fn(e.(*T))
	}
	return c
}

// WithLoadError makes Load and BatchLoad operations return an error
func (c *StoreClient) WithLoadError(err error) *StoreClient {
	c.loadError = err
	return c
}

// WithSaveError makes Save and BatchSave operations return an error
func (c *StoreClient) WithSaveError(err error) *StoreClient {
	c.saveError = err
	return c
}

// WithDeleteError makes Delete, DeleteKey and BatchDelete operations return an error
func (c *StoreClient) WithDeleteError(err error) *StoreClient {
	c.deleteError = err
	return c
}

// WithScanError makes ScanAll and ScanCount operations return an error
func (c *StoreClient) WithScanError(err error) *StoreClient {
	c.scanError = err
	return c
}

// Seed stores entities directly, without recording a call. Entities must be
// pointers to types with a registered key-derivation function.
func (c *StoreClient) Seed(entities ...any) *StoreClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entities {
		c.put(e)
	}
	return c
}

// Calls returns every recorded call in issue order.
func (c *StoreClient) Calls() []Call {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Call, len(c.calls))
	copy(out, c.calls)
	return out
}

// CallsFor returns the recorded calls with the given operation name.
func (c *StoreClient) CallsFor(op string) []Call {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Call
	for _, call := range c.calls {
		if call.Op == op {
			out = append(out, call)
		}
	}
	return out
}

// Load retrieves the entity stored under key, or nil when absent
func (c *StoreClient) Load(ctx context.Context, entityType reflect.Type, key keys.Key) (any, error) {
	c.mu.Lock()
	c.calls = append(c.calls, Call{Op: "Load", Type: entityType, Keys: []keys.Key{key}})
	c.mu.Unlock()

	if c.loadError != nil {
		return nil, c.loadError
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.data[entityType][canonical(key)]; ok {
		return e, nil
	}
	return nil, nil
}

// BatchLoad resolves all keys; missing items are absent from the result
func (c *StoreClient) BatchLoad(ctx context.Context, request map[reflect.Type][]keys.Key) (map[reflect.Type][]any, error) {
	recorded := make(map[reflect.Type][]keys.Key, len(request))
	for t, ks := range request {
		recorded[t] = append([]keys.Key(nil), ks...)
	}
	c.mu.Lock()
	c.calls = append(c.calls, Call{Op: "BatchLoad", Request: recorded})
	c.mu.Unlock()

	if c.loadError != nil {
		return nil, c.loadError
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	results := make(map[reflect.Type][]any, len(request))
	for t, ks := range request {
		for _, k := range ks {
			if e, ok := c.data[t][canonical(k)]; ok {
				results[t] = append(results[t], e)
			}
		}
	}
	return results, nil
}

// Save upserts a single entity
func (c *StoreClient) Save(ctx context.Context, entity any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Op: "Save", Type: typeOf(entity), Entities: []any{entity}})

	if c.saveError != nil {
		return c.saveError
	}
	return c.put(entity)
}

// BatchSave upserts all entities in one recorded call
func (c *StoreClient) BatchSave(ctx context.Context, entities []any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Op: "BatchSave", Entities: append([]any(nil), entities...)})

	if c.saveError != nil {
		return c.saveError
	}
	for _, e := range entities {
		if err := c.put(e); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the item addressed by the entity's key; missing items are no-ops
func (c *StoreClient) Delete(ctx context.Context, entity any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Op: "Delete", Type: typeOf(entity), Entities: []any{entity}})

	if c.deleteError != nil {
		return c.deleteError
	}

	key, err := c.keyOf(entity)
	if err != nil {
		return err
	}
	c.remove(typeOf(entity), key)
	return nil
}

// DeleteKey removes the item stored under key without loading it first
func (c *StoreClient) DeleteKey(ctx context.Context, entityType reflect.Type, key keys.Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Op: "DeleteKey", Type: entityType, Keys: []keys.Key{key}})

	if c.deleteError != nil {
		return c.deleteError
	}
	c.remove(entityType, key)
	return nil
}

// BatchDelete removes all entities in one recorded call
func (c *StoreClient) BatchDelete(ctx context.Context, entities []any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Op: "BatchDelete", Entities: append([]any(nil), entities...)})

	if c.deleteError != nil {
		return c.deleteError
	}
	for _, e := range entities {
		key, err := c.keyOf(e)
		if err != nil {
			return err
		}
		c.remove(typeOf(e), key)
	}
	return nil
}

// ScanAll returns every stored item of the given type in insertion order
func (c *StoreClient) ScanAll(ctx context.Context, entityType reflect.Type) ([]any, error) {
	c.mu.Lock()
	c.calls = append(c.calls, Call{Op: "ScanAll", Type: entityType})
	c.mu.Unlock()

	if c.scanError != nil {
		return nil, c.scanError
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	var results []any
	for _, k := range c.order[entityType] {
		if e, ok := c.data[entityType][k]; ok {
			results = append(results, e)
		}
	}
	return results, nil
}

// ScanCount returns the number of stored items of the given type
func (c *StoreClient) ScanCount(ctx context.Context, entityType reflect.Type) (int64, error) {
	c.mu.Lock()
	c.calls = append(c.calls, Call{Op: "ScanCount", Type: entityType})
	c.mu.Unlock()

	if c.scanError != nil {
		return 0, c.scanError
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.data[entityType])), nil
}

// put stores an entity under its derived key. Callers must hold the lock.
func (c *StoreClient) put(entity any) error {
	key, err := c.keyOf(entity)
	if err != nil {
		return err
	}
	t := typeOf(entity)
	if c.data[t] == nil {
		c.data[t] = make(map[string]any)
	}
	ck := canonical(key)
	if _, exists := c.data[t][ck]; !exists {
		c.order[t] = append(c.order[t], ck)
	}
	c.data[t][ck] = entity
	return nil
}

func (c *StoreClient) remove(t reflect.Type, key keys.Key) {
	delete(c.data[t], canonical(key))
}

func (c *StoreClient) keyOf(entity any) (keys.Key, error) {
	fn, ok := c.entityKeys[typeOf(entity)]
	if !ok {
		return keys.Key{}, fmt.Errorf("no entity key function registered for %T", entity)
	}
	return fn(entity), nil
}

func typeOf(entity any) reflect.Type {
	t := reflect.TypeOf(entity)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func canonical(key keys.Key) string {
	if key.HasRange {
		return fmt.Sprintf("%v|%v", key.Hash, key.Range)
	}
	return fmt.Sprintf("%v", key.Hash)
}
