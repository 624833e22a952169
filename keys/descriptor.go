/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import (
	"reflect"
)

// Key is a store-native key with a mandatory hash component and an optional
// range component. HasRange distinguishes a hash-only key from a composite
// key whose range component happens to be nil.
type Key struct {
	Hash     any
	Range    any
	HasRange bool
}

// HashKey returns the hash component of the key.
func (k Key) HashKey() any { return k.Hash }

// RangeKey returns the range component of the key, or nil for hash-only keys.
func (k Key) RangeKey() any { return k.Range }

// HashOnly builds a single-component key.
func HashOnly(hash any) Key {
	return Key{Hash: hash}
}

// Composite builds a two-component key.
func Composite(hash, rng any) Key {
	return Key{Hash: hash, Range: rng, HasRange: true}
}

// HashKeyFunc derives the hash component of a store key from an identifier.
type HashKeyFunc[ID any] func(id ID) any

// RangeKeyFunc derives the range component of a store key from an identifier.
type RangeKeyFunc[ID any] func(id ID) any

// Descriptor is the per-entity-type key strategy for entity type T with
// identifier type ID. It knows whether T uses a composite hash+range key and
// how to derive each component from an identifier.
//
// A Descriptor is immutable after construction. The derivation functions must
// be pure; the repository invokes them from concurrent callers and batch
// iterations without synchronization.
type Descriptor[T any, ID any] struct {
	hashKey    HashKeyFunc[ID]
	rangeKey   RangeKeyFunc[ID]
	entityType reflect.Type
}

// NewDescriptor creates a descriptor for a hash-key-only entity type.
func NewDescriptor[T any, ID any](hashKey HashKeyFunc[ID]) *Descriptor[T, ID] {
	if hashKey == nil {
		panic("keys: hash key function must not be nil")
	}
	return &Descriptor[T, ID]{
		hashKey:    hashKey,
		entityType: typeOf[T](),
	}
}

// NewCompositeDescriptor creates a descriptor for a range-key-aware entity type.
func NewCompositeDescriptor[T any, ID any](hashKey HashKeyFunc[ID], rangeKey RangeKeyFunc[ID]) *Descriptor[T, ID] {
	if hashKey == nil {
		panic("keys: hash key function must not be nil")
	}
	if rangeKey == nil {
		panic("keys: range key function must not be nil")
	}
	return &Descriptor[T, ID]{
		hashKey:    hashKey,
		rangeKey:   rangeKey,
		entityType: typeOf[T](),
	}
}

// RangeKeyAware reports whether the entity type uses a composite key.
// The answer is fixed for the descriptor's lifetime.
func (d *Descriptor[T, ID]) RangeKeyAware() bool {
	return d.rangeKey != nil
}

// HashKey derives the hash component of the key for id.
func (d *Descriptor[T, ID]) HashKey(id ID) any {
	return d.hashKey(id)
}

// RangeKey derives the range component of the key for id.
// It panics if the entity type is not range-key-aware.
func (d *Descriptor[T, ID]) RangeKey(id ID) any {
	if d.rangeKey == nil {
		panic("keys: entity type is not range-key-aware")
	}
	return d.rangeKey(id)
}

// Key builds the store key for id, with one or two components depending on
// the entity type's range-key-awareness.
func (d *Descriptor[T, ID]) Key(id ID) Key {
	if d.rangeKey != nil {
		return Composite(d.hashKey(id), d.rangeKey(id))
	}
	return HashOnly(d.hashKey(id))
}

// EntityType returns the runtime type token of T, used to group batch
// requests by entity type.
func (d *Descriptor[T, ID]) EntityType() reflect.Type {
	return d.entityType
}

func typeOf[T any]() reflect.Type {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		// T is an interface type; fall back to the pointer-elem idiom.
		t = reflect.TypeOf((*T)(nil)).Elem()
	}
	return t
}
