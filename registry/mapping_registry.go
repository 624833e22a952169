/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"

	"github.com/suparena/entityrepo/keys"
)

// TableMapping describes how one entity type is laid out in DynamoDB.
type TableMapping struct {
	// TableName is the DynamoDB table holding items of this type.
	TableName string

	// HashKeyAttr is the partition key attribute name (e.g. "PK").
	HashKeyAttr string

	// RangeKeyAttr is the sort key attribute name. Empty for tables keyed by
	// partition key alone.
	RangeKeyAttr string

	// TypeName is the value written to the EntityType attribute on save and
	// used to select the unmarshal function on read.
	TypeName string

	// EntityKey derives the store key from an entity instance. It is used by
	// delete and save paths, which hold an entity rather than an identifier.
	EntityKey func(entity any) keys.Key
}

// RangeKeyAware reports whether the mapping describes a composite-key table.
func (m TableMapping) RangeKeyAware() bool {
	return m.RangeKeyAttr != ""
}

var (
	mappingRegistry = make(map[reflect.Type]TableMapping)
	mu              sync.RWMutex
)

// RegisterTableMapping associates a Go type T with its DynamoDB table mapping.
func RegisterTableMapping[T any](m TableMapping) {
	t := typeOf[T]()

	mu.Lock()
	defer mu.Unlock()
	mappingRegistry[t] = m
}

// GetTableMapping retrieves the table mapping for type T, if any.
func GetTableMapping[T any]() (TableMapping, bool) {
	return TableMappingFor(typeOf[T]())
}

// TableMappingFor retrieves the table mapping for a runtime type token.
func TableMappingFor(t reflect.Type) (TableMapping, bool) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := mappingRegistry[t]
	return m, ok
}

func typeOf[T any]() reflect.Type {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		t = reflect.TypeOf((*T)(nil)).Elem()
	}
	return t
}
