/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityrepo

import (
	"fmt"
	"reflect"
	"sync"
)

// TypedRepositories provides type-safe access to the repositories registered
// for a specific entity type T and identifier type ID.
type TypedRepositories[T any, ID any] struct {
	mu    sync.RWMutex
	repos map[string]*Repository[T, ID]
}

// NewTypedRepositories creates a new TypedRepositories for type T
func NewTypedRepositories[T any, ID any]() *TypedRepositories[T, ID] {
	return &TypedRepositories[T, ID]{
		repos: make(map[string]*Repository[T, ID]),
	}
}

// Register adds a repository with the given key
func (tr *TypedRepositories[T, ID]) Register(key string, repo *Repository[T, ID]) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if _, exists := tr.repos[key]; exists {
		return fmt.Errorf("repository with key %q already registered", key)
	}

	tr.repos[key] = repo
	return nil
}

// Get retrieves a repository by key
func (tr *TypedRepositories[T, ID]) Get(key string) (*Repository[T, ID], error) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	repo, exists := tr.repos[key]
	if !exists {
		return nil, fmt.Errorf("repository with key %q not found", key)
	}

	return repo, nil
}

// Remove deletes a repository by key
func (tr *TypedRepositories[T, ID]) Remove(key string) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if _, exists := tr.repos[key]; !exists {
		return fmt.Errorf("repository with key %q not found", key)
	}

	delete(tr.repos, key)
	return nil
}

// List returns all registered repository keys
func (tr *TypedRepositories[T, ID]) List() []string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	keys := make([]string, 0, len(tr.repos))
	for k := range tr.repos {
		keys = append(keys, k)
	}
	return keys
}

// typePair keys a TypedRepositories by entity and identifier type, so the
// same entity type can be registered under distinct identifier types.
type typePair struct {
	entity reflect.Type
	id     reflect.Type
}

// MultiTypeRepositories manages TypedRepositories instances for different types
type MultiTypeRepositories struct {
	mu         sync.RWMutex
	registries map[typePair]interface{}
}

// NewMultiTypeRepositories creates a new MultiTypeRepositories
func NewMultiTypeRepositories() *MultiTypeRepositories {
	return &MultiTypeRepositories{
		registries: make(map[typePair]interface{}),
	}
}

// GetTypedRepositories returns a TypedRepositories for the specified type pair, creating it if necessary
func GetTypedRepositories[T any, ID any](mtr *MultiTypeRepositories) *TypedRepositories[T, ID] {
	mtr.mu.Lock()
	defer mtr.mu.Unlock()

	var zeroT T
	var zeroID ID
	pair := typePair{
		entity: reflect.TypeOf(zeroT),
		id:     reflect.TypeOf(zeroID),
	}

	if registry, exists := mtr.registries[pair]; exists {
		return registry.(*TypedRepositories[T, ID])
	}

	newRegistry := NewTypedRepositories[T, ID]()
	mtr.registries[pair] = newRegistry
	return newRegistry
}

// Convenience functions for common operations

// RegisterRepository is a convenience function to register a repository for type T
func RegisterRepository[T any, ID any](mtr *MultiTypeRepositories, key string, repo *Repository[T, ID]) error {
	registry := GetTypedRepositories[T, ID](mtr)
	return registry.Register(key, repo)
}

// GetRepository is a convenience function to get a repository for type T
func GetRepository[T any, ID any](mtr *MultiTypeRepositories, key string) (*Repository[T, ID], error) {
	registry := GetTypedRepositories[T, ID](mtr)
	return registry.Get(key)
}

// RemoveRepository is a convenience function to remove a repository for type T
func RemoveRepository[T any, ID any](mtr *MultiTypeRepositories, key string) error {
	registry := GetTypedRepositories[T, ID](mtr)
	return registry.Remove(key)
}

// ListRepositories is a convenience function to list all repositories for type T
func ListRepositories[T any, ID any](mtr *MultiTypeRepositories) []string {
	registry := GetTypedRepositories[T, ID](mtr)
	return registry.List()
}
