/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityrepo

import (
	"fmt"
	"testing"

	"github.com/suparena/entityrepo/datastore/mock"
	"github.com/suparena/entityrepo/keys"
)

type testUser struct {
	ID    string
	Name  string
	Email string
}

type testProduct struct {
	SKU   string
	Name  string
	Price float64
}

func newTestUserRepo(t *testing.T) *Repository[testUser, string] {
	t.Helper()
	desc := keys.NewDescriptor[testUser, string](func(id string) any {
		return "USER#" + id
	})
	repo, err := NewRepository(desc, mock.New())
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	return repo
}

func newTestProductRepo(t *testing.T) *Repository[testProduct, string] {
	t.Helper()
	desc := keys.NewDescriptor[testProduct, string](func(id string) any {
		return "PRODUCT#" + id
	})
	repo, err := NewRepository(desc, mock.New())
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	return repo
}

func TestTypedRepositories(t *testing.T) {
	t.Run("BasicOperations", func(t *testing.T) {
		registry := NewTypedRepositories[testUser, string]()

		userRepo := newTestUserRepo(t)
		err := registry.Register("users", userRepo)
		if err != nil {
			t.Fatalf("Failed to register: %v", err)
		}

		retrieved, err := registry.Get("users")
		if err != nil {
			t.Fatalf("Failed to get: %v", err)
		}
		if retrieved != userRepo {
			t.Fatal("Retrieved repository is not the registered one")
		}

		keys := registry.List()
		if len(keys) != 1 || keys[0] != "users" {
			t.Fatalf("Expected [users], got %v", keys)
		}

		err = registry.Remove("users")
		if err != nil {
			t.Fatalf("Failed to remove: %v", err)
		}

		_, err = registry.Get("users")
		if err == nil {
			t.Fatal("Expected error after removal")
		}
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		registry := NewTypedRepositories[testUser, string]()

		err := registry.Register("users", newTestUserRepo(t))
		if err != nil {
			t.Fatalf("First registration failed: %v", err)
		}

		err = registry.Register("users", newTestUserRepo(t))
		if err == nil {
			t.Fatal("Expected duplicate registration error")
		}
	})
}

func TestMultiTypeRepositories(t *testing.T) {
	mtr := NewMultiTypeRepositories()

	t.Run("DifferentTypes", func(t *testing.T) {
		err := RegisterRepository(mtr, "users", newTestUserRepo(t))
		if err != nil {
			t.Fatalf("Failed to register user repository: %v", err)
		}

		err = RegisterRepository(mtr, "products", newTestProductRepo(t))
		if err != nil {
			t.Fatalf("Failed to register product repository: %v", err)
		}

		retrievedUser, err := GetRepository[testUser, string](mtr, "users")
		if err != nil || retrievedUser == nil {
			t.Fatalf("Failed to get user repository: %v", err)
		}

		retrievedProduct, err := GetRepository[testProduct, string](mtr, "products")
		if err != nil || retrievedProduct == nil {
			t.Fatalf("Failed to get product repository: %v", err)
		}

		userKeys := ListRepositories[testUser, string](mtr)
		if len(userKeys) != 1 || userKeys[0] != "users" {
			t.Fatalf("Expected user keys [users], got %v", userKeys)
		}

		productKeys := ListRepositories[testProduct, string](mtr)
		if len(productKeys) != 1 || productKeys[0] != "products" {
			t.Fatalf("Expected product keys [products], got %v", productKeys)
		}
	})

	t.Run("SameKeyDifferentTypes", func(t *testing.T) {
		err := RegisterRepository(mtr, "items", newTestUserRepo(t))
		if err != nil {
			t.Fatalf("Failed to register user repository: %v", err)
		}

		err = RegisterRepository(mtr, "items", newTestProductRepo(t))
		if err != nil {
			t.Fatalf("Failed to register product repository: %v", err)
		}

		// Both succeed because the registries are keyed by type
		userItems, err := GetRepository[testUser, string](mtr, "items")
		if err != nil || userItems == nil {
			t.Fatal("Failed to get user items")
		}

		productItems, err := GetRepository[testProduct, string](mtr, "items")
		if err != nil || productItems == nil {
			t.Fatal("Failed to get product items")
		}
	})
}

func TestRegistryManager(t *testing.T) {
	registry := NewRegistry()

	userRepo := newTestUserRepo(t)
	if err := registry.RegisterRepository("Player", userRepo); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	if err := registry.RegisterRepository("Player", userRepo); err == nil {
		t.Fatal("Expected duplicate registration error")
	}

	got, err := registry.GetRepository("Player")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if _, ok := got.(*Repository[testUser, string]); !ok {
		t.Fatalf("Expected a *Repository[testUser, string], got %T", got)
	}

	if _, err := registry.GetRepository("Unknown"); err == nil {
		t.Fatal("Expected error for unknown key")
	}
}

func TestThreadSafety(t *testing.T) {
	mtr := NewMultiTypeRepositories()
	done := make(chan bool)

	// Concurrent writes
	for i := 0; i < 10; i++ {
		repo := newTestUserRepo(t)
		go func(id int) {
			key := fmt.Sprintf("repo%d", id)
			RegisterRepository(mtr, key, repo)
			done <- true
		}(i)
	}

	// Concurrent reads
	for i := 0; i < 10; i++ {
		go func() {
			ListRepositories[testUser, string](mtr)
			done <- true
		}()
	}

	// Wait for completion
	for i := 0; i < 20; i++ {
		<-done
	}

	keys := ListRepositories[testUser, string](mtr)
	if len(keys) != 10 {
		t.Fatalf("Expected 10 repositories, got %d", len(keys))
	}
}
