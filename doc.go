/*
Package entityrepo provides a generic CRUD repository layer for Go applications
backed by schemaless key-value tables, with type-safe operations addressed by
hash or hash-and-range keys.

The library follows a design-time → build-time → runtime workflow:
  - Design-time: Define entities and describe their key layout
  - Build-time: Generate table mappings and type registrations
  - Runtime: Use type-safe repository operations

Key Features:
  - Type-safe CRUD operations using Go generics
  - Hash-only and hash-and-range key addressing through key descriptors
  - Batch reads, writes and deletes grouped per entity type
  - Annotation-driven code generation from YAML model specs
  - Enhanced streaming with retry logic and progress tracking
  - Semantic error types for better error handling
  - Thread-safe repository management
  - Comprehensive mock implementations for testing

Basic Usage:

	// Describe how identifiers map to storage keys
	desc := keys.NewDescriptor[User, string](func(id string) any {
		return "USER#" + id
	})

	// Create a repository over a DynamoDB-backed store client
	mapper, _ := ddb.NewMapperFromCredentials(accessKey, secretKey, region)
	users, _ := entityrepo.NewRepository(desc, mapper)

	// Use the repository
	user, _ := users.Save(ctx, &User{ID: "123", Name: "John"})
	found, _ := users.Load(ctx, "123")
	err := users.DeleteByID(ctx, "123")

For more information, see the documentation at https://github.com/suparena/entityrepo
*/
package entityrepo
