/*
Package registry manages table mappings and type registration for EntityRepo.

The registry system enables:
  - Polymorphic entity storage in a single DynamoDB table
  - Dynamic type resolution based on the EntityType attribute
  - Key construction for entities held by value (delete and save paths)

Table Mapping Registry:
Associates Go types with their DynamoDB layout:

	registry.RegisterTableMapping[User](registry.TableMapping{
	    TableName:   "app-data",
	    HashKeyAttr: "PK",
	    RangeKeyAttr: "SK",
	    TypeName:    "User",
	    EntityKey: func(e any) keys.Key {
	        u := e.(*User)
	        return keys.Composite("USER#"+u.ID, "USER#"+u.ID)
	    },
	})

Type Registry:
Maps entity type names to unmarshal functions:

	registry.RegisterType[User]("User", func(item map[string]types.AttributeValue) (interface{}, error) {
	    u := &User{}
	    if err := attributevalue.UnmarshalMap(item, u); err != nil {
	        return nil, err
	    }
	    return u, nil
	})

The registry is thread-safe and should be populated during initialization,
typically in init() functions or through generated code (see the processor
package and cmd/keymapgen).
*/
package registry
