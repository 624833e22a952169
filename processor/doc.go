/*
Package processor provides code generation functionality for EntityRepo.

The processor reads YAML model specifications with vendor extensions and
generates Go code for automatic type registration and table mapping.

YAML Extension:
The processor looks for the x-dynamodb-keymap vendor extension:

	Player:
	  type: object
	  x-dynamodb-keymap:
	    table: app-data
	    hashKeyAttr: PK
	    rangeKeyAttr: SK
	    hashKey: "PLAYER#{ID}"
	    rangeKey: "PLAYER#{ID}"
	  properties:
	    id:
	      type: string

Generated Code:
The processor generates registration code:

	func init() {
	    // Register table mapping
	    registry.RegisterTableMapping[Player](registry.TableMapping{
	        TableName:    "app-data",
	        HashKeyAttr:  "PK",
	        RangeKeyAttr: "SK",
	        TypeName:     "Player",
	        EntityKey: func(e any) keys.Key {
	            m := e.(*Player)
	            return keys.Composite(
	                fmt.Sprintf("PLAYER#%v", m.ID),
	                fmt.Sprintf("PLAYER#%v", m.ID),
	            )
	        },
	    })

	    // Register unmarshal function
	    registry.RegisterType[Player]("Player", func(item map[string]types.AttributeValue) (interface{}, error) {
	        v := &Player{}
	        if err := attributevalue.UnmarshalMap(item, v); err != nil {
	            return nil, err
	        }
	        return v, nil
	    })
	}

This automation reduces boilerplate and ensures consistency between
the model specification and storage configuration.
*/
package processor
