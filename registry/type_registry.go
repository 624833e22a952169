package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UnmarshalFunc defines a function that takes a raw DynamoDB item and returns the unmarshaled object.
type UnmarshalFunc func(item map[string]types.AttributeValue) (interface{}, error)

var (
	typeRegistry = make(map[string]UnmarshalFunc)
	typeTokens   = make(map[string]reflect.Type)
	typeMu       sync.RWMutex
)

// RegisterType registers an unmarshal function for a given entity type name.
// If a type is already registered for the given name, it panics to prevent accidental overrides.
func RegisterType[T any](name string, fn UnmarshalFunc) {
	typeMu.Lock()
	defer typeMu.Unlock()

	if _, exists := typeRegistry[name]; exists {
		panic(fmt.Sprintf("type registry: type with name %q already registered", name))
	}
	typeRegistry[name] = fn
	typeTokens[name] = typeOf[T]()
}

// GetUnmarshalFunc returns the registered unmarshal function for the given entity type name.
// If no function is registered, it returns an error.
func GetUnmarshalFunc(name string) (UnmarshalFunc, error) {
	typeMu.RLock()
	defer typeMu.RUnlock()

	fn, ok := typeRegistry[name]
	if !ok {
		return nil, fmt.Errorf("type registry: no type registered for name %q", name)
	}
	return fn, nil
}

// TypeTokenFor returns the runtime type token registered under the given
// entity type name. Batch and scan paths use it to group results by type.
func TypeTokenFor(name string) (reflect.Type, error) {
	typeMu.RLock()
	defer typeMu.RUnlock()

	t, ok := typeTokens[name]
	if !ok {
		return nil, fmt.Errorf("type registry: no type registered for name %q", name)
	}
	return t, nil
}
