// Package model contains the value objects that represent Petstore wire entities, and the
// binding rules that turn an arbitrary raw object into one of them.
//
// Binding keeps only the fields that a model declares. Unknown input fields are dropped rather
// than reported, and declared fields that are missing from the input stay unset, which means
// they are also absent from the model's encoded form.
package model

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
)

// Constructor turns a raw object (a map, a struct, a json.RawMessage, ...) into a model value.
type Constructor func(raw interface{}) (interface{}, error)

// For returns a Constructor that binds raw input into a new *T.
func For[T any]() Constructor {
	return func(raw interface{}) (interface{}, error) {
		var m T
		if err := Bind(raw, &m); err != nil {
			return nil, err
		}
		return &m, nil
	}
}

// Bind copies the declared fields of raw into the struct pointed to by into.
func Bind(raw interface{}, into interface{}) error {
	var data []byte
	switch r := raw.(type) {
	case nil:
		return nil
	case []byte:
		data = r
	case json.RawMessage:
		data = r
	default:
		var err error
		if data, err = json.Marshal(raw); err != nil {
			return fmt.Errorf("cannot encode %T for binding: %w", raw, err)
		}
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("cannot bind %s: %w", typeName(into), err)
	}
	return nil
}

func typeName(v interface{}) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "<nil>"
	}
	return t.Name()
}

var catalog = map[string]Constructor{
	"Pet":         For[Pet](),
	"Category":    For[Category](),
	"Tag":         For[Tag](),
	"APIResponse": For[APIResponse](),
}

// Lookup returns the Constructor registered under a model name, for descriptor files that refer
// to models by name.
func Lookup(name string) (Constructor, bool) {
	c, ok := catalog[name]
	return c, ok
}
