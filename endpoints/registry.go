// Package endpoints maps logical operation keys to the HTTP method, URL and models of a
// concrete request.
//
// A Registry is built once at startup and never changes afterward, so it can be shared freely
// between concurrently running scenarios.
package endpoints

import (
	"fmt"
	"strings"

	"github.com/restcontract/petstore-contract-tests/model"
)

// OperationKey is the logical name of one registered operation, such as "CREATE_PET".
type OperationKey string

// Method is an HTTP verb supported by the dispatcher.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// ParseMethod accepts a method name in any case.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return m, nil
	}
	return "", fmt.Errorf("unsupported HTTP method %q", s)
}

// Descriptor describes one operation.
type Descriptor struct {
	Key    OperationKey
	Method Method
	URL    URLSpec

	// RequestModel, if set, filters request data down to the declared fields before sending.
	RequestModel model.Constructor
	// ResponseModel, if set, is available to callers that want a typed response.
	ResponseModel model.Constructor

	// Model names, used only for display.
	RequestModelName  string
	ResponseModelName string
}

// ProjectResponse binds data through the ResponseModel, or returns it unchanged if there is no
// ResponseModel or no data.
func (d Descriptor) ProjectResponse(data interface{}) (interface{}, error) {
	if d.ResponseModel == nil || data == nil {
		return data, nil
	}
	m, err := d.ResponseModel(data)
	if err != nil {
		return nil, fmt.Errorf("endpoint %q: response model: %w", d.Key, err)
	}
	return m, nil
}

// Registry is an immutable set of descriptors.
type Registry struct {
	byKey map[OperationKey]Descriptor
	order []OperationKey
}

// NewRegistry validates and indexes descriptors. It fails with a *DuplicateEndpointError if a key
// is repeated.
func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{byKey: make(map[OperationKey]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if d.Key == "" {
			return nil, fmt.Errorf("endpoint with URL %s has no key", d.URL)
		}
		if _, exists := r.byKey[d.Key]; exists {
			return nil, &DuplicateEndpointError{Key: d.Key}
		}
		m, err := ParseMethod(string(d.Method))
		if err != nil {
			return nil, fmt.Errorf("endpoint %q: %w", d.Key, err)
		}
		d.Method = m
		if d.URL.isZero() {
			return nil, fmt.Errorf("endpoint %q has no URL", d.Key)
		}
		r.byKey[d.Key] = d
		r.order = append(r.order, d.Key)
	}
	return r, nil
}

// Resolve returns the descriptor for key.
func (r *Registry) Resolve(key OperationKey) (Descriptor, error) {
	d, ok := r.byKey[key]
	if !ok {
		return Descriptor{}, &UnknownEndpointError{Key: key}
	}
	return d, nil
}

// Descriptors returns every descriptor in registration order.
func (r *Registry) Descriptors() []Descriptor {
	ret := make([]Descriptor, 0, len(r.order))
	for _, k := range r.order {
		ret = append(ret, r.byKey[k])
	}
	return ret
}
