// Package steps contains the step objects that scenarios use to talk to the Petstore API.
//
// A step object is constructed through a New function that returns it wrapped in its generated
// instrumentation decorator, so every exported step call is logged as "<StepType>.<Method>()"
// before it runs. Unexported helpers are never logged.
package steps

import (
	"context"

	"github.com/restcontract/petstore-contract-tests/dispatch"
	"github.com/restcontract/petstore-contract-tests/endpoints"
)

// Operations is the method set that every step object shares.
type Operations interface {
	// Dispatch performs any registered operation directly.
	Dispatch(ctx context.Context, key endpoints.OperationKey, inv dispatch.Invocation) (dispatch.Result, error)
}

// Base holds what every step object needs. Step types embed it, which promotes Dispatch into
// their own method set.
type Base struct {
	dispatcher dispatch.Dispatcher
	registry   *endpoints.Registry
}

// NewBase returns a Base that sends requests through dispatcher.
func NewBase(dispatcher dispatch.Dispatcher, registry *endpoints.Registry) Base {
	return Base{dispatcher: dispatcher, registry: registry}
}

func (b Base) Dispatch(
	ctx context.Context,
	key endpoints.OperationKey,
	inv dispatch.Invocation,
) (dispatch.Result, error) {
	return b.dispatcher.Dispatch(ctx, key, inv)
}

// project binds a successful response through the endpoint's response model.
func (b Base) project(key endpoints.OperationKey, result dispatch.Result) (interface{}, error) {
	if result.ResponseData == nil || result.Status < 200 || result.Status > 299 {
		return nil, nil
	}
	d, err := b.registry.Resolve(key)
	if err != nil {
		return nil, err
	}
	return d.ProjectResponse(result.ResponseData)
}
