// Package dispatch turns a logical operation key plus inputs into a transport call, using the
// endpoint registry to find the method, URL and request model.
package dispatch

//go:generate go run ../tools/instrumentgen -type Dispatcher -output dispatcher_instrumented.go

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"

	"github.com/restcontract/petstore-contract-tests/endpoints"
	"github.com/restcontract/petstore-contract-tests/transport"
)

// Invocation holds the inputs of one dispatch.
type Invocation struct {
	PathParams  endpoints.Params
	Data        interface{}
	Headers     map[string]string
	QueryParams endpoints.Params
}

// Result is the normalized outcome of one dispatch. RequestData is the body that was actually
// sent, after any request model filtering. ResponseData is the raw decoded body, nil for a 204
// or an empty body.
type Result struct {
	RequestData  interface{}
	ResponseData interface{}
	Status       int
	Headers      map[string]string
}

// Dispatcher performs named operations.
type Dispatcher interface {
	Dispatch(ctx context.Context, key endpoints.OperationKey, inv Invocation) (Result, error)
}

// Requester is the Dispatcher implementation. It keeps no state between calls.
type Requester struct {
	registry       *endpoints.Registry
	transport      transport.Adapter
	defaultHeaders map[string]string
}

// Option configures a Requester.
type Option func(*Requester)

// WithDefaultHeaders adds headers to every request. Invocation headers override them.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(r *Requester) {
		for k, v := range headers {
			r.defaultHeaders[http.CanonicalHeaderKey(k)] = v
		}
	}
}

// New returns an instrumented Dispatcher, which logs "Requester.Dispatch()" for every call.
func New(
	registry *endpoints.Registry,
	adapter transport.Adapter,
	loggers ldlog.Loggers,
	options ...Option,
) Dispatcher {
	return newInstrumentedDispatcher(NewRequester(registry, adapter, options...), loggers)
}

// NewRequester returns an uninstrumented Requester.
func NewRequester(registry *endpoints.Registry, adapter transport.Adapter, options ...Option) *Requester {
	r := &Requester{
		registry:       registry,
		transport:      adapter,
		defaultHeaders: make(map[string]string),
	}
	for _, o := range options {
		o(r)
	}
	return r
}

// Dispatch resolves key, builds the request and hands it to the transport. Errors from the
// registry are returned as-is; errors from the transport are returned unmodified.
func (r *Requester) Dispatch(
	ctx context.Context,
	key endpoints.OperationKey,
	inv Invocation,
) (Result, error) {
	d, err := r.registry.Resolve(key)
	if err != nil {
		return Result{}, err
	}

	url, err := d.URL.Render(inv.PathParams)
	if err != nil {
		var missing *endpoints.MissingPathParamError
		if errors.As(err, &missing) {
			return Result{}, &endpoints.MissingPathParamError{Key: key, Param: missing.Param}
		}
		return Result{}, fmt.Errorf("endpoint %q: %w", key, err)
	}

	body := inv.Data
	if d.RequestModel != nil && inv.Data != nil {
		if body, err = d.RequestModel(inv.Data); err != nil {
			return Result{}, fmt.Errorf("endpoint %q: request model: %w", key, err)
		}
	}

	cfg := transport.Config{
		Headers: r.mergeHeaders(inv.Headers),
		Params:  inv.QueryParams.Strings(),
	}
	var resp transport.Response
	switch d.Method {
	case endpoints.MethodGet:
		resp, err = r.transport.Get(ctx, url, cfg)
	case endpoints.MethodPost:
		resp, err = r.transport.Post(ctx, url, body, cfg)
	case endpoints.MethodPut:
		resp, err = r.transport.Put(ctx, url, body, cfg)
	case endpoints.MethodDelete:
		resp, err = r.transport.Delete(ctx, url, cfg)
	default:
		return Result{}, fmt.Errorf("endpoint %q: unsupported method %q", key, d.Method)
	}
	if err != nil {
		return Result{}, err
	}

	return Result{
		RequestData:  body,
		ResponseData: resp.Data,
		Status:       resp.Status,
		Headers:      resp.Headers,
	}, nil
}

func (r *Requester) mergeHeaders(headers map[string]string) map[string]string {
	if len(r.defaultHeaders) == 0 && len(headers) == 0 {
		return nil
	}
	ret := make(map[string]string, len(r.defaultHeaders)+len(headers))
	for k, v := range r.defaultHeaders {
		ret[k] = v
	}
	for k, v := range headers {
		ret[http.CanonicalHeaderKey(k)] = v
	}
	return ret
}
