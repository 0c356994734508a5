package dispatch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"

	"github.com/restcontract/petstore-contract-tests/assertion"
	"github.com/restcontract/petstore-contract-tests/endpoints"
	"github.com/restcontract/petstore-contract-tests/framework"
	"github.com/restcontract/petstore-contract-tests/instrument"
	"github.com/restcontract/petstore-contract-tests/logging"
	"github.com/restcontract/petstore-contract-tests/model"
	"github.com/restcontract/petstore-contract-tests/transport"
)

type adapterCall struct {
	method string
	url    string
	data   interface{}
	cfg    transport.Config
}

// fakeAdapter records every call and answers with a fixed response or error.
type fakeAdapter struct {
	calls    []adapterCall
	response transport.Response
	err      error
}

func (f *fakeAdapter) record(method, url string, data interface{}, cfg transport.Config) (transport.Response, error) {
	f.calls = append(f.calls, adapterCall{method: method, url: url, data: data, cfg: cfg})
	return f.response, f.err
}

func (f *fakeAdapter) Get(ctx context.Context, url string, cfg transport.Config) (transport.Response, error) {
	return f.record("GET", url, nil, cfg)
}

func (f *fakeAdapter) Post(ctx context.Context, url string, data interface{}, cfg transport.Config) (transport.Response, error) {
	return f.record("POST", url, data, cfg)
}

func (f *fakeAdapter) Put(ctx context.Context, url string, data interface{}, cfg transport.Config) (transport.Response, error) {
	return f.record("PUT", url, data, cfg)
}

func (f *fakeAdapter) Delete(ctx context.Context, url string, cfg transport.Config) (transport.Response, error) {
	return f.record("DELETE", url, nil, cfg)
}

func makeTestRegistry(t *testing.T) *endpoints.Registry {
	r, err := endpoints.NewRegistry(
		endpoints.Descriptor{Key: "CREATE_PET", Method: endpoints.MethodPost, URL: endpoints.Static("/pet")},
		endpoints.Descriptor{
			Key:          "UPDATE_PET",
			Method:       endpoints.MethodPut,
			URL:          endpoints.Static("/pet"),
			RequestModel: model.For[model.Pet](),
		},
		endpoints.Descriptor{
			Key:    "GET_PET",
			Method: endpoints.MethodGet,
			URL: endpoints.Templated(func(p endpoints.Params) (string, error) {
				id, err := p.Get("petId")
				return "/pet/" + id, err
			}),
		},
		endpoints.Descriptor{Key: "DELETE_PET", Method: endpoints.MethodDelete, URL: endpoints.Pattern("/pet/{petId}")},
		endpoints.Descriptor{Key: "FIND_PETS_BY_STATUS", Method: endpoints.MethodGet, URL: endpoints.Static("/pet/findByStatus")},
	)
	require.NoError(t, err)
	return r
}

func TestCreatePetAgainstServer(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(
		httphelpers.HandlerWithResponse(200, http.Header{"Content-Type": []string{"application/json"}},
			[]byte(`{"id":9216678377732767000,"name":"Rex","status":"available","photoUrls":[]}`)),
	)
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		d := New(makeTestRegistry(t), transport.NewClient(server.URL, nil, ldlog.NewDisabledLoggers()), ldlog.NewDisabledLoggers())
		result, err := d.Dispatch(context.Background(), "CREATE_PET", Invocation{
			Data: map[string]interface{}{"name": "Rex", "status": "available"},
		})
		require.NoError(t, err)

		r := <-requestsCh
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "/pet", r.Request.URL.Path)
		assert.JSONEq(t, `{"name":"Rex","status":"available"}`, string(r.Body))

		assert.Equal(t, 200, result.Status)
		assert.NoError(t, assertion.ThatModels(map[string]interface{}{"name": "Rex", "status": "available"}, result.ResponseData).Match())
	})
}

func TestMissingPathParam(t *testing.T) {
	adapter := &fakeAdapter{}
	d := NewRequester(makeTestRegistry(t), adapter)

	_, err := d.Dispatch(context.Background(), "GET_PET", Invocation{})

	var missing *endpoints.MissingPathParamError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, endpoints.OperationKey("GET_PET"), missing.Key)
	assert.Equal(t, "petId", missing.Param)
	assert.Len(t, adapter.calls, 0)
}

func TestNoContentResponse(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(204), func(server *httptest.Server) {
		d := New(makeTestRegistry(t), transport.NewClient(server.URL, nil, ldlog.NewDisabledLoggers()), ldlog.NewDisabledLoggers())
		result, err := d.Dispatch(context.Background(), "DELETE_PET", Invocation{
			PathParams: endpoints.Params{"petId": 1},
		})
		require.NoError(t, err)
		assert.Equal(t, 204, result.Status)
		assert.Nil(t, result.ResponseData)
	})
}

func TestUnknownKey(t *testing.T) {
	adapter := &fakeAdapter{}
	_, err := NewRequester(makeTestRegistry(t), adapter).Dispatch(context.Background(), "FEED_PET", Invocation{})

	var unknown *endpoints.UnknownEndpointError
	require.True(t, errors.As(err, &unknown))
	assert.Len(t, adapter.calls, 0)
}

func TestRequestModelFiltersData(t *testing.T) {
	adapter := &fakeAdapter{response: transport.Response{Status: 200}}
	result, err := NewRequester(makeTestRegistry(t), adapter).Dispatch(context.Background(), "UPDATE_PET", Invocation{
		Data: map[string]interface{}{"id": 3, "name": "Rex", "owner": "me"},
	})
	require.NoError(t, err)

	require.Len(t, adapter.calls, 1)
	expected := &model.Pet{ID: model.Int64(3), Name: model.String("Rex")}
	assert.Equal(t, expected, adapter.calls[0].data)
	assert.Equal(t, expected, result.RequestData)
}

func TestRequestModelKeepsEmptyValues(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		d := NewRequester(makeTestRegistry(t), transport.NewClient(server.URL, nil, ldlog.NewDisabledLoggers()))
		_, err := d.Dispatch(context.Background(), "UPDATE_PET", Invocation{
			Data: map[string]interface{}{"id": 0, "name": "", "photoUrls": []interface{}{}, "status": "", "owner": ""},
		})
		require.NoError(t, err)

		r := <-requestsCh
		assert.JSONEq(t, `{"id":0,"name":"","photoUrls":[],"status":""}`, string(r.Body))
	})
}

func TestDataSentVerbatimWithoutRequestModel(t *testing.T) {
	adapter := &fakeAdapter{response: transport.Response{Status: 200}}
	data := map[string]interface{}{"name": "Rex", "owner": "me"}
	result, err := NewRequester(makeTestRegistry(t), adapter).Dispatch(context.Background(), "CREATE_PET", Invocation{Data: data})
	require.NoError(t, err)

	assert.Equal(t, data, adapter.calls[0].data)
	assert.Equal(t, data, result.RequestData)
}

func TestNilDataIsNotBound(t *testing.T) {
	adapter := &fakeAdapter{response: transport.Response{Status: 200}}
	_, err := NewRequester(makeTestRegistry(t), adapter).Dispatch(context.Background(), "UPDATE_PET", Invocation{})
	require.NoError(t, err)
	assert.Nil(t, adapter.calls[0].data)
}

func TestMethodsAndURLs(t *testing.T) {
	for _, p := range []struct {
		key    endpoints.OperationKey
		method string
		url    string
	}{
		{"CREATE_PET", "POST", "/pet"},
		{"UPDATE_PET", "PUT", "/pet"},
		{"GET_PET", "GET", "/pet/12"},
		{"DELETE_PET", "DELETE", "/pet/12"},
	} {
		t.Run(string(p.key), func(t *testing.T) {
			adapter := &fakeAdapter{response: transport.Response{Status: 200}}
			_, err := NewRequester(makeTestRegistry(t), adapter).Dispatch(context.Background(), p.key, Invocation{
				PathParams: endpoints.Params{"petId": int64(12)},
			})
			require.NoError(t, err)
			require.Len(t, adapter.calls, 1)
			assert.Equal(t, p.method, adapter.calls[0].method)
			assert.Equal(t, p.url, adapter.calls[0].url)
		})
	}
}

func TestQueryParamsAreStringified(t *testing.T) {
	adapter := &fakeAdapter{response: transport.Response{Status: 200}}
	_, err := NewRequester(makeTestRegistry(t), adapter).Dispatch(context.Background(), "FIND_PETS_BY_STATUS", Invocation{
		QueryParams: endpoints.Params{"status": "sold", "limit": 10, "verbose": true},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "sold", "limit": "10", "verbose": "true"}, adapter.calls[0].cfg.Params)
}

func TestInvocationHeadersOverrideDefaults(t *testing.T) {
	adapter := &fakeAdapter{response: transport.Response{Status: 200}}
	d := NewRequester(makeTestRegistry(t), adapter, WithDefaultHeaders(map[string]string{
		"api_key":  "default",
		"X-Client": "suite",
	}))
	headers := map[string]string{"API_KEY": "override"}
	_, err := d.Dispatch(context.Background(), "CREATE_PET", Invocation{Headers: headers})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"Api_key": "override", "X-Client": "suite"}, adapter.calls[0].cfg.Headers)
	assert.Equal(t, map[string]string{"API_KEY": "override"}, headers)
}

func TestTransportErrorIsReturnedUnmodified(t *testing.T) {
	transportErr := &transport.TransportError{Method: "POST", URL: "/pet", Err: errors.New("connection refused")}
	adapter := &fakeAdapter{err: transportErr}
	_, err := New(makeTestRegistry(t), adapter, ldlog.NewDisabledLoggers()).Dispatch(context.Background(), "CREATE_PET", Invocation{})
	assert.Same(t, transportErr, err)
}

func TestErrorStatusIsNotAnError(t *testing.T) {
	adapter := &fakeAdapter{response: transport.Response{Status: 404, Data: map[string]interface{}{"message": "Pet not found"}}}
	result, err := NewRequester(makeTestRegistry(t), adapter).Dispatch(context.Background(), "GET_PET", Invocation{
		PathParams: endpoints.Params{"petId": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 404, result.Status)
	assert.Equal(t, map[string]interface{}{"message": "Pet not found"}, result.ResponseData)
}

func TestDispatchIsInstrumented(t *testing.T) {
	capture := &framework.CapturingLogger{}
	adapter := &fakeAdapter{response: transport.Response{Status: 200}}
	d := New(makeTestRegistry(t), adapter, logging.NewLoggers(capture, false))

	_, err := d.Dispatch(context.Background(), "CREATE_PET", Invocation{})
	require.NoError(t, err)
	_, err = d.Dispatch(context.Background(), "FEED_PET", Invocation{})
	require.Error(t, err)

	messages := capture.Output().Messages()
	require.Len(t, messages, 2)
	for _, m := range messages {
		assert.Contains(t, m, "Requester.Dispatch()")
	}
}

func TestDecoratorCoversDispatcher(t *testing.T) {
	assert.Equal(t, instrument.InterfaceMethods((*Dispatcher)(nil)), instrument.ExportedMethods(&Requester{}))
	assert.Equal(t, instrument.InterfaceMethods((*Dispatcher)(nil)), instrument.ExportedMethods(&instrumentedDispatcher{}))
}
