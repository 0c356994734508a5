package endpoints

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restcontract/petstore-contract-tests/model"
)

func makeTestDescriptors() []Descriptor {
	return []Descriptor{
		{Key: "CREATE_PET", Method: MethodPost, URL: Static("/pet"), RequestModel: model.For[model.Pet]()},
		{Key: "GET_PET", Method: MethodGet, URL: Pattern("/pet/{petId}")},
		{Key: "DELETE_PET", Method: "delete", URL: Pattern("/pet/{petId}")},
	}
}

func makeTestRegistry(t *testing.T) *Registry {
	r, err := NewRegistry(makeTestDescriptors()...)
	require.NoError(t, err)
	return r
}

func TestResolveReturnsRegisteredDescriptor(t *testing.T) {
	r, err := NewRegistry(makeTestDescriptors()...)
	require.NoError(t, err)

	d, err := r.Resolve("CREATE_PET")
	require.NoError(t, err)
	assert.Equal(t, OperationKey("CREATE_PET"), d.Key)
	assert.Equal(t, MethodPost, d.Method)
	assert.Equal(t, "/pet", d.URL.String())
	assert.NotNil(t, d.RequestModel)
	assert.Nil(t, d.ResponseModel)
}

func TestResolveIsStable(t *testing.T) {
	r := makeTestRegistry(t)
	first, err := r.Resolve("GET_PET")
	require.NoError(t, err)
	second, err := r.Resolve("GET_PET")
	require.NoError(t, err)
	assert.Equal(t, first.Key, second.Key)
	assert.Equal(t, first.Method, second.Method)
	assert.Equal(t, first.URL.String(), second.URL.String())
}

func TestResolveUnknownKey(t *testing.T) {
	r := makeTestRegistry(t)
	_, err := r.Resolve("FEED_PET")

	var unknown *UnknownEndpointError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, OperationKey("FEED_PET"), unknown.Key)
	assert.Equal(t, `unknown endpoint "FEED_PET"`, err.Error())
}

func TestMethodIsNormalized(t *testing.T) {
	r := makeTestRegistry(t)
	d, err := r.Resolve("DELETE_PET")
	require.NoError(t, err)
	assert.Equal(t, MethodDelete, d.Method)
}

func TestDuplicateKeyIsRejected(t *testing.T) {
	descriptors := append(makeTestDescriptors(), Descriptor{Key: "GET_PET", Method: MethodGet, URL: Static("/other")})
	_, err := NewRegistry(descriptors...)

	var dup *DuplicateEndpointError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, OperationKey("GET_PET"), dup.Key)
}

func TestInvalidDescriptorsAreRejected(t *testing.T) {
	for name, d := range map[string]Descriptor{
		"no key":     {Method: MethodGet, URL: Static("/pet")},
		"bad method": {Key: "PATCH_PET", Method: "PATCH", URL: Static("/pet")},
		"no URL":     {Key: "GET_PET", Method: MethodGet},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewRegistry(d)
			assert.Error(t, err)
		})
	}
}

func TestDescriptorsAreInRegistrationOrder(t *testing.T) {
	r := makeTestRegistry(t)
	var keys []OperationKey
	for _, d := range r.Descriptors() {
		keys = append(keys, d.Key)
	}
	assert.Equal(t, []OperationKey{"CREATE_PET", "GET_PET", "DELETE_PET"}, keys)
}

func TestProjectResponse(t *testing.T) {
	d := Descriptor{Key: "GET_PET", ResponseModel: model.For[model.Pet]()}

	projected, err := d.ProjectResponse(map[string]interface{}{"name": "doggie", "extra": true})
	require.NoError(t, err)
	assert.Equal(t, &model.Pet{Name: model.String("doggie")}, projected)

	projected, err = d.ProjectResponse(nil)
	require.NoError(t, err)
	assert.Nil(t, projected)

	raw := map[string]interface{}{"a": 1}
	projected, err = Descriptor{Key: "X"}.ProjectResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, projected)
}

func TestProjectResponseFailure(t *testing.T) {
	d := Descriptor{Key: "GET_PET", ResponseModel: model.For[model.Pet]()}
	_, err := d.ProjectResponse("not a pet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `endpoint "GET_PET"`)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod(" put ")
	require.NoError(t, err)
	assert.Equal(t, MethodPut, m)

	_, err = ParseMethod("HEAD")
	assert.Error(t, err)
}
