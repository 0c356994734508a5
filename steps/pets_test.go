package steps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"

	"github.com/restcontract/petstore-contract-tests/dispatch"
	"github.com/restcontract/petstore-contract-tests/endpoints"
	"github.com/restcontract/petstore-contract-tests/framework"
	"github.com/restcontract/petstore-contract-tests/instrument"
	"github.com/restcontract/petstore-contract-tests/logging"
	"github.com/restcontract/petstore-contract-tests/model"
	"github.com/restcontract/petstore-contract-tests/petstore"
	"github.com/restcontract/petstore-contract-tests/petstoremock"
	"github.com/restcontract/petstore-contract-tests/transport"
)

type fixedGenerator struct {
	pet model.Pet
}

func (g fixedGenerator) Pet() model.Pet { return g.pet }

type stepsFixture struct {
	mock    *petstoremock.Server
	pets    Pets
	capture *framework.CapturingLogger
}

func withPetSteps(t *testing.T, gen petstore.Generator, action func(f stepsFixture)) {
	registry, err := petstore.NewRegistry()
	require.NoError(t, err)
	mock := petstoremock.New()
	httphelpers.WithServer(mock, func(server *httptest.Server) {
		capture := &framework.CapturingLogger{}
		loggers := logging.NewLoggers(capture, false)
		d := dispatch.New(registry, transport.NewClient(server.URL, nil, ldlog.NewDisabledLoggers()), ldlog.NewDisabledLoggers())
		action(stepsFixture{
			mock:    mock,
			pets:    NewPetSteps(NewBase(d, registry), gen, loggers),
			capture: capture,
		})
	})
}

func TestCreatePetWithGivenPet(t *testing.T) {
	withPetSteps(t, nil, func(f stepsFixture) {
		pet := model.Pet{Name: model.String("Rex"), Status: model.String(model.StatusAvailable)}
		result, err := f.pets.CreatePet(context.Background(), &pet)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, result.Status)
		assert.Equal(t, &pet, result.RequestData)
		require.NotNil(t, result.Pet)
		require.NotNil(t, result.Pet.ID)
		assert.Equal(t, "Rex", model.StringValue(result.Pet.Name))

		stored, ok := f.mock.Pet(*result.Pet.ID)
		assert.True(t, ok)
		assert.Equal(t, "Rex", model.StringValue(stored.Name))
	})
}

func TestCreatePetGeneratesPetWhenNil(t *testing.T) {
	generated := model.Pet{ID: model.Int64(77), Name: model.String("Gen"), PhotoURLs: []string{"u"}, Status: model.String(model.StatusPending)}
	withPetSteps(t, fixedGenerator{generated}, func(f stepsFixture) {
		result, err := f.pets.CreatePet(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, &generated, result.RequestData)
		assert.Equal(t, &generated, result.Pet)
	})
}

func TestGetPetByID(t *testing.T) {
	withPetSteps(t, nil, func(f stepsFixture) {
		id := f.mock.AddPet(model.Pet{Name: model.String("Stored"), Status: model.String(model.StatusSold)})

		result, err := f.pets.GetPetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, result.Status)
		assert.Nil(t, result.RequestData)
		require.NotNil(t, result.Pet)
		assert.Equal(t, "Stored", model.StringValue(result.Pet.Name))
	})
}

func TestGetMissingPet(t *testing.T) {
	withPetSteps(t, nil, func(f stepsFixture) {
		result, err := f.pets.GetPetByID(context.Background(), 123)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, result.Status)
		assert.Nil(t, result.Pet)
		assert.Equal(t, map[string]interface{}{"code": json.Number("1"), "type": "error", "message": "Pet not found"}, result.ResponseData)
	})
}

func TestUpdatePet(t *testing.T) {
	withPetSteps(t, nil, func(f stepsFixture) {
		id := f.mock.AddPet(model.Pet{Name: model.String("Old"), Status: model.String(model.StatusAvailable)})

		result, err := f.pets.UpdatePet(context.Background(), model.Pet{ID: model.Int64(id), Name: model.String("New"), Status: model.String(model.StatusSold)})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, result.Status)

		stored, _ := f.mock.Pet(id)
		assert.Equal(t, "New", model.StringValue(stored.Name))
		assert.Equal(t, model.StatusSold, model.StringValue(stored.Status))
	})
}

func TestDeletePet(t *testing.T) {
	withPetSteps(t, nil, func(f stepsFixture) {
		id := f.mock.AddPet(model.Pet{Name: model.String("Doomed")})

		result, err := f.pets.DeletePet(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, result.Status)
		_, found := f.mock.Pet(id)
		assert.False(t, found)

		result, err = f.pets.DeletePet(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, result.Status)
		assert.Nil(t, result.ResponseData)
	})
}

func TestFindPetsByStatus(t *testing.T) {
	withPetSteps(t, nil, func(f stepsFixture) {
		f.mock.AddPet(model.Pet{Name: model.String("a"), Status: model.String(model.StatusAvailable)})
		f.mock.AddPet(model.Pet{Name: model.String("b"), Status: model.String(model.StatusSold)})
		f.mock.AddPet(model.Pet{Name: model.String("c"), Status: model.String(model.StatusPending)})

		result, err := f.pets.FindPetsByStatus(context.Background(), model.StatusAvailable, model.StatusSold)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, result.Status)
		var names []string
		for _, p := range result.Pets {
			names = append(names, model.StringValue(p.Name))
		}
		assert.Equal(t, []string{"a", "b"}, names)

		requests := f.mock.Requests()
		assert.Equal(t, "status=available%2Csold", requests[len(requests)-1].Query)
	})
}

func TestCreateAndGetPet(t *testing.T) {
	withPetSteps(t, nil, func(f stepsFixture) {
		result, err := f.pets.CreateAndGetPet(context.Background(), &model.Pet{Name: model.String("Both")})
		require.NoError(t, err)
		require.NotNil(t, result.Create.Pet)
		require.NotNil(t, result.Get.Pet)
		assert.Equal(t, result.Create.Pet, result.Get.Pet)
	})
}

func TestDispatchIsAvailableOnSteps(t *testing.T) {
	withPetSteps(t, nil, func(f stepsFixture) {
		result, err := f.pets.Dispatch(context.Background(), petstore.GetPet, dispatch.Invocation{
			PathParams: endpoints.Params{petstore.PetIDParam: 5},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, result.Status)
	})
}

func TestStepErrorsPropagate(t *testing.T) {
	withPetSteps(t, nil, func(f stepsFixture) {
		_, err := f.pets.Dispatch(context.Background(), "FEED_PET", dispatch.Invocation{})
		var unknown *endpoints.UnknownEndpointError
		assert.True(t, errors.As(err, &unknown))
	})
}

func TestStepCallsAreLogged(t *testing.T) {
	withPetSteps(t, nil, func(f stepsFixture) {
		_, err := f.pets.CreateAndGetPet(context.Background(), &model.Pet{Name: model.String("Logged")})
		require.NoError(t, err)
		_, err = f.pets.Dispatch(context.Background(), petstore.GetPet, dispatch.Invocation{})
		require.Error(t, err)

		messages := f.capture.Output().Messages()
		require.Len(t, messages, 2)
		assert.Contains(t, messages[0], "PetSteps.CreateAndGetPet()")
		assert.Contains(t, messages[1], "PetSteps.Dispatch()")
	})
}

func TestDecoratorCoversPetSteps(t *testing.T) {
	expected := instrument.InterfaceMethods((*Pets)(nil))
	assert.Equal(t, expected, instrument.ExportedMethods(&PetSteps{}))
	assert.Equal(t, expected, instrument.ExportedMethods(&instrumentedPets{}))
	assert.NotContains(t, expected, "project")
}
