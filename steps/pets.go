package steps

//go:generate go run ../tools/instrumentgen -type Pets -output pets_instrumented.go

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"

	"github.com/restcontract/petstore-contract-tests/dispatch"
	"github.com/restcontract/petstore-contract-tests/endpoints"
	"github.com/restcontract/petstore-contract-tests/model"
	"github.com/restcontract/petstore-contract-tests/petstore"
)

// PetResult is the outcome of a step that sends or receives one pet. RequestData is the pet that
// was sent, if any. Pet is the response projected through the Pet model, set only for a 2xx
// response.
type PetResult struct {
	RequestData  *model.Pet
	ResponseData interface{}
	Status       int
	Pet          *model.Pet
}

// PetListResult is the outcome of a search.
type PetListResult struct {
	ResponseData interface{}
	Status       int
	Pets         []model.Pet
}

// StatusResult is the outcome of a step whose body is usually not interesting.
type StatusResult struct {
	ResponseData interface{}
	Status       int
}

// CreateAndGetResult holds both halves of CreateAndGetPet.
type CreateAndGetResult struct {
	Create PetResult
	Get    PetResult
}

// Pets is the set of pet steps.
type Pets interface {
	Operations

	// CreatePet creates pet, or a randomly generated pet if pet is nil.
	CreatePet(ctx context.Context, pet *model.Pet) (PetResult, error)
	GetPetByID(ctx context.Context, id int64) (PetResult, error)
	UpdatePet(ctx context.Context, pet model.Pet) (PetResult, error)
	DeletePet(ctx context.Context, id int64) (StatusResult, error)
	FindPetsByStatus(ctx context.Context, statuses ...string) (PetListResult, error)
	// CreateAndGetPet creates a pet and then reads it back by the id the API assigned.
	CreateAndGetPet(ctx context.Context, pet *model.Pet) (CreateAndGetResult, error)
}

// PetSteps implements Pets.
type PetSteps struct {
	Base
	generator petstore.Generator
}

// NewPetSteps returns instrumented pet steps. If generator is nil, pets are generated by a
// petstore.RandomGenerator.
func NewPetSteps(base Base, generator petstore.Generator, loggers ldlog.Loggers) Pets {
	if generator == nil {
		generator = petstore.NewRandomGenerator()
	}
	return newInstrumentedPets(&PetSteps{Base: base, generator: generator}, loggers)
}

func (s *PetSteps) CreatePet(ctx context.Context, pet *model.Pet) (PetResult, error) {
	if pet == nil {
		generated := s.generator.Pet()
		pet = &generated
	}
	result, err := s.Dispatch(ctx, petstore.CreatePet, dispatch.Invocation{Data: pet})
	if err != nil {
		return PetResult{}, err
	}
	return s.petResult(petstore.CreatePet, pet, result)
}

func (s *PetSteps) GetPetByID(ctx context.Context, id int64) (PetResult, error) {
	result, err := s.Dispatch(ctx, petstore.GetPet, dispatch.Invocation{
		PathParams: endpoints.Params{petstore.PetIDParam: id},
	})
	if err != nil {
		return PetResult{}, err
	}
	return s.petResult(petstore.GetPet, nil, result)
}

func (s *PetSteps) UpdatePet(ctx context.Context, pet model.Pet) (PetResult, error) {
	result, err := s.Dispatch(ctx, petstore.UpdatePet, dispatch.Invocation{Data: pet})
	if err != nil {
		return PetResult{}, err
	}
	return s.petResult(petstore.UpdatePet, &pet, result)
}

func (s *PetSteps) DeletePet(ctx context.Context, id int64) (StatusResult, error) {
	result, err := s.Dispatch(ctx, petstore.DeletePet, dispatch.Invocation{
		PathParams: endpoints.Params{petstore.PetIDParam: id},
	})
	if err != nil {
		return StatusResult{}, err
	}
	return StatusResult{ResponseData: result.ResponseData, Status: result.Status}, nil
}

func (s *PetSteps) FindPetsByStatus(ctx context.Context, statuses ...string) (PetListResult, error) {
	result, err := s.Dispatch(ctx, petstore.FindPetsByStatus, dispatch.Invocation{
		QueryParams: endpoints.Params{"status": strings.Join(statuses, ",")},
	})
	if err != nil {
		return PetListResult{}, err
	}
	ret := PetListResult{ResponseData: result.ResponseData, Status: result.Status}
	if result.Status >= 200 && result.Status <= 299 && result.ResponseData != nil {
		if ret.Pets, err = model.NewPets(result.ResponseData); err != nil {
			return ret, fmt.Errorf("%s: %w", petstore.FindPetsByStatus, err)
		}
	}
	return ret, nil
}

func (s *PetSteps) CreateAndGetPet(ctx context.Context, pet *model.Pet) (CreateAndGetResult, error) {
	created, err := s.CreatePet(ctx, pet)
	if err != nil {
		return CreateAndGetResult{}, err
	}
	ret := CreateAndGetResult{Create: created}
	if created.Pet == nil || created.Pet.ID == nil {
		return ret, errors.New("created pet has no id")
	}
	if ret.Get, err = s.GetPetByID(ctx, *created.Pet.ID); err != nil {
		return ret, err
	}
	return ret, nil
}

func (s *PetSteps) petResult(
	key endpoints.OperationKey,
	sent *model.Pet,
	result dispatch.Result,
) (PetResult, error) {
	ret := PetResult{RequestData: sent, ResponseData: result.ResponseData, Status: result.Status}
	projected, err := s.project(key, result)
	if err != nil {
		return ret, err
	}
	if p, ok := projected.(*model.Pet); ok {
		ret.Pet = p
	}
	return ret, nil
}
