// Package petstore defines the Petstore operations and test data.
package petstore

import (
	"github.com/restcontract/petstore-contract-tests/endpoints"
	"github.com/restcontract/petstore-contract-tests/model"
)

// Operation keys of the Petstore API.
const (
	CreatePet        endpoints.OperationKey = "CREATE_PET"
	GetPet           endpoints.OperationKey = "GET_PET"
	UpdatePet        endpoints.OperationKey = "UPDATE_PET"
	DeletePet        endpoints.OperationKey = "DELETE_PET"
	FindPetsByStatus endpoints.OperationKey = "FIND_PETS_BY_STATUS"
)

// PetIDParam is the path parameter that identifies a pet.
const PetIDParam = "petId"

// Endpoints returns the descriptors of every Petstore operation.
func Endpoints() []endpoints.Descriptor {
	pet := model.For[model.Pet]()
	return []endpoints.Descriptor{
		{
			Key:               CreatePet,
			Method:            endpoints.MethodPost,
			URL:               endpoints.Static("/pet"),
			RequestModel:      pet,
			ResponseModel:     pet,
			RequestModelName:  "Pet",
			ResponseModelName: "Pet",
		},
		{
			Key:               GetPet,
			Method:            endpoints.MethodGet,
			URL:               endpoints.Pattern("/pet/{" + PetIDParam + "}"),
			ResponseModel:     pet,
			ResponseModelName: "Pet",
		},
		{
			Key:               UpdatePet,
			Method:            endpoints.MethodPut,
			URL:               endpoints.Static("/pet"),
			RequestModel:      pet,
			ResponseModel:     pet,
			RequestModelName:  "Pet",
			ResponseModelName: "Pet",
		},
		{
			Key:    DeletePet,
			Method: endpoints.MethodDelete,
			URL:    endpoints.Pattern("/pet/{" + PetIDParam + "}"),
		},
		{
			Key:    FindPetsByStatus,
			Method: endpoints.MethodGet,
			URL:    endpoints.Static("/pet/findByStatus"),
		},
	}
}

// NewRegistry builds a registry of the Petstore operations plus any extra descriptors. An extra
// descriptor that repeats a Petstore key is an error.
func NewRegistry(extra ...endpoints.Descriptor) (*endpoints.Registry, error) {
	return endpoints.NewRegistry(append(Endpoints(), extra...)...)
}
