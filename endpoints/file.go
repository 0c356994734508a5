package endpoints

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/restcontract/petstore-contract-tests/model"
)

// ModelLookup resolves a model name used in a descriptor file.
type ModelLookup func(name string) (model.Constructor, bool)

type descriptorFile struct {
	Endpoints []descriptorEntry `yaml:"endpoints"`
}

type descriptorEntry struct {
	Key           string `yaml:"key"`
	Method        string `yaml:"method"`
	URL           string `yaml:"url"`
	RequestModel  string `yaml:"requestModel"`
	ResponseModel string `yaml:"responseModel"`
}

// LoadFile reads descriptors from a YAML file of the form:
//
//	endpoints:
//	  - key: FIND_PETS_BY_TAGS
//	    method: GET
//	    url: /pet/findByTags
//	    responseModel: Pet
//
// URLs may contain {name} placeholders.
func LoadFile(path string, models ModelLookup) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDescriptors(data, models)
}

// ParseDescriptors is the in-memory form of LoadFile.
func ParseDescriptors(data []byte, models ModelLookup) ([]Descriptor, error) {
	var f descriptorFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("malformed endpoint descriptor file: %w", err)
	}
	ret := make([]Descriptor, 0, len(f.Endpoints))
	for i, e := range f.Endpoints {
		if e.Key == "" || e.URL == "" {
			return nil, fmt.Errorf("endpoint #%d: key and url are required", i+1)
		}
		method, err := ParseMethod(e.Method)
		if err != nil {
			return nil, fmt.Errorf("endpoint %q: %w", e.Key, err)
		}
		d := Descriptor{
			Key:               OperationKey(e.Key),
			Method:            method,
			URL:               Pattern(e.URL),
			RequestModelName:  e.RequestModel,
			ResponseModelName: e.ResponseModel,
		}
		if d.RequestModel, err = lookupModel(models, e.Key, e.RequestModel); err != nil {
			return nil, err
		}
		if d.ResponseModel, err = lookupModel(models, e.Key, e.ResponseModel); err != nil {
			return nil, err
		}
		ret = append(ret, d)
	}
	return ret, nil
}

func lookupModel(models ModelLookup, key, name string) (model.Constructor, error) {
	if name == "" {
		return nil, nil
	}
	if models == nil {
		models = model.Lookup
	}
	c, ok := models(name)
	if !ok {
		return nil, fmt.Errorf("endpoint %q: unknown model %q", key, name)
	}
	return c, nil
}
