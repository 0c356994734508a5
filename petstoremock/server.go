// Package petstoremock is an in-process fake of the Petstore pet API, for running the contract
// suite without a live service and for the package tests.
//
// It implements the routes the suite uses:
//
//	POST   /pet                 create a pet; an id is assigned if the body has none
//	PUT    /pet                 replace a pet, creating it if it does not exist
//	GET    /pet/findByStatus    list pets whose status is any of the "status" query values
//	GET    /pet/{petId}         read a pet; 404 with an error body if it does not exist
//	DELETE /pet/{petId}         delete a pet; 404 with an empty body if it does not exist
//
// Every request is recorded and can be inspected with Requests.
package petstoremock

import (
	"bytes"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/restcontract/petstore-contract-tests/model"
)

const firstAssignedID = 9000

// RequestInfo describes one request the server received.
type RequestInfo struct {
	Method  string
	Path    string
	Query   string
	Headers http.Header
	Body    []byte
}

// Server is the fake API. The zero value is not usable; call New.
type Server struct {
	router   *mux.Router
	pets     map[int64]model.Pet
	nextID   int64
	requests []RequestInfo
	lock     sync.Mutex
}

// New returns an empty Server.
func New() *Server {
	s := &Server{
		pets:   make(map[int64]model.Pet),
		nextID: firstAssignedID,
	}
	router := mux.NewRouter()
	router.HandleFunc("/pet", s.createPet).Methods(http.MethodPost)
	router.HandleFunc("/pet", s.updatePet).Methods(http.MethodPut)
	// registered before /pet/{petId} so that "findByStatus" is never taken for an id
	router.HandleFunc("/pet/findByStatus", s.findPetsByStatus).Methods(http.MethodGet)
	router.HandleFunc("/pet/{petId}", s.getPet).Methods(http.MethodGet)
	router.HandleFunc("/pet/{petId}", s.deletePet).Methods(http.MethodDelete)
	s.router = router
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()
	s.lock.Lock()
	s.requests = append(s.requests, RequestInfo{
		Method:  r.Method,
		Path:    r.URL.Path,
		Query:   r.URL.RawQuery,
		Headers: r.Header.Clone(),
		Body:    body,
	})
	s.lock.Unlock()
	r.Body = io.NopCloser(bytes.NewReader(body))
	s.router.ServeHTTP(w, r)
}

// Requests returns every request received so far, oldest first.
func (s *Server) Requests() []RequestInfo {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]RequestInfo(nil), s.requests...)
}

// Pet returns a stored pet.
func (s *Server) Pet(id int64) (model.Pet, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	p, ok := s.pets[id]
	return p, ok
}

// AddPet stores pet as if it had been created through the API, and returns its id.
func (s *Server) AddPet(pet model.Pet) int64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.store(pet)
}

// store must be called with the lock held.
func (s *Server) store(pet model.Pet) int64 {
	if pet.ID == nil || *pet.ID == 0 {
		s.nextID++
		pet.ID = model.Int64(s.nextID)
	}
	s.pets[*pet.ID] = pet
	return *pet.ID
}

func (s *Server) createPet(w http.ResponseWriter, r *http.Request) {
	pet, ok := readPet(w, r)
	if !ok {
		return
	}
	s.lock.Lock()
	id := s.store(pet)
	stored := s.pets[id]
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, stored)
}

func (s *Server) updatePet(w http.ResponseWriter, r *http.Request) {
	pet, ok := readPet(w, r)
	if !ok {
		return
	}
	if pet.ID == nil {
		writeJSON(w, http.StatusBadRequest, badInput("Invalid ID supplied"))
		return
	}
	s.lock.Lock()
	s.store(pet)
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, pet)
}

func (s *Server) getPet(w http.ResponseWriter, r *http.Request) {
	id, ok := petID(w, r)
	if !ok {
		return
	}
	pet, found := s.Pet(id)
	if !found {
		writeJSON(w, http.StatusNotFound, model.NotFound("Pet not found"))
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

func (s *Server) deletePet(w http.ResponseWriter, r *http.Request) {
	id, ok := petID(w, r)
	if !ok {
		return
	}
	s.lock.Lock()
	_, found := s.pets[id]
	delete(s.pets, id)
	s.lock.Unlock()
	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.Acknowledged(strconv.FormatInt(id, 10)))
}

func (s *Server) findPetsByStatus(w http.ResponseWriter, r *http.Request) {
	wanted := make(map[string]bool)
	for _, v := range r.URL.Query()["status"] {
		for _, status := range strings.Split(v, ",") {
			if status = strings.TrimSpace(status); status != "" {
				wanted[status] = true
			}
		}
	}
	if len(wanted) == 0 {
		writeJSON(w, http.StatusBadRequest, badInput("Invalid status value"))
		return
	}

	s.lock.Lock()
	found := make([]model.Pet, 0)
	for _, p := range s.pets {
		if wanted[model.StringValue(p.Status)] {
			found = append(found, p)
		}
	}
	s.lock.Unlock()
	sort.Slice(found, func(i, j int) bool { return *found[i].ID < *found[j].ID })
	writeJSON(w, http.StatusOK, found)
}

func readPet(w http.ResponseWriter, r *http.Request) (model.Pet, bool) {
	var pet model.Pet
	if err := json.NewDecoder(r.Body).Decode(&pet); err != nil {
		writeJSON(w, http.StatusBadRequest, badInput("Invalid input"))
		return pet, false
	}
	return pet, true
}

func petID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["petId"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, model.NotFound("java.lang.NumberFormatException: For input string: \""+raw+"\""))
		return 0, false
	}
	return id, true
}

func badInput(message string) model.APIResponse {
	code := http.StatusBadRequest
	return model.APIResponse{Code: &code, Type: model.String("unknown"), Message: model.String(message)}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
