package model

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
)

// Pet statuses accepted by the Petstore API.
const (
	StatusAvailable = "available"
	StatusPending   = "pending"
	StatusSold      = "sold"
)

// AllStatuses lists every Pet status.
var AllStatuses = []string{StatusAvailable, StatusPending, StatusSold}

// Pet is a pet as the API sends and receives it. A nil pointer or nil slice is a field that is
// not set, and it is left out of the encoded form; a set field is encoded even if it is empty.
type Pet struct {
	ID        *int64    `json:"id,omitempty"`
	Category  *Category `json:"category,omitempty"`
	Name      *string   `json:"name,omitempty"`
	PhotoURLs []string  `json:"photoUrls"`
	Tags      []Tag     `json:"tags"`
	Status    *string   `json:"status,omitempty"`
}

// MarshalJSON leaves out nil slices and keeps empty ones.
func (p Pet) MarshalJSON() ([]byte, error) {
	type wirePet struct {
		ID        *int64    `json:"id,omitempty"`
		Category  *Category `json:"category,omitempty"`
		Name      *string   `json:"name,omitempty"`
		PhotoURLs *[]string `json:"photoUrls,omitempty"`
		Tags      *[]Tag    `json:"tags,omitempty"`
		Status    *string   `json:"status,omitempty"`
	}
	w := wirePet{ID: p.ID, Category: p.Category, Name: p.Name, Status: p.Status}
	if p.PhotoURLs != nil {
		w.PhotoURLs = &p.PhotoURLs
	}
	if p.Tags != nil {
		w.Tags = &p.Tags
	}
	return json.Marshal(w)
}

// Category is the group a pet belongs to.
type Category struct {
	ID   *int64  `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
}

// Tag is a label attached to a pet.
type Tag struct {
	ID   *int64  `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
}

// APIResponse is the generic envelope the Petstore API returns for deletes and errors.
type APIResponse struct {
	Code    *int    `json:"code,omitempty"`
	Type    *string `json:"type,omitempty"`
	Message *string `json:"message,omitempty"`
}

// NewPet binds raw into a Pet, keeping only the fields a Pet declares.
func NewPet(raw interface{}) (*Pet, error) {
	var p Pet
	if err := Bind(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// NewPets binds a raw JSON array into a list of Pets.
func NewPets(raw interface{}) ([]Pet, error) {
	var ps []Pet
	if err := Bind(raw, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

// Int64 returns a pointer to n, for the optional id fields.
func Int64(n int64) *int64 { return &n }

// String returns a pointer to s, for the optional text fields.
func String(s string) *string { return &s }

// StringValue returns the text a field holds, or "" if it is not set.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IDString renders the pet id for use as a path parameter; it is empty when the id is unset.
func (p Pet) IDString() string {
	if p.ID == nil {
		return ""
	}
	return strconv.FormatInt(*p.ID, 10)
}

// NotFound builds the body the Petstore API sends for a missing pet.
func NotFound(message string) APIResponse {
	code := 1
	return APIResponse{Code: &code, Type: String("error"), Message: String(message)}
}

// Acknowledged builds the body the Petstore API sends after a successful delete.
func Acknowledged(message string) APIResponse {
	code := http.StatusOK
	return APIResponse{Code: &code, Type: String("unknown"), Message: String(message)}
}
