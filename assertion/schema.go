package assertion

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaViolationError lists every way a body fails its JSON schema.
type SchemaViolationError struct {
	Violations []string
}

func (e *SchemaViolationError) Error() string {
	return "body does not conform to schema:\n  " + strings.Join(e.Violations, "\n  ")
}

// BodyAssertion checks a raw response body.
type BodyAssertion struct {
	actual interface{}
}

// ThatBody prepares a check of actual.
func ThatBody(actual interface{}) *BodyAssertion {
	return &BodyAssertion{actual: actual}
}

// ConformsTo validates the body against a JSON schema document.
func (b *BodyAssertion) ConformsTo(schema string) error {
	doc, err := encode(b.actual)
	if err != nil {
		return fmt.Errorf("cannot encode body: %w", err)
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("cannot validate against schema: %w", err)
	}
	if result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}
	return &SchemaViolationError{Violations: violations}
}
