// Package assertion compares an expected model against an arbitrary actual value.
//
// The comparison is asymmetric: every field present on the expected side must be present and
// equal on the actual side, and anything else the actual side carries is ignored. Objects are
// walked in field declaration order (struct field order, sorted keys for maps) and sequences
// index by index, so the first mismatch reported is always the same one.
//
// Scalar rules: numbers compare by numeric value (1 and 1.0 are equal, 64-bit integers compare
// exactly); strings and booleans compare exactly; values of different JSON types are never
// equal unless LooseScalars is given. An expected null matches an actual null or an absent field.
package assertion

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const absent = "<absent>"

// ModelMismatchError describes the first field at which two models differ. Expected and Actual
// are JSON text; Actual is "<absent>" when the field is missing.
type ModelMismatchError struct {
	Path     string
	Expected string
	Actual   string
	Reason   string
}

func (e *ModelMismatchError) Error() string {
	msg := fmt.Sprintf("models do not match at %s: expected %s, actual %s", e.Path, e.Expected, e.Actual)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

type policy struct {
	looseScalars bool
	exactLength  bool
}

// Option adjusts the comparison policy.
type Option func(*policy)

// LooseScalars makes scalars of different types equal when their textual forms agree, so that
// "42" matches 42 and "true" matches true. Null never matches a non-null value.
func LooseScalars() Option {
	return func(p *policy) { p.looseScalars = true }
}

// ExactLength makes a sequence length difference a mismatch. By default actual elements past the
// end of the expected sequence are ignored.
func ExactLength() Option {
	return func(p *policy) { p.exactLength = true }
}

// ModelAssertion holds an expected and actual value until Match is called.
type ModelAssertion struct {
	expected interface{}
	actual   interface{}
	policy   policy
}

// ThatModels prepares a comparison. Either side may be a model struct, a map, an ldvalue.Value,
// raw JSON bytes, or any other value that encodes to JSON.
func ThatModels(expected, actual interface{}, options ...Option) *ModelAssertion {
	a := &ModelAssertion{expected: expected, actual: actual}
	for _, o := range options {
		o(&a.policy)
	}
	return a
}

// Match returns nil if actual satisfies expected, or a *ModelMismatchError for the first field
// that does not.
func (a *ModelAssertion) Match() error {
	exp, err := normalize(a.expected)
	if err != nil {
		return fmt.Errorf("cannot encode expected model: %w", err)
	}
	act, err := normalize(a.actual)
	if err != nil {
		return fmt.Errorf("cannot encode actual model: %w", err)
	}
	return a.policy.compare("", exp, act)
}

// RequireMatch fails the test immediately if actual does not satisfy expected.
func RequireMatch(t require.TestingT, expected, actual interface{}, options ...Option) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	require.NoError(t, ThatModels(expected, actual, options...).Match())
}

func normalize(v interface{}) (gjson.Result, error) {
	data, err := encode(v)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(data), nil
}

func encode(v interface{}) ([]byte, error) {
	switch x := v.(type) {
	case nil:
		return []byte("null"), nil
	case gjson.Result:
		if !x.Exists() {
			return []byte("null"), nil
		}
		return []byte(x.Raw), nil
	case []byte:
		if gjson.ValidBytes(x) {
			return x, nil
		}
		return json.Marshal(string(x))
	case json.RawMessage:
		if gjson.ValidBytes(x) {
			return x, nil
		}
		return json.Marshal(string(x))
	}
	return json.Marshal(v)
}

func (p policy) compare(path string, exp, act gjson.Result) error {
	switch {
	case exp.IsObject():
		if !act.IsObject() {
			return mismatch(path, exp, act, "expected an object")
		}
		fields := make(map[string]gjson.Result)
		act.ForEach(func(k, v gjson.Result) bool {
			fields[k.String()] = v
			return true
		})
		var err error
		exp.ForEach(func(k, v gjson.Result) bool {
			name := k.String()
			child := fieldPath(path, name)
			a, present := fields[name]
			switch {
			case v.Type == gjson.Null:
				if present && a.Type != gjson.Null {
					err = mismatch(child, v, a, "")
				}
			case !present:
				err = &ModelMismatchError{Path: child, Expected: v.Raw, Actual: absent, Reason: "field is absent"}
			default:
				err = p.compare(child, v, a)
			}
			return err == nil
		})
		return err

	case exp.IsArray():
		if !act.IsArray() {
			return mismatch(path, exp, act, "expected an array")
		}
		expItems, actItems := exp.Array(), act.Array()
		if p.exactLength && len(expItems) != len(actItems) {
			return &ModelMismatchError{
				Path:     displayPath(path),
				Expected: strconv.Itoa(len(expItems)) + " elements",
				Actual:   strconv.Itoa(len(actItems)) + " elements",
				Reason:   "length differs",
			}
		}
		for i, e := range expItems {
			child := path + "[" + strconv.Itoa(i) + "]"
			if i >= len(actItems) {
				return &ModelMismatchError{Path: child, Expected: e.Raw, Actual: absent, Reason: "element is absent"}
			}
			if err := p.compare(child, e, actItems[i]); err != nil {
				return err
			}
		}
		return nil

	default:
		if !p.scalarEqual(exp, act) {
			return mismatch(path, exp, act, "")
		}
		return nil
	}
}

func (p policy) scalarEqual(exp, act gjson.Result) bool {
	if exp.Type == act.Type {
		switch exp.Type {
		case gjson.Number:
			return numbersEqual(exp, act)
		case gjson.String:
			return exp.Str == act.Str
		case gjson.JSON:
			return false
		default: // null, true, false
			return true
		}
	}
	return p.looseScalars && looseEqual(exp, act)
}

func numbersEqual(a, b gjson.Result) bool {
	if a.Raw == b.Raw {
		return true
	}
	ai, aerr := strconv.ParseInt(a.Raw, 10, 64)
	bi, berr := strconv.ParseInt(b.Raw, 10, 64)
	if aerr == nil && berr == nil {
		return ai == bi
	}
	return a.Num == b.Num
}

func looseEqual(a, b gjson.Result) bool {
	for _, r := range []gjson.Result{a, b} {
		if r.Type == gjson.Null || r.Type == gjson.JSON {
			return false
		}
	}
	if a.Type == gjson.Number || b.Type == gjson.Number {
		an, aok := asNumber(a)
		bn, bok := asNumber(b)
		return aok && bok && numbersEqual(an, bn)
	}
	return a.String() == b.String()
}

func asNumber(r gjson.Result) (gjson.Result, bool) {
	switch r.Type {
	case gjson.Number:
		return r, true
	case gjson.String:
		s := strings.TrimSpace(r.Str)
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return r, false
		}
		n := gjson.Parse(s)
		return n, n.Type == gjson.Number
	}
	return r, false
}

func mismatch(path string, exp, act gjson.Result, reason string) *ModelMismatchError {
	return &ModelMismatchError{Path: displayPath(path), Expected: exp.Raw, Actual: act.Raw, Reason: reason}
}

func fieldPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func displayPath(path string) string {
	if path == "" {
		return "$"
	}
	return path
}
