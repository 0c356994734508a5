package endpoints

import (
	"encoding"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Params holds scalar values keyed by name, for path parameters and query parameters.
type Params map[string]interface{}

// Get returns the named parameter formatted for a URL, or a *MissingPathParamError if it is
// absent or nil.
func (p Params) Get(name string) (string, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return "", &MissingPathParamError{Param: name}
	}
	return FormatScalar(v), nil
}

// Strings formats every parameter. Nil values are skipped.
func (p Params) Strings() map[string]string {
	if len(p) == 0 {
		return nil
	}
	ret := make(map[string]string, len(p))
	for k, v := range p {
		if v == nil {
			continue
		}
		ret[k] = FormatScalar(v)
	}
	return ret
}

// FormatScalar renders a scalar the way it appears in a URL. Integers never go through a float,
// so 64-bit ids keep every digit.
func FormatScalar(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case *int64:
		if s == nil {
			return ""
		}
		return strconv.FormatInt(*s, 10)
	case uint:
		return strconv.FormatUint(uint64(s), 10)
	case uint64:
		return strconv.FormatUint(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case json.Number:
		return s.String()
	case ldvalue.Value:
		return formatValue(s)
	case encoding.TextMarshaler:
		if text, err := s.MarshalText(); err == nil {
			return string(text)
		}
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}

func formatValue(v ldvalue.Value) string {
	switch v.Type() {
	case ldvalue.NullType:
		return ""
	case ldvalue.StringType:
		return v.StringValue()
	case ldvalue.BoolType:
		return strconv.FormatBool(v.BoolValue())
	case ldvalue.NumberType:
		if v.IsInt() {
			return strconv.Itoa(v.IntValue())
		}
		return strconv.FormatFloat(v.Float64Value(), 'f', -1, 64)
	default:
		return v.JSONString()
	}
}
