package endpoints

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var placeholderRegex = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// URLSpec is either a static path or a template rendered from path parameters. The zero value
// is invalid.
type URLSpec struct {
	static   string
	template func(Params) (string, error)
	pattern  string
}

// Static returns a URLSpec that always renders as path.
func Static(path string) URLSpec {
	return URLSpec{static: path}
}

// Templated returns a URLSpec rendered by fn. fn must have no side effects, and must return a
// *MissingPathParamError (Params.Get does this) when a parameter it needs is absent.
func Templated(fn func(Params) (string, error)) URLSpec {
	return URLSpec{template: fn}
}

// Pattern returns a templated URLSpec that substitutes {name} placeholders with path-escaped
// parameter values.
func Pattern(pattern string) URLSpec {
	names := PlaceholderNames(pattern)
	if len(names) == 0 {
		return Static(pattern)
	}
	return URLSpec{
		pattern: pattern,
		template: func(p Params) (string, error) {
			out := pattern
			for _, name := range names {
				v, err := p.Get(name)
				if err != nil {
					return "", err
				}
				out = strings.ReplaceAll(out, "{"+name+"}", url.PathEscape(v))
			}
			return out, nil
		},
	}
}

// PlaceholderNames returns the distinct {name} placeholders of a pattern in order of appearance.
func PlaceholderNames(pattern string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderRegex.FindAllStringSubmatch(pattern, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// IsTemplated reports whether rendering needs path parameters.
func (u URLSpec) IsTemplated() bool {
	return u.template != nil
}

// Render produces the request path.
func (u URLSpec) Render(params Params) (string, error) {
	if u.template != nil {
		return u.template(params)
	}
	if u.static == "" {
		return "", errors.New("empty URL spec")
	}
	return u.static, nil
}

func (u URLSpec) String() string {
	switch {
	case u.pattern != "":
		return u.pattern
	case u.template != nil:
		return "(templated)"
	default:
		return u.static
	}
}

func (u URLSpec) isZero() bool {
	return u.static == "" && u.template == nil
}
