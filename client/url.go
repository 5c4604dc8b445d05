package client

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Param is a single query string parameter. Value is rendered with fmt.Sprint,
// so any fmt.Stringer can be used.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered list of query string parameters.
type Params []Param

// ParamsFromMap builds Params from m, ordered by key.
func ParamsFromMap(m map[string]string) Params {
	if len(m) == 0 {
		return nil
	}

	params := make(Params, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		params = append(params, Param{Key: k, Value: m[k]})
	}

	return params
}

// Get returns the value of the first param named key.
func (p Params) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// merge returns a copy of p where every entry of override replaces the param
// with the same key, or is appended if p has none.
func (p Params) merge(override Params) Params {
	if len(override) == 0 {
		return p
	}

	out := slices.Clone(p)
	for _, o := range override {
		i := slices.IndexFunc(out, func(param Param) bool { return param.Key == o.Key })
		if i < 0 {
			out = append(out, o)
			continue
		}
		out[i] = o
	}

	return out
}

// BuildURL joins base and endpoint with exactly one slash and appends params
// as a query string in order. Keys and values are not URL-encoded.
//
//	BuildURL("https://example.com/api/", "users", Params{{"page", 1}})
//	// https://example.com/api/users?page=1
func BuildURL(base, endpoint string, params Params) string {
	base = strings.TrimSuffix(base, "/")

	var b strings.Builder
	b.WriteString(base)
	if endpoint != "" && !strings.HasPrefix(endpoint, "/") {
		b.WriteByte('/')
	}
	b.WriteString(endpoint)

	for i, p := range params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		fmt.Fprintf(&b, "%s=%v", p.Key, p.Value)
	}

	return b.String()
}
